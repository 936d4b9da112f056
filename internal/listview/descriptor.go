package listview

import "time"

// Descriptor declares how the view-model reads a record type: identity,
// status, the primary date used for chronological filtering, the text fields
// that participate in substring search, and the named accessors available to
// the sort comparator. Fixed at view construction.
type Descriptor[T any] struct {
	// ID returns the record's unique identifier.
	ID func(T) string
	// Status returns the record's status value, matched against Filters.Status.
	Status func(T) string
	// Date returns the record's primary date for date-range filtering.
	Date func(T) time.Time
	// Search lists the accessors for the record's searchable text fields.
	Search []func(T) string
	// Fields maps sort-key names to value accessors.
	Fields map[string]func(T) any
}

// Field resolves a sort-key name to its accessor, or nil if undeclared.
func (d Descriptor[T]) Field(key string) func(T) any {
	if d.Fields == nil {
		return nil
	}
	return d.Fields[key]
}
