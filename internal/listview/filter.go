package listview

import (
	"strings"
	"time"
)

// StatusAll matches every record regardless of its actual status.
const StatusAll = "all"

// Filters holds the active filter state of a view.
type Filters struct {
	Status string     `json:"status"`
	Search string     `json:"search"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
}

// DefaultFilters returns the neutral filter state: every record passes.
func DefaultFilters() Filters {
	return Filters{Status: StatusAll}
}

// FilterOption applies a partial change to filter state.
type FilterOption func(*Filters)

// WithStatus sets the status filter. Use StatusAll to match everything.
func WithStatus(status string) FilterOption {
	return func(f *Filters) { f.Status = status }
}

// WithSearch sets the free-text search string.
func WithSearch(search string) FilterOption {
	return func(f *Filters) { f.Search = search }
}

// WithDateRange sets the date range. Nil bounds are open; both nil clears
// the range entirely.
func WithDateRange(from, to *time.Time) FilterOption {
	return func(f *Filters) {
		f.From = from
		f.To = to
	}
}

// matches reports whether a record passes the filter. Status, search, and
// date range must all pass.
func (v *View[T]) matches(rec T, f Filters) bool {
	if f.Status != "" && f.Status != StatusAll {
		if v.desc.Status == nil || v.desc.Status(rec) != f.Status {
			return false
		}
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		needle := strings.ToLower(search)
		found := false
		for _, text := range v.desc.Search {
			if strings.Contains(strings.ToLower(text(rec)), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.From != nil || f.To != nil {
		if v.desc.Date == nil {
			return false
		}
		date := v.desc.Date(rec)
		if f.From != nil && date.Before(*f.From) {
			return false
		}
		if f.To != nil && date.After(*f.To) {
			return false
		}
	}

	return true
}
