// Package listview implements the generic list view-model backing the
// dashboard's entity tables: an in-memory collection with filtering,
// multi-key sorting, and pagination, mirrored to a persistent store and
// broadcasting change notifications to other mounted consumers.
package listview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/text/collate"

	"github.com/ganot/dashview/internal/mirror"
	"github.com/ganot/dashview/internal/notify"
)

// DefaultPageSize is used when a config leaves the page size unset.
const DefaultPageSize = 10

// ErrInvalidConfig indicates a view config missing required parts.
var ErrInvalidConfig = errors.New("invalid view config")

// Page is the pagination window. Count is derived, never stored.
type Page struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// Config assembles a view: the record descriptor, the persistence and
// notification dependencies, and the fallback collection used when the
// mirror is absent or empty.
type Config[T any] struct {
	Descriptor Descriptor[T]
	Store      mirror.Store
	Bus        notify.Bus
	// Key is the mirror key the collection is persisted under.
	Key string
	// Topic is the change-notification topic. Defaults to Key.
	Topic    string
	Initial  []T
	PageSize int
	Logger   *slog.Logger
}

// View holds the authoritative in-memory collection for one entity type and
// derives the filtered/sorted/paginated slice a table should render. All
// state transitions are synchronous; a mutex makes the instance safe to
// share with a notification-driven refresh goroutine.
type View[T any] struct {
	mu      sync.Mutex
	desc    Descriptor[T]
	store   mirror.Store
	bus     notify.Bus
	key     string
	topic   string
	logger  *slog.Logger
	col     *collate.Collator
	records []T
	filters Filters
	sort    []SortKey
	page    Page
}

// New builds a view and loads its collection: a non-empty decoded mirror is
// adopted, otherwise the caller-supplied initial set. Malformed or
// unreadable mirror data falls back silently with a diagnostic; it never
// fails construction.
func New[T any](ctx context.Context, cfg Config[T]) (*View[T], error) {
	if cfg.Descriptor.ID == nil || cfg.Store == nil || cfg.Bus == nil || cfg.Key == "" {
		return nil, ErrInvalidConfig
	}
	topic := cfg.Topic
	if topic == "" {
		topic = cfg.Key
	}
	size := cfg.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := &View[T]{
		desc:    cfg.Descriptor,
		store:   cfg.Store,
		bus:     cfg.Bus,
		key:     cfg.Key,
		topic:   topic,
		logger:  logger,
		col:     newCollator(),
		filters: DefaultFilters(),
		page:    Page{Index: 0, Size: size},
	}
	v.records = v.load(ctx, cfg.Initial)
	return v, nil
}

// load reads the persisted mirror, adopting it when it decodes to a
// non-empty sequence. Anything else, including decode failure, yields the
// initial set.
func (v *View[T]) load(ctx context.Context, initial []T) []T {
	data, err := v.store.Get(ctx, v.key)
	if err != nil {
		if !errors.Is(err, mirror.ErrNotFound) {
			v.logger.Warn("mirror read failed, using initial records", "key", v.key, "error", err)
		}
		return slices.Clone(initial)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		v.logger.Warn("mirror decode failed, using initial records", "key", v.key, "error", err)
		return slices.Clone(initial)
	}
	if len(records) == 0 {
		return slices.Clone(initial)
	}
	return records
}

// Topic returns the change-notification topic of this view.
func (v *View[T]) Topic() string { return v.topic }

// Key returns the mirror key of this view.
func (v *View[T]) Key() string { return v.key }

// SetFilters merges the given changes into filter state and resets
// pagination to the first page, so a narrowed result set is never viewed at
// a stale offset.
func (v *View[T]) SetFilters(opts ...FilterOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, opt := range opts {
		opt(&v.filters)
	}
	v.page.Index = 0
}

// ClearFilters resets filter state to its default and pagination to the
// first page.
func (v *View[T]) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = DefaultFilters()
	v.page.Index = 0
}

// Filters returns the current filter state.
func (v *View[T]) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// SetSorting replaces the sort-key sequence. An empty sequence preserves
// natural collection order.
func (v *View[T]) SetSorting(keys []SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = slices.Clone(keys)
}

// UpdateSorting replaces the sort-key sequence as a function of its
// previous value.
func (v *View[T]) UpdateSorting(update func([]SortKey) []SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = update(slices.Clone(v.sort))
}

// Sorting returns the current sort-key sequence.
func (v *View[T]) Sorting() []SortKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.sort)
}

// SetPagination replaces the page window. Non-positive sizes fall back to
// the view's default.
func (v *View[T]) SetPagination(p Page) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setPage(p)
}

// UpdatePagination replaces the page window as a function of its previous
// value.
func (v *View[T]) UpdatePagination(update func(Page) Page) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setPage(update(v.page))
}

func (v *View[T]) setPage(p Page) {
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	v.page = p
}

// Pagination returns the current page window.
func (v *View[T]) Pagination() Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Records returns a copy of the full in-memory collection.
func (v *View[T]) Records() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.records)
}

// Len returns the size of the full in-memory collection.
func (v *View[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.records)
}

// Filtered returns the collection after applying the filter predicate only,
// in original relative order.
func (v *View[T]) Filtered() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filtered()
}

func (v *View[T]) filtered() []T {
	out := make([]T, 0, len(v.records))
	for _, rec := range v.records {
		if v.matches(rec, v.filters) {
			out = append(out, rec)
		}
	}
	return out
}

// Visible returns the filtered, sorted, paginated slice for rendering. A
// page starting beyond the filtered length yields an empty slice.
func (v *View[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := v.filtered()
	if len(v.sort) > 0 {
		keys := v.sort
		slices.SortStableFunc(out, func(a, b T) int {
			return v.compareRecords(a, b, keys)
		})
	}

	start := v.page.Index * v.page.Size
	if start >= len(out) {
		return []T{}
	}
	end := min(start+v.page.Size, len(out))
	return out[start:end]
}

// PageCount derives the number of pages from the filtered length and the
// page size.
func (v *View[T]) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return (len(v.filtered()) + v.page.Size - 1) / v.page.Size
}

// Add appends a record, persists the collection, and notifies consumers.
func (v *View[T]) Add(ctx context.Context, rec T) {
	v.mu.Lock()
	v.records = append(v.records, rec)
	v.persist(ctx)
	v.mu.Unlock()
	v.bus.Publish(v.topic)
}

// Update applies mutate to the record with the given id. A missing id
// leaves the collection unchanged, but the mirror is still rewritten and
// the notification still fires.
func (v *View[T]) Update(ctx context.Context, id string, mutate func(T) T) {
	v.mu.Lock()
	for i, rec := range v.records {
		if v.desc.ID(rec) == id {
			v.records[i] = mutate(rec)
			break
		}
	}
	v.persist(ctx)
	v.mu.Unlock()
	v.bus.Publish(v.topic)
}

// Remove drops the record with the given id, persists, and notifies.
func (v *View[T]) Remove(ctx context.Context, id string) {
	v.mu.Lock()
	v.records = slices.DeleteFunc(v.records, func(rec T) bool {
		return v.desc.ID(rec) == id
	})
	v.persist(ctx)
	v.mu.Unlock()
	v.bus.Publish(v.topic)
}

// Refresh re-reads the persisted mirror, discarding divergent in-memory
// state. A missing mirror empties the collection; a decode or read failure
// is a logged no-op.
func (v *View[T]) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	data, err := v.store.Get(ctx, v.key)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			v.records = []T{}
			return
		}
		v.logger.Warn("mirror refresh read failed", "key", v.key, "error", err)
		return
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		v.logger.Warn("mirror refresh decode failed", "key", v.key, "error", err)
		return
	}
	if records == nil {
		records = []T{}
	}
	v.records = records
}

// persist rewrites the full collection under the view's key. Failures are
// logged and swallowed: in-memory state stays correct for the session, the
// mirror is merely stale. Callers must hold v.mu and publish only after
// persist returns, so a listener that re-reads the mirror observes the
// mutation that triggered it.
func (v *View[T]) persist(ctx context.Context) {
	records := v.records
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		v.logger.Warn("mirror encode failed", "key", v.key, "error", err)
		return
	}
	if err := v.store.Set(ctx, v.key, data); err != nil {
		v.logger.Warn("mirror write failed", "key", v.key, "error", err)
	}
}
