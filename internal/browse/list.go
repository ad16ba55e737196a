package browse

import (
	"context"
	"sync"
)

// Fetcher loads the full collection from the API; listings always fetch-all
// and filter client-side.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// List is the view-model every resource listing shares: the fetched
// collection, a search query, a current page, and busy/error flags. Local
// mutations happen only after server confirmation; a failed call surfaces an
// error message and leaves the collection untouched.
type List[T Searchable] struct {
	mu      sync.Mutex
	items   []T
	query   string
	page    int
	perPage int
	loading bool
	errMsg  string

	id       func(T) string
	onChange func([]T)
}

// NewList constructs a List; id extracts the entity identity used by
// replace/remove.
func NewList[T Searchable](perPage int, id func(T) string) *List[T] {
	if perPage <= 0 {
		perPage = 10
	}
	return &List[T]{page: 1, perPage: perPage, id: id}
}

// OnChange registers the single change listener; the aggregating parent uses
// it to refresh derived caches. The callback receives a copy of the full
// collection after every mutation.
func (l *List[T]) OnChange(fn func([]T)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Load replaces the collection wholesale with the fetch result.
func (l *List[T]) Load(ctx context.Context, fetch Fetcher[T]) error {
	l.mu.Lock()
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	items, err := fetch(ctx)

	l.mu.Lock()
	l.loading = false
	if err != nil {
		l.errMsg = err.Error()
		l.mu.Unlock()
		return err
	}
	l.items = items
	fn, snapshot := l.changed()
	l.mu.Unlock()
	emit(fn, snapshot)
	return nil
}

// Create runs the API call and appends the confirmed entity.
func (l *List[T]) Create(ctx context.Context, create func(ctx context.Context) (T, error)) error {
	item, err := create(ctx)
	if err != nil {
		l.setErr(err)
		return err
	}
	l.mu.Lock()
	l.errMsg = ""
	l.items = append(l.items, item)
	fn, snapshot := l.changed()
	l.mu.Unlock()
	emit(fn, snapshot)
	return nil
}

// Update runs the API call and replaces the entity by id.
func (l *List[T]) Update(ctx context.Context, update func(ctx context.Context) (T, error)) error {
	item, err := update(ctx)
	if err != nil {
		l.setErr(err)
		return err
	}
	l.mu.Lock()
	l.errMsg = ""
	for i := range l.items {
		if l.id(l.items[i]) == l.id(item) {
			l.items[i] = item
		}
	}
	fn, snapshot := l.changed()
	l.mu.Unlock()
	emit(fn, snapshot)
	return nil
}

// Remove runs the API call and removes the entity by id.
func (l *List[T]) Remove(ctx context.Context, id string, remove func(ctx context.Context) error) error {
	if err := remove(ctx); err != nil {
		l.setErr(err)
		return err
	}
	l.mu.Lock()
	l.errMsg = ""
	items := l.items[:0]
	for _, item := range l.items {
		if l.id(item) != id {
			items = append(items, item)
		}
	}
	l.items = items
	fn, snapshot := l.changed()
	l.mu.Unlock()
	emit(fn, snapshot)
	return nil
}

// SetQuery updates the search query and resets to the first page.
func (l *List[T]) SetQuery(query string) {
	l.mu.Lock()
	l.query = query
	l.page = 1
	l.mu.Unlock()
}

// SetPage moves to the given 1-indexed page.
func (l *List[T]) SetPage(page int) {
	l.mu.Lock()
	if page > 0 {
		l.page = page
	}
	l.mu.Unlock()
}

// Visible applies the filter then the page slice.
func (l *List[T]) Visible() ([]T, Pagination) {
	l.mu.Lock()
	items := append([]T(nil), l.items...)
	query, page, perPage := l.query, l.page, l.perPage
	l.mu.Unlock()

	filtered := Filter(items, query)
	return Page(filtered, page, perPage), NewPagination(page, perPage, len(filtered))
}

// Items returns a copy of the full collection.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// Loading reports whether a fetch is in flight.
func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the last error message, empty when the last call succeeded.
func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

func (l *List[T]) setErr(err error) {
	l.mu.Lock()
	l.errMsg = err.Error()
	l.mu.Unlock()
}

// changed must be called with the lock held.
func (l *List[T]) changed() (func([]T), []T) {
	if l.onChange == nil {
		return nil, nil
	}
	return l.onChange, append([]T(nil), l.items...)
}

func emit[T any](fn func([]T), snapshot []T) {
	if fn != nil {
		fn(snapshot)
	}
}
