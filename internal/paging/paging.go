// Package paging splits a filtered collection into fixed-size pages.
package paging

import "slices"

// Strategy combines filter predicates.
type Strategy int

const (
	// All keeps items every predicate accepts.
	All Strategy = iota
	// Any keeps items at least one predicate accepts.
	Any
)

func (s Strategy) String() string {
	if s == Any {
		return "or"
	}
	return "and"
}

// Predicate decides whether an item passes a filter.
type Predicate[T any] func(T) bool

type filter[T any] struct {
	id   string
	pred Predicate[T]
}

// Context holds one viewer's view over a paginated collection.
type Context[T any] struct {
	backing  []T
	filters  []filter[T]
	strategy Strategy
	page     int
	perPage  int

	filtered []T
	dirty    bool
}

// New builds a context over items showing perPage items per page. perPage is
// clamped to at least one.
func New[T any](items []T, perPage int) *Context[T] {
	if perPage < 1 {
		perPage = 1
	}
	return &Context[T]{
		backing: slices.Clone(items),
		perPage: perPage,
		dirty:   true,
	}
}

// Items returns the unfiltered backing collection.
func (c *Context[T]) Items() []T {
	return slices.Clone(c.backing)
}

// UpdateItems replaces the backing collection and clamps the current page
// into the new range.
func (c *Context[T]) UpdateItems(items []T) {
	c.backing = slices.Clone(items)
	c.dirty = true
	c.clamp()
}

// Filtered applies the active filters with the configured strategy.
func (c *Context[T]) Filtered() []T {
	return slices.Clone(c.view())
}

// view returns the memoised filter result. Callers must not modify it.
func (c *Context[T]) view() []T {
	if c.dirty {
		c.filtered = c.applyFilters()
		c.dirty = false
	}
	return c.filtered
}

func (c *Context[T]) applyFilters() []T {
	if len(c.filters) == 0 {
		return slices.Clone(c.backing)
	}
	out := make([]T, 0, len(c.backing))
	for _, item := range c.backing {
		if c.accepts(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Context[T]) accepts(item T) bool {
	switch c.strategy {
	case Any:
		for _, f := range c.filters {
			if f.pred(item) {
				return true
			}
		}
		return false
	default:
		for _, f := range c.filters {
			if !f.pred(item) {
				return false
			}
		}
		return true
	}
}

// Len reports the filtered item count.
func (c *Context[T]) Len() int {
	return len(c.view())
}

// PerPage reports the page size.
func (c *Context[T]) PerPage() int {
	return c.perPage
}

// SetPerPage changes the page size and clamps the current page.
func (c *Context[T]) SetPerPage(n int) {
	if n < 1 {
		n = 1
	}
	c.perPage = n
	c.clamp()
}

// TotalPages is max(1, ceil(filtered/perPage)).
func (c *Context[T]) TotalPages() int {
	n := c.Len()
	if n == 0 {
		return 1
	}
	return (n + c.perPage - 1) / c.perPage
}

// Page returns the zero-based current page.
func (c *Context[T]) Page() int {
	return c.page
}

// SetPage moves to page, clamped into range, and reports whether the page
// changed.
func (c *Context[T]) SetPage(page int) bool {
	old := c.page
	c.page = page
	c.clamp()
	return c.page != old
}

// NextPage advances one page. It returns false on the last page.
func (c *Context[T]) NextPage() bool {
	if c.page+1 >= c.TotalPages() {
		return false
	}
	c.page++
	return true
}

// PreviousPage goes back one page. It returns false on the first page.
func (c *Context[T]) PreviousPage() bool {
	if c.page <= 0 {
		return false
	}
	c.page--
	return true
}

// HasNext reports whether NextPage would move.
func (c *Context[T]) HasNext() bool {
	return c.page+1 < c.TotalPages()
}

// HasPrevious reports whether PreviousPage would move.
func (c *Context[T]) HasPrevious() bool {
	return c.page > 0
}

// PageItems returns the items on the current page.
func (c *Context[T]) PageItems() []T {
	items := c.view()
	start := c.page * c.perPage
	if start >= len(items) {
		return nil
	}
	end := min(len(items), start+c.perPage)
	return slices.Clone(items[start:end])
}

func (c *Context[T]) clamp() {
	total := c.TotalPages()
	if c.page >= total {
		c.page = total - 1
	}
	if c.page < 0 {
		c.page = 0
	}
}

func (c *Context[T]) changed() {
	c.dirty = true
	c.page = 0
}
