package paging

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// AddFilter installs or replaces the predicate registered under id and
// resets to the first page. Filters evaluate in insertion order.
func (c *Context[T]) AddFilter(id string, pred Predicate[T]) {
	if pred == nil {
		return
	}
	for i, f := range c.filters {
		if f.id == id {
			c.filters[i].pred = pred
			c.changed()
			return
		}
	}
	c.filters = append(c.filters, filter[T]{id: id, pred: pred})
	c.changed()
}

// RemoveFilter drops id and reports whether it was active.
func (c *Context[T]) RemoveFilter(id string) bool {
	for i, f := range c.filters {
		if f.id == id {
			c.filters = append(c.filters[:i], c.filters[i+1:]...)
			c.changed()
			return true
		}
	}
	return false
}

// ToggleFilter removes id when present, otherwise adds pred. It returns
// whether the filter is active afterwards.
func (c *Context[T]) ToggleFilter(id string, pred Predicate[T]) bool {
	if c.RemoveFilter(id) {
		return false
	}
	c.AddFilter(id, pred)
	return pred != nil
}

// HasFilter reports whether id is active.
func (c *Context[T]) HasFilter(id string) bool {
	for _, f := range c.filters {
		if f.id == id {
			return true
		}
	}
	return false
}

// Filters lists the active filter ids in evaluation order.
func (c *Context[T]) Filters() []string {
	ids := make([]string, len(c.filters))
	for i, f := range c.filters {
		ids[i] = f.id
	}
	return ids
}

// ClearFilters removes every filter.
func (c *Context[T]) ClearFilters() {
	if len(c.filters) == 0 {
		return
	}
	c.filters = nil
	c.changed()
}

// Strategy reports how filters combine.
func (c *Context[T]) Strategy() Strategy {
	return c.strategy
}

// SetStrategy changes how filters combine and resets to the first page.
func (c *Context[T]) SetStrategy(s Strategy) {
	if s == c.strategy {
		return
	}
	c.strategy = s
	c.changed()
}

// Fuzzy matches items whose label contains the query's characters in order,
// ignoring case and diacritics. A blank query matches everything.
func Fuzzy[T any](query string, label func(T) string) Predicate[T] {
	trimmed := strings.TrimSpace(query)
	return func(item T) bool {
		if trimmed == "" {
			return true
		}
		return fuzzy.MatchNormalizedFold(trimmed, label(item))
	}
}
