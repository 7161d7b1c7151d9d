package reactive

import "slices"

// Cache holds one viewer's computed values. It is confined to the viewer's
// owning goroutine and is not safe for concurrent use.
type Cache struct {
	entries map[uint64]entry
	hits    int
	misses  int
}

type entry struct {
	value any
	names []string
	owner string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]entry)}
}

func (c *Cache) lookup(id uint64) (any, bool) {
	e, ok := c.entries[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e.value, ok
}

func (c *Cache) store(id uint64, names []string, owner string, value any) {
	c.entries[id] = entry{value: value, names: names, owner: owner}
}

func (c *Cache) forget(id uint64) {
	delete(c.entries, id)
}

// Invalidate drops every value registered under name and reports how many
// entries were removed.
func (c *Cache) Invalidate(name string) int {
	if name == "" {
		return 0
	}
	removed := 0
	for id, e := range c.entries {
		if slices.Contains(e.names, name) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// InvalidateOwner drops every value owned by owner.
func (c *Cache) InvalidateOwner(owner string) int {
	removed := 0
	for id, e := range c.entries {
		if e.owner == owner {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	clear(c.entries)
}

// Len reports the number of cached values.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats reports lookup hits and misses since creation.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
