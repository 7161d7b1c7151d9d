// Package reactive memoizes per-viewer computed values until they are
// explicitly invalidated.
package reactive

import "sync/atomic"

var nextID atomic.Uint64

// Value is a lazily computed property. The zero value is not usable; build
// one with Of, Named or Static.
type Value[A, T any] struct {
	id      uint64
	names   []string
	owner   string
	compute func(A) (T, error)
	static  bool
	value   T
}

// Of wraps compute as an anonymous reactive value.
func Of[A, T any](compute func(A) (T, error)) *Value[A, T] {
	return &Value[A, T]{id: nextID.Add(1), compute: compute}
}

// Func wraps a compute function that cannot fail.
func Func[A, T any](compute func(A) T) *Value[A, T] {
	return Of(func(a A) (T, error) { return compute(a), nil })
}

// Named wraps compute so it can be invalidated through Cache.Invalidate(name).
func Named[A, T any](name string, compute func(A) (T, error)) *Value[A, T] {
	v := Of(compute)
	v.names = []string{name}
	return v
}

// Static wraps a constant. It never touches a cache.
func Static[A, T any](value T) *Value[A, T] {
	return &Value[A, T]{id: nextID.Add(1), static: true, value: value}
}

// Names returns the invalidation names.
func (v *Value[A, T]) Names() []string {
	return v.names
}

// DependOn adds invalidation names. Call it before the value is first read.
func (v *Value[A, T]) DependOn(names ...string) *Value[A, T] {
	for _, n := range names {
		if n != "" {
			v.names = append(v.names, n)
		}
	}
	return v
}

// IsStatic reports whether the value is a constant.
func (v *Value[A, T]) IsStatic() bool {
	return v.static
}

// Own records the group the value belongs to, for Cache.InvalidateOwner.
// Owners are assigned while a screen is being built, before any reads.
func (v *Value[A, T]) Own(owner string) {
	v.owner = owner
}

// Get returns the cached value for this viewer, computing it on first use.
// Errors are returned without caching, so the next Get retries.
func (v *Value[A, T]) Get(c *Cache, arg A) (T, error) {
	if v.static {
		return v.value, nil
	}
	if c != nil {
		if cached, ok := c.lookup(v.id); ok {
			out, _ := cached.(T)
			return out, nil
		}
	}
	out, err := v.compute(arg)
	if err != nil {
		var zero T
		return zero, err
	}
	if c != nil {
		c.store(v.id, v.names, v.owner, out)
	}
	return out, nil
}

// Compute evaluates the value without reading or writing any cache.
func (v *Value[A, T]) Compute(arg A) (T, error) {
	if v.static {
		return v.value, nil
	}
	return v.compute(arg)
}

// Invalidate drops this value from c. No-op for static values.
func (v *Value[A, T]) Invalidate(c *Cache) {
	if v.static || c == nil {
		return
	}
	c.forget(v.id)
}

// Cached reports whether c currently holds a value for v.
func (v *Value[A, T]) Cached(c *Cache) bool {
	if v.static || c == nil {
		return false
	}
	_, ok := c.lookup(v.id)
	return ok
}
