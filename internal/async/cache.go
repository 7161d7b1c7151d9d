// Package async caches background-loaded values per viewer with TTL and
// stale-while-revalidate semantics.
package async

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/panegrid/internal/logging/events"
)

// State describes an entry's lifecycle.
type State int

const (
	StateAbsent State = iota
	StateLoading
	StateLoaded
	StateStale
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateStale:
		return "stale"
	case StateError:
		return "error"
	default:
		return "absent"
	}
}

// Scheduler runs work away from the owning goroutine and later invokes done
// back on it.
type Scheduler interface {
	Go(work func() (any, error), done func(any, error))
}

// Supplier produces a value. ctx is cancelled when the cache is closed.
type Supplier func(ctx context.Context) (any, error)

// Entry is a snapshot of one cached key.
type Entry struct {
	Value      any
	HasValue   bool
	State      State
	LoadedAt   time.Time
	TTL        time.Duration
	Err        error
	Refreshing bool
}

// Expired reports whether a loaded entry outlived its TTL at now. A TTL of
// zero never expires.
func (e Entry) Expired(now time.Time) bool {
	if !e.HasValue || e.TTL <= 0 {
		return false
	}
	return now.Sub(e.LoadedAt) >= e.TTL
}

type entry struct {
	Entry
	inflight *call
	// failedAt is the time the last refresh of a held value failed.
	failedAt time.Time
	// outdated is set by Expire; requeue records an Expire that arrived
	// while a refresh was already running.
	outdated bool
	requeue  bool
}

// due reports whether a held value must be refreshed at now. After a failed
// refresh the next attempt waits one more TTL.
func (e *entry) due(now time.Time) bool {
	if e.outdated {
		return true
	}
	if !e.Expired(now) {
		return false
	}
	return e.failedAt.IsZero() || now.Sub(e.failedAt) >= e.TTL
}

type call struct {
	waiters []*Future
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithOwner labels trace output, usually with the viewer id.
func WithOwner(owner string) Option {
	return func(c *Cache) {
		c.owner = owner
	}
}

// Cache holds one viewer's async entries.
type Cache struct {
	sched Scheduler
	now   func() time.Time
	owner string

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	entries  map[string]*entry
	closed   bool
	onSettle func(key string)
}

// New builds a cache that schedules loads on sched.
func New(sched Scheduler, opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		sched:   sched,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSettle registers fn to run on the owning goroutine after every load for
// a key completes and has been stored.
func (c *Cache) OnSettle(fn func(key string)) {
	c.mu.Lock()
	c.onSettle = fn
	c.mu.Unlock()
}

// Load returns the cached value for key, starting a load when needed.
//
// A fresh entry resolves immediately without calling supplier. An expired
// entry resolves immediately with the stale value and triggers one
// background refresh; after a failed refresh the stale value is served
// without a new attempt until another TTL has passed. Otherwise the supplier runs through the scheduler and
// concurrent callers share the outstanding call.
func (c *Cache) Load(key string, ttl time.Duration, supplier Supplier) *Future {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return failed(ErrClosed)
	}
	e := c.entries[key]
	if e != nil && e.HasValue {
		now := c.now()
		if !e.due(now) {
			value, stale := e.Value, e.Expired(now)
			c.mu.Unlock()
			events.Cache.Hit(c.owner, key)
			return resolved(value, stale)
		}
		launch := c.startLocked(key, e, ttl, supplier)
		value := e.Value
		c.mu.Unlock()
		events.Cache.Stale(c.owner, key)
		if launch != nil {
			launch()
		}
		return resolved(value, true)
	}
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	f := newFuture()
	attached := e.inflight != nil
	launch := c.startLocked(key, e, ttl, supplier)
	e.inflight.waiters = append(e.inflight.waiters, f)
	c.mu.Unlock()
	if attached {
		events.Cache.Attach(c.owner, key)
	} else {
		events.Cache.Miss(c.owner, key)
	}
	if launch != nil {
		launch()
	}
	return f
}

// startLocked marks the entry in flight and returns the function that hands
// the supplier to the scheduler, or nil when a load is already running. The
// launch must happen after c.mu is released because schedulers may settle
// synchronously.
func (c *Cache) startLocked(key string, e *entry, ttl time.Duration, supplier Supplier) func() {
	if e.inflight != nil {
		return nil
	}
	cl := &call{}
	e.inflight = cl
	e.TTL = ttl
	if e.HasValue {
		e.Refreshing = true
	} else {
		e.State = StateLoading
		e.Err = nil
	}
	ctx := c.ctx
	work := func() (value any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		return supplier(ctx)
	}
	done := func(value any, err error) {
		c.settle(key, cl, value, err)
	}
	return func() {
		c.sched.Go(work, done)
	}
}

func (c *Cache) settle(key string, cl *call, value any, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		events.Cache.Drop(c.owner, key)
		return
	}
	if err != nil {
		err = &LoadError{Key: key, Err: err}
	}
	e := c.entries[key]
	current := e != nil && e.inflight == cl
	if current {
		e.inflight = nil
		e.Refreshing = false
		if err != nil {
			e.Err = err
			if e.HasValue {
				e.failedAt = c.now()
			} else {
				e.State = StateError
			}
			e.outdated = false
		} else {
			e.Value = value
			e.HasValue = true
			e.State = StateLoaded
			e.LoadedAt = c.now()
			e.Err = nil
			e.failedAt = time.Time{}
			e.outdated = e.requeue
		}
		e.requeue = false
	}
	waiters := cl.waiters
	notify := c.onSettle
	c.mu.Unlock()

	events.Cache.Settle(c.owner, key, err)
	for _, w := range waiters {
		w.resolve(value, err)
	}
	if current && notify != nil {
		notify(key)
	}
}

// Peek returns a snapshot of key without triggering a load. Loaded entries
// past their TTL report StateStale.
func (c *Cache) Peek(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{State: StateAbsent}, false
	}
	snap := e.Entry
	if snap.HasValue && (e.outdated || snap.Expired(c.now())) {
		snap.State = StateStale
	}
	return snap, true
}

// Invalidate drops key so the next Load is a cold load. A load already in
// flight still resolves its waiters but its result is not stored.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	events.Cache.Invalidate(c.owner, key)
}

// Expire marks the held value of key as outdated. The next Load serves it
// stale and refreshes it in the background; if a refresh is already running
// another one follows it. An entry without a value is dropped instead.
func (c *Cache) Expire(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	switch {
	case !ok:
	case !e.HasValue:
		delete(c.entries, key)
	default:
		e.outdated = true
		e.requeue = e.inflight != nil
	}
	c.mu.Unlock()
	events.Cache.Expire(c.owner, key)
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Close cancels supplier contexts, fails pending futures with ErrClosed and
// drops any completion that arrives afterwards.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	var pending []*Future
	for _, e := range c.entries {
		if e.inflight != nil {
			pending = append(pending, e.inflight.waiters...)
		}
	}
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
	c.cancel()
	for _, f := range pending {
		f.resolve(nil, ErrClosed)
	}
}

// Closed reports whether Close has been called.
func (c *Cache) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
