package async

import (
	"context"
	"sync"
)

// Future is the result of a Load. It is resolved on the owning goroutine
// when the load settles, or immediately for cache hits.
type Future struct {
	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	value any
	err   error
	stale bool
	then  []func(any, error)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolved(value any, stale bool) *Future {
	f := newFuture()
	f.stale = stale
	f.resolve(value, nil)
	return f
}

func failed(err error) *Future {
	f := newFuture()
	f.resolve(nil, err)
	return f
}

func (f *Future) resolve(value any, err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.value = value
		f.err = err
		callbacks := f.then
		f.then = nil
		close(f.done)
		f.mu.Unlock()
		for _, fn := range callbacks {
			fn(value, err)
		}
	})
}

// Done is closed once the future has a result.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the result is available.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Stale reports whether the value was served from an expired entry.
func (f *Future) Stale() bool {
	return f.stale
}

// Result returns the value and error, or (nil, nil) while pending.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Then registers fn to run with the result. If the future already resolved
// fn runs immediately on the calling goroutine.
func (f *Future) Then(fn func(any, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		value, err := f.value, f.err
		f.mu.Unlock()
		fn(value, err)
		return
	default:
	}
	f.then = append(f.then, fn)
	f.mu.Unlock()
}

// As converts a resolved future's value to T.
func As[T any](f *Future) (T, error) {
	var zero T
	value, err := f.Result()
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	out, ok := value.(T)
	if !ok {
		return zero, &TypeError{Value: value}
	}
	return out, nil
}
