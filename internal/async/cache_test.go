package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/panegrid/internal/testutil"
)

func newTestCache() (*Cache, *testutil.Scheduler, *testutil.Clock) {
	sched := testutil.NewScheduler()
	clock := testutil.NewClock()
	return New(sched, WithClock(clock.Now), WithOwner("tester")), sched, clock
}

func countingSupplier(calls *atomic.Int32, value func(n int32) any) Supplier {
	return func(context.Context) (any, error) {
		n := calls.Add(1)
		return value(n), nil
	}
}

func TestConcurrentLoadsShareOneSupplierCall(t *testing.T) {
	cache, sched, _ := newTestCache()
	var calls atomic.Int32
	supplier := countingSupplier(&calls, func(n int32) any { return int(n) })

	var wg sync.WaitGroup
	futures := make([]*Future, 2)
	for i := range futures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			futures[i] = cache.Load("items", time.Minute, supplier)
		}(i)
	}
	wg.Wait()

	if sched.Pending() != 1 {
		t.Fatalf("expected one scheduled load, got %d", sched.Pending())
	}
	entry, _ := cache.Peek("items")
	if entry.State != StateLoading {
		t.Fatalf("expected loading state, got %s", entry.State)
	}
	sched.Flush()
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one supplier call, got %d", calls.Load())
	}
	for i, f := range futures {
		if !f.Ready() {
			t.Fatalf("future %d not resolved", i)
		}
		if got, err := As[int](f); err != nil || got != 1 {
			t.Fatalf("future %d: expected 1, got %d/%v", i, got, err)
		}
	}
}

func TestFreshEntryServedWithoutSupplier(t *testing.T) {
	cache, sched, clock := newTestCache()
	var calls atomic.Int32
	supplier := countingSupplier(&calls, func(n int32) any { return n })

	cache.Load("k", time.Minute, supplier)
	sched.Flush()
	clock.Advance(30 * time.Second)

	f := cache.Load("k", time.Minute, supplier)
	if !f.Ready() || f.Stale() {
		t.Fatalf("expected fresh resolved future")
	}
	if sched.Pending() != 0 || calls.Load() != 1 {
		t.Fatalf("expected no new load, pending=%d calls=%d", sched.Pending(), calls.Load())
	}
}

func TestExpiredEntryServesStaleAndRefreshesOnce(t *testing.T) {
	cache, sched, clock := newTestCache()
	var calls atomic.Int32
	supplier := countingSupplier(&calls, func(n int32) any { return n })

	cache.Load("k", time.Minute, supplier)
	sched.Flush()
	clock.Advance(2 * time.Minute)

	if entry, _ := cache.Peek("k"); entry.State != StateStale {
		t.Fatalf("expected stale entry, got %s", entry.State)
	}

	first := cache.Load("k", time.Minute, supplier)
	second := cache.Load("k", time.Minute, supplier)
	for _, f := range []*Future{first, second} {
		if !f.Ready() || !f.Stale() {
			t.Fatalf("expected stale value served immediately")
		}
		if got, _ := As[int32](f); got != 1 {
			t.Fatalf("expected stale value 1, got %d", got)
		}
	}
	if sched.Pending() != 1 {
		t.Fatalf("expected exactly one background refresh, got %d", sched.Pending())
	}
	sched.Flush()
	f := cache.Load("k", time.Minute, supplier)
	if got, _ := As[int32](f); got != 2 || f.Stale() {
		t.Fatalf("expected refreshed value 2, got %d (stale=%v)", got, f.Stale())
	}
}

func TestInvalidateForcesColdLoad(t *testing.T) {
	cache, sched, _ := newTestCache()
	var calls atomic.Int32
	supplier := countingSupplier(&calls, func(n int32) any { return n })

	cache.Load("k", time.Minute, supplier)
	sched.Flush()
	cache.Invalidate("k")

	f := cache.Load("k", time.Minute, supplier)
	if f.Ready() {
		t.Fatal("expected cold load after invalidate, got resolved future")
	}
	if entry, _ := cache.Peek("k"); entry.State != StateLoading || entry.HasValue {
		t.Fatalf("expected loading without value, got %+v", entry)
	}
	sched.Flush()
	if got, _ := As[int32](f); got != 2 {
		t.Fatalf("expected second supplier result, got %d", got)
	}
}

func TestSupplierErrorCapturedAsLoadError(t *testing.T) {
	cache, sched, _ := newTestCache()
	boom := errors.New("db down")
	f := cache.Load("k", time.Minute, func(context.Context) (any, error) { return nil, boom })
	sched.Flush()

	_, err := f.Result()
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, boom) {
		t.Fatalf("expected LoadError wrapping boom, got %v", err)
	}
	entry, _ := cache.Peek("k")
	if entry.State != StateError || entry.Err == nil {
		t.Fatalf("expected error entry, got %+v", entry)
	}

	f = cache.Load("k", time.Minute, func(context.Context) (any, error) { return "ok", nil })
	if f.Ready() {
		t.Fatal("expected errored entry to retry")
	}
	sched.Flush()
	if got, _ := As[string](f); got != "ok" {
		t.Fatalf("expected retry value, got %q", got)
	}
}

func TestSupplierPanicBecomesError(t *testing.T) {
	cache, sched, _ := newTestCache()
	f := cache.Load("k", 0, func(context.Context) (any, error) { panic("nope") })
	sched.Flush()
	_, err := f.Result()
	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %v", err)
	}
}

func TestRefreshFailureKeepsStaleValue(t *testing.T) {
	cache, sched, clock := newTestCache()
	cache.Load("k", time.Second, func(context.Context) (any, error) { return "v1", nil })
	sched.Flush()
	clock.Advance(time.Hour)

	f := cache.Load("k", time.Second, func(context.Context) (any, error) { return nil, errors.New("flaky") })
	if got, _ := As[string](f); got != "v1" {
		t.Fatalf("expected stale v1, got %q", got)
	}
	sched.Flush()
	entry, _ := cache.Peek("k")
	if !entry.HasValue || entry.Value != "v1" || entry.Err == nil {
		t.Fatalf("expected stale value retained with error, got %+v", entry)
	}
}

func TestCloseDropsLateCompletions(t *testing.T) {
	cache, sched, _ := newTestCache()
	settled := 0
	cache.OnSettle(func(string) { settled++ })

	var sawCancel atomic.Bool
	f := cache.Load("k", time.Minute, func(ctx context.Context) (any, error) {
		if ctx.Err() != nil {
			sawCancel.Store(true)
		}
		return "late", nil
	})
	cache.Close()

	if _, err := f.Result(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected pending future to fail with ErrClosed, got %v", err)
	}
	sched.Flush()
	if !sawCancel.Load() {
		t.Fatal("expected supplier context to be cancelled")
	}
	if settled != 0 {
		t.Fatalf("expected no settle callbacks after close, got %d", settled)
	}
	if _, ok := cache.Peek("k"); ok {
		t.Fatal("expected closed cache to hold no entries")
	}
	if _, err := cache.Load("k", time.Minute, nil).Result(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed for loads after close, got %v", err)
	}
}

func TestOnSettleAndThen(t *testing.T) {
	cache, sched, _ := newTestCache()
	var keys []string
	cache.OnSettle(func(key string) { keys = append(keys, key) })
	f := cache.Load("a", 0, func(context.Context) (any, error) { return 1, nil })
	var got any
	f.Then(func(v any, err error) { got = v })
	sched.Flush()
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("expected settle for a, got %v", keys)
	}
	if got != 1 {
		t.Fatalf("expected Then callback with 1, got %v", got)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if v, err := f.Wait(ctx); err != nil || v != 1 {
		t.Fatalf("expected Wait to return 1, got %v/%v", v, err)
	}
}

func TestFailedRefreshWaitsOneTTLBeforeRetrying(t *testing.T) {
	cache, sched, clock := newTestCache()
	fail := false
	supplier := func(context.Context) (any, error) {
		if fail {
			return nil, errors.New("flaky")
		}
		return "v", nil
	}
	cache.Load("k", time.Minute, supplier)
	sched.Flush()

	clock.Advance(2 * time.Minute)
	fail = true
	cache.Load("k", time.Minute, supplier)
	sched.Flush()

	f := cache.Load("k", time.Minute, supplier)
	if !f.Stale() || sched.Pending() != 0 {
		t.Fatalf("expected stale value without a retry, stale=%v pending=%d", f.Stale(), sched.Pending())
	}

	clock.Advance(time.Minute)
	fail = false
	cache.Load("k", time.Minute, supplier)
	if sched.Pending() != 1 {
		t.Fatalf("expected a retry after another ttl, got %d pending", sched.Pending())
	}
	sched.Flush()
	if entry, _ := cache.Peek("k"); entry.State != StateLoaded || entry.Err != nil {
		t.Fatalf("expected recovered entry, got %+v", entry)
	}
}

func TestExpireServesStaleAndRefreshes(t *testing.T) {
	cache, sched, _ := newTestCache()
	var calls atomic.Int32
	supplier := countingSupplier(&calls, func(n int32) any { return n })

	cache.Load("k", 0, supplier)
	sched.Flush()
	cache.Expire("k")
	if entry, _ := cache.Peek("k"); entry.State != StateStale {
		t.Fatalf("expected stale after expire, got %s", entry.State)
	}

	f := cache.Load("k", 0, supplier)
	if got, _ := As[int32](f); got != 1 || !f.Stale() {
		t.Fatalf("expected stale 1, got %d (stale=%v)", got, f.Stale())
	}
	cache.Expire("k")
	sched.Flush()
	if calls.Load() != 2 {
		t.Fatalf("expected one refresh, got %d calls", calls.Load())
	}

	f = cache.Load("k", 0, supplier)
	if !f.Stale() || sched.Pending() != 1 {
		t.Fatalf("expire during a refresh should queue another, pending=%d", sched.Pending())
	}
	sched.Flush()
	f = cache.Load("k", 0, supplier)
	if got, _ := As[int32](f); got != 3 || f.Stale() {
		t.Fatalf("expected fresh 3, got %d (stale=%v)", got, f.Stale())
	}
}

func TestExpireDropsEntryWithoutValue(t *testing.T) {
	cache, sched, _ := newTestCache()
	cache.Load("k", time.Minute, func(context.Context) (any, error) { return nil, errors.New("down") })
	sched.Flush()
	cache.Expire("k")
	if _, ok := cache.Peek("k"); ok {
		t.Fatal("expected errored entry to be dropped")
	}
	cache.Expire("missing")
}
