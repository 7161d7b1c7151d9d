package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces job starts across all workers of a pool. Each caller
// reserves the next free start time, so concurrent workers queue behind one
// another instead of polling.
type throttle struct {
	spacing time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(spacing time.Duration) *throttle {
	if spacing <= 0 {
		return &throttle{}
	}
	return &throttle{spacing: spacing}
}

// reserve returns how long the caller must wait for its slot.
func (t *throttle) reserve(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := now
	if t.next.After(now) {
		start = t.next
	}
	t.next = start.Add(t.spacing)
	return start.Sub(now)
}

// wait blocks until the caller may start. It returns false if ctx ends
// first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.spacing <= 0 {
		return ctx.Err() == nil
	}
	delay := t.reserve(time.Now())
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
