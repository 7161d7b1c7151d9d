package backend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Kind represents the type of event emitted by the pool.
type Kind int

const (
	// KindCompletion carries the result of a scheduled job.
	KindCompletion Kind = iota
	// KindTick is emitted every tick interval so the host can refresh
	// time-dependent output.
	KindTick
)

// Event conveys a finished job or a tick. Done must be invoked on the host
// goroutine; the dispatcher does that.
type Event struct {
	Kind  Kind
	Value any
	Err   error
	Done  func(any, error)
}

type job struct {
	work func() (any, error)
	done func(any, error)
}

// Pool runs scheduled work on a fixed set of goroutines and publishes the
// results as events. It implements async.Scheduler.
type Pool struct {
	workers  int
	tick     time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	jobs   chan job
	events chan Event
	group  errgroup.Group
}

// Options tunes a Pool.
type Options struct {
	// Workers is the number of concurrent jobs. Values below one mean one.
	Workers int
	// Tick is the interval of KindTick events. Zero disables ticks.
	Tick time.Duration
	// Spacing is the minimum delay between two job starts.
	Spacing time.Duration
}

// NewPool starts the workers.
func NewPool(opts Options) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	workers := max(opts.Workers, 1)
	p := &Pool{
		workers:  workers,
		tick:     opts.Tick,
		throttle: newThrottle(opts.Spacing),
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(chan job, 64),
		events:   make(chan Event, 16),
	}

	for i := 0; i < workers; i++ {
		p.group.Go(p.work)
	}
	if p.tick > 0 {
		p.group.Go(p.ticker)
	}

	go func() {
		p.group.Wait()
		close(p.events)
	}()

	return p
}

// Go queues work. It is safe to call from any goroutine; after Stop the
// job is dropped.
func (p *Pool) Go(work func() (any, error), done func(any, error)) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job{work: work, done: done}:
	}
}

// Events returns a channel of completions and ticks. It is closed once
// every goroutine has exited after Stop.
func (p *Pool) Events() <-chan Event {
	return p.events
}

// Workers reports the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Stop cancels the pool. Jobs already running finish but their results are
// discarded; use Wait if a clean drain is required (e.g. in tests).
func (p *Pool) Stop() {
	p.cancel()
}

// Wait blocks until all goroutines have exited and reports why the first
// one stopped. Call after Stop.
func (p *Pool) Wait() error {
	return p.group.Wait()
}

// work runs jobs until the pool stops. Job errors travel in events; the
// returned error only reports why the worker exited.
func (p *Pool) work() error {
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case j := <-p.jobs:
			if !p.throttle.wait(p.ctx) {
				return p.ctx.Err()
			}
			value, err := j.work()
			if !p.emit(Event{Kind: KindCompletion, Value: value, Err: err, Done: j.done}) {
				return p.ctx.Err()
			}
		}
	}
}

func (p *Pool) ticker() error {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case <-ticker.C:
			if !p.emit(Event{Kind: KindTick}) {
				return p.ctx.Err()
			}
		}
	}
}

func (p *Pool) emit(evt Event) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.events <- evt:
		return true
	}
}
