package testutil

import "sync"

type job struct {
	work func() (any, error)
	done func(any, error)
}

// Scheduler queues background work until the test flushes it, standing in
// for a worker pool plus the host's marshal-back loop.
type Scheduler struct {
	mu      sync.Mutex
	queue   []job
	started int
}

// NewScheduler returns an empty manual scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Go implements async.Scheduler.
func (s *Scheduler) Go(work func() (any, error), done func(any, error)) {
	s.mu.Lock()
	s.queue = append(s.queue, job{work: work, done: done})
	s.started++
	s.mu.Unlock()
}

// Pending reports queued jobs that have not run yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Started reports how many jobs have ever been scheduled.
func (s *Scheduler) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Flush runs queued jobs on the calling goroutine, including jobs queued by
// completions, and returns how many ran.
func (s *Scheduler) Flush() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return ran
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		value, err := next.work()
		next.done(value, err)
		ran++
	}
}

// Discard drops queued jobs without running them.
func (s *Scheduler) Discard() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	s.queue = nil
	return n
}

// RunWork executes queued work but holds the completions, returning a
// function that delivers them later. Tests use it to model completions that
// arrive after a session is gone.
func (s *Scheduler) RunWork() (deliver func()) {
	s.mu.Lock()
	jobs := s.queue
	s.queue = nil
	s.mu.Unlock()
	type result struct {
		value any
		err   error
	}
	results := make([]result, len(jobs))
	for i, j := range jobs {
		v, err := j.work()
		results[i] = result{value: v, err: err}
	}
	return func() {
		for i, j := range jobs {
			j.done(results[i].value, results[i].err)
		}
	}
}
