package dispatcher

import (
	"github.com/atomicstack/panegrid/internal/backend"
	"github.com/atomicstack/panegrid/internal/logging"
)

// Result tells the host what an event changed.
type Result struct {
	Completed bool
	Failed    bool
	Tick      bool
}

// Dispatcher applies backend events on the host goroutine.
type Dispatcher struct {
	completed int
	failed    int
}

func New() *Dispatcher {
	return &Dispatcher{}
}

// Handle delivers a completion to the callback that scheduled it.
func (d *Dispatcher) Handle(evt backend.Event) (res Result) {
	switch evt.Kind {
	case backend.KindTick:
		res.Tick = true
	case backend.KindCompletion:
		if evt.Done == nil {
			return res
		}
		res.Completed = true
		d.completed++
		if evt.Err != nil {
			res.Failed = true
			d.failed++
		}
		defer func() {
			if r := recover(); r != nil {
				logging.Errorf("completion callback panicked: %v", r)
				res.Failed = true
			}
		}()
		evt.Done(evt.Value, evt.Err)
	}
	return res
}

// Stats reports how many completions were applied and how many carried an
// error.
func (d *Dispatcher) Stats() (completed, failed int) {
	return d.completed, d.failed
}
