package events

import "github.com/atomicstack/panegrid/internal/logging"

// ClickTracer records each step of click routing.
type ClickTracer struct{}

// Click traces the router from pane lookup to the final decision.
var Click = ClickTracer{}

func (ClickTracer) Route(viewer string, cell int, kind, pane string) {
	logging.Trace("click.route", map[string]interface{}{"viewer": viewer, "cell": cell, "kind": kind, "pane": pane})
}

func (ClickTracer) ViewerRegion(viewer string, cell int, allowed bool) {
	logging.Trace("click.viewer-region", map[string]interface{}{"viewer": viewer, "cell": cell, "allowed": allowed})
}

func (ClickTracer) Dispatch(viewer string, cell int, item string) {
	logging.Trace("click.dispatch", map[string]interface{}{"viewer": viewer, "cell": cell, "item": item})
}

func (ClickTracer) SlotChange(viewer string, cell int, change string) {
	logging.Trace("click.slot-change", map[string]interface{}{"viewer": viewer, "cell": cell, "change": change})
}

func (ClickTracer) Cancel(viewer string, cell int, reason string) {
	logging.Trace("click.cancel", map[string]interface{}{"viewer": viewer, "cell": cell, "reason": reason})
}

func (ClickTracer) Failure(viewer string, cell int, err error) {
	if err == nil {
		return
	}
	logging.Trace("click.failure", map[string]interface{}{"viewer": viewer, "cell": cell, "error": err.Error()})
}
