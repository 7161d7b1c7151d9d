package screen

import (
	"errors"
	"fmt"

	"github.com/atomicstack/panegrid/internal/logging"
	"github.com/atomicstack/panegrid/internal/logging/events"
)

// Click routes one input event and returns the host's verdict. It never
// panics: any failure while resolving or handling the click is logged and
// turned into a cancel.
func (r *Registry) Click(c Click) Decision {
	v, ok := r.Session(c.Viewer)
	if !ok || v.closed {
		events.Click.Cancel(c.Viewer, c.Cell, "no session")
		return cancelled(c)
	}
	if c.Region == RegionViewer || c.Cell < 0 || c.Cell >= r.def.Size() {
		return r.viewerRegion(c)
	}

	var d Decision
	err := safeCall(func() error {
		var err error
		d, err = r.route(v, c)
		v.Flush()
		return err
	})
	if err == nil {
		return d
	}
	var herr *HandlerError
	if !errors.As(err, &herr) {
		err = &RoutingFailure{Viewer: c.Viewer, Cell: c.Cell, Err: err}
	}
	logging.Error(err)
	events.Click.Failure(c.Viewer, c.Cell, err)
	d = cancelled(c)
	d.Err = err
	return d
}

func (r *Registry) viewerRegion(c Click) Decision {
	allowed := false
	if r.opts.ViewerRegion != nil {
		err := safeCall(func() error {
			allowed = r.opts.ViewerRegion(c)
			return nil
		})
		if err != nil {
			logging.Error(&RoutingFailure{Viewer: c.Viewer, Cell: c.Cell, Err: err})
			allowed = false
		}
	}
	events.Click.ViewerRegion(c.Viewer, c.Cell, allowed)
	if !allowed {
		return cancelled(c)
	}
	return Decision{Cursor: c.Cursor}
}

func (r *Registry) route(v *Viewer, c Click) (Decision, error) {
	pane, ok := r.locate(c.Cell)
	if !ok {
		events.Click.Cancel(c.Viewer, c.Cell, "no pane")
		return cancelled(c), nil
	}
	events.Click.Route(c.Viewer, c.Cell, c.Kind.String(), pane.Name())

	ref, ok := v.rendered[pane.Name()][c.Cell]
	if !ok {
		events.Click.Cancel(c.Viewer, c.Cell, "empty cell")
		return cancelled(c), nil
	}
	ctx := &ClickContext{
		Viewer: v,
		Pane:   pane.Name(),
		Cell:   c.Cell,
		Slot:   pane.Bounds().Slot(c.Cell),
		Kind:   c.Kind,
		Item:   ref.item,
		Value:  ref.value,
	}

	var (
		d   Decision
		err error
	)
	if ref.item.interactive {
		d, err = v.slotClick(ctx, c)
	} else {
		d, err = v.dispatch(ctx, c)
	}
	if err != nil {
		return d, err
	}
	v.applyRequests(ctx)
	return d, nil
}

func (v *Viewer) dispatch(ctx *ClickContext, c Click) (Decision, error) {
	h := ctx.Item.handlerFor(c.Kind)
	if h == nil {
		events.Click.Cancel(c.Viewer, c.Cell, "no handler")
		return cancelled(c), nil
	}
	events.Click.Dispatch(c.Viewer, c.Cell, ctx.Item.id)
	if err := safeCall(func() error { return h(ctx) }); err != nil {
		return cancelled(c), &HandlerError{Viewer: c.Viewer, Cell: c.Cell, Item: ctx.Item.id, Err: err}
	}
	return cancelled(c), nil
}

func (v *Viewer) slotClick(ctx *ClickContext, c Click) (Decision, error) {
	it := ctx.Item
	before := v.SlotContent(c.Cell)
	after, cursor, ok := plan(c.Kind, before, c.Cursor, it.pickup, it.place)
	if !ok {
		events.Click.Cancel(c.Viewer, c.Cell, "slot not permitted")
		return cancelled(c), nil
	}
	change := SlotChange{
		Cell:   c.Cell,
		Slot:   ctx.Slot,
		Before: before,
		After:  after,
		Kind:   Classify(before, after),
	}
	v.SetSlot(c.Cell, after)
	if it.onChange != nil {
		if err := safeCall(func() error { return it.onChange(ctx, change) }); err != nil {
			v.SetSlot(c.Cell, before)
			return cancelled(c), &HandlerError{Viewer: c.Viewer, Cell: c.Cell, Item: it.id, Err: fmt.Errorf("%s: %w", change.Kind, err)}
		}
	}
	events.Click.SlotChange(c.Viewer, c.Cell, change.Kind.String())
	return Decision{Cursor: cursor, Change: &change}, nil
}

func (v *Viewer) applyRequests(ctx *ClickContext) {
	if ctx.refreshAll {
		v.refresh()
		return
	}
	for _, name := range ctx.refreshPanes {
		if err := v.refreshPane(name); err != nil {
			logging.Errorf("refresh after click for %s: %w", v.id, err)
		}
	}
}
