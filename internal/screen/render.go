package screen

import (
	"github.com/atomicstack/panegrid/internal/logging"
	"github.com/atomicstack/panegrid/internal/logging/events"
	"github.com/atomicstack/panegrid/internal/surface"
)

// maxPasses bounds how often one render call repeats itself when painting a
// pane changed state another pane reads.
const maxPasses = 3

// render paints every pane. Calls made while a render is running only mark
// the session dirty; the running render picks that up with another pass.
func (v *Viewer) render() {
	if v.closed {
		return
	}
	if v.rendering {
		v.dirty = true
		return
	}
	v.rendering = true
	defer func() { v.rendering = false }()
	for pass := 0; pass < maxPasses; pass++ {
		v.dirty = false
		v.title = v.resolveTitle()
		for _, p := range v.def.panes {
			v.paintPane(p)
		}
		if !v.dirty {
			return
		}
	}
}

// renderPane paints a single pane.
func (v *Viewer) renderPane(p Pane) {
	if v.closed {
		return
	}
	if v.rendering {
		v.dirty = true
		return
	}
	v.rendering = true
	defer func() { v.rendering = false }()
	v.paintPane(p)
}

func (v *Viewer) paintPane(p Pane) {
	var f frame
	err := safeCall(func() error {
		f = p.paint(v)
		return nil
	})
	if err != nil {
		logging.Errorf("render pane %q for %s: %w", p.Name(), v.id, err)
		f = newFrame(p.Bounds().Capacity())
		f.suspense = SuspenseError
	}

	b := p.Bounds()
	refs := make(map[int]*slotRef)
	painted := 0
	for slot, rep := range f.reps {
		cell := b.SlotCell(slot)
		if rep.IsEmpty() {
			rep = surface.Empty
		} else {
			painted++
		}
		v.surface.SetCell(cell, rep)
		if f.suspense == SuspenseLoaded && f.refs[slot] != nil {
			refs[cell] = f.refs[slot]
		}
	}
	v.rendered[p.Name()] = refs
	v.suspense[p.Name()] = f.suspense
	events.Screen.RenderPane(v.id, p.Name(), f.suspense.String(), painted)
}

// evaluate resolves an item's visibility and representation. ok is false
// when the item should not occupy a cell.
func (v *Viewer) evaluate(pane string, it *Item) (rep surface.Representation, ok bool) {
	err := safeCall(func() error {
		if it.visible != nil {
			var visible bool
			var err error
			if it.ephemeral {
				visible, err = it.visible.Compute(v)
			} else {
				visible, err = it.visible.Get(v.cache, v)
			}
			if err != nil || !visible {
				return err
			}
		}
		var err error
		if it.ephemeral {
			rep, err = it.rep.Compute(v)
		} else {
			rep, err = it.rep.Get(v.cache, v)
		}
		if err != nil {
			return err
		}
		ok = !rep.IsEmpty()
		return nil
	})
	if err != nil {
		logging.Errorf("render item %q in pane %q for %s: %w", it.id, pane, v.id, err)
		return surface.Empty, false
	}
	return rep, ok
}

func (v *Viewer) resolveTitle() string {
	if len(v.def.varNames) == 0 {
		return v.def.title
	}
	values := make(map[string]string, len(v.def.varNames))
	err := safeCall(func() error {
		for _, name := range v.def.varNames {
			values[name] = v.def.titleVars[name](v)
		}
		return nil
	})
	if err != nil {
		logging.Errorf("resolve title for %s: %w", v.id, err)
	}
	return v.resolver().Resolve(v.def.title, values)
}
