package screen

import (
	"fmt"
	"sort"

	"github.com/atomicstack/panegrid/internal/grid"
	"github.com/atomicstack/panegrid/internal/surface"
)

// PaneKind identifies the pane variant.
type PaneKind int

const (
	KindStatic PaneKind = iota
	KindPaginated
	KindAsyncPaginated
)

func (k PaneKind) String() string {
	switch k {
	case KindPaginated:
		return "paginated"
	case KindAsyncPaginated:
		return "async-paginated"
	default:
		return "static"
	}
}

// Suspense is the data state of a paginated pane.
type Suspense int

const (
	SuspenseLoaded Suspense = iota
	SuspenseLoading
	SuspenseError
	SuspenseEmpty
)

func (s Suspense) String() string {
	switch s {
	case SuspenseLoading:
		return "loading"
	case SuspenseError:
		return "error"
	case SuspenseEmpty:
		return "empty"
	default:
		return "loaded"
	}
}

// Pane is a named rectangle of a screen. The set of implementations is
// closed: static, paginated and async paginated panes.
type Pane interface {
	Name() string
	Bounds() grid.Bounds
	Kind() PaneKind

	paint(v *Viewer) frame
	refresh(v *Viewer)
}

// Rect is the pane rectangle in grid rows and columns.
type Rect struct {
	Row    int
	Col    int
	Width  int
	Height int
}

// PaneBuilder declares a pane. Build errors surface from ScreenBuilder.Build.
type PaneBuilder interface {
	build(gridWidth int) (Pane, error)
}

// frame is one render pass of a pane, indexed by slot.
type frame struct {
	reps     []surface.Representation
	refs     []*slotRef
	suspense Suspense
}

func newFrame(capacity int) frame {
	return frame{
		reps: make([]surface.Representation, capacity),
		refs: make([]*slotRef, capacity),
	}
}

// slotRef is what the router resolves a clicked cell to.
type slotRef struct {
	item  *Item
	value any
}

type flowEntry struct {
	item  *Item
	value any
}

type placement struct {
	row, col int
	item     *ItemBuilder
}

// layout is the part shared by every pane variant: explicit items keyed by
// slot, the filler, and the bounds.
type layout struct {
	name     string
	bounds   grid.Bounds
	explicit map[int]*Item
	order    []int
	filler   *Item
}

func buildLayout(name string, r Rect, gridWidth int, placed []placement, filler *ItemBuilder) (layout, error) {
	if name == "" {
		return layout{}, fmt.Errorf("pane name is required")
	}
	b, err := grid.NewBounds(r.Row, r.Col, r.Width, r.Height, gridWidth)
	if err != nil {
		return layout{}, fmt.Errorf("pane %q: %w", name, err)
	}
	l := layout{name: name, bounds: b, explicit: make(map[int]*Item, len(placed))}
	for _, p := range placed {
		if p.row < 0 || p.col < 0 || p.row >= r.Height || p.col >= r.Width {
			return layout{}, &grid.LayoutError{
				First:  name,
				Bounds: b,
				Reason: fmt.Sprintf("item at (%d,%d) is outside the pane", p.row, p.col),
			}
		}
		slot := p.row*r.Width + p.col
		if _, dup := l.explicit[slot]; dup {
			return layout{}, &grid.LayoutError{
				First:  name,
				Bounds: b,
				Reason: fmt.Sprintf("two items placed at (%d,%d)", p.row, p.col),
			}
		}
		it, err := p.item.build(name)
		if err != nil {
			return layout{}, fmt.Errorf("pane %q: %w", name, err)
		}
		l.explicit[slot] = it
		l.order = append(l.order, slot)
	}
	sort.Ints(l.order)
	if filler != nil {
		it, err := filler.build(name)
		if err != nil {
			return layout{}, fmt.Errorf("pane %q filler: %w", name, err)
		}
		if it.interactive {
			return layout{}, &ItemConfigError{Item: it.id, Reason: "filler cannot be an interactive slot"}
		}
		l.filler = it
	}
	return l, nil
}

func buildFlow(name string, items []*ItemBuilder) ([]*Item, error) {
	out := make([]*Item, 0, len(items))
	for _, b := range items {
		it, err := b.build(name)
		if err != nil {
			return nil, fmt.Errorf("pane %q: %w", name, err)
		}
		if it.interactive {
			return nil, &ItemConfigError{Item: it.id, Reason: "interactive slots cannot auto-flow"}
		}
		out = append(out, it)
	}
	return out, nil
}

func (l *layout) Name() string {
	return l.name
}

func (l *layout) Bounds() grid.Bounds {
	return l.bounds
}

// paint runs the render contract: explicit items, then the flow entries into
// the free slots, then the filler into whatever is still empty.
func (l *layout) paint(v *Viewer, explicit bool, flow []flowEntry) frame {
	f := newFrame(l.bounds.Capacity())
	occupied := make([]bool, len(f.reps))

	if explicit {
		for _, slot := range l.order {
			it := l.explicit[slot]
			if it.interactive {
				f.reps[slot] = v.SlotContent(l.bounds.SlotCell(slot))
				f.refs[slot] = &slotRef{item: it}
				occupied[slot] = true
				continue
			}
			if rep, ok := v.evaluate(l.name, it); ok {
				f.reps[slot] = rep
				f.refs[slot] = &slotRef{item: it}
				occupied[slot] = true
			}
		}
	}

	visible := make([]flowEntry, 0, len(flow))
	reps := make([]surface.Representation, 0, len(flow))
	for _, e := range flow {
		if rep, ok := v.evaluate(l.name, e.item); ok {
			visible = append(visible, e)
			reps = append(reps, rep)
		}
	}
	for i, slot := range autoPosition(occupied, len(visible)) {
		if slot < 0 {
			break
		}
		f.reps[slot] = reps[i]
		f.refs[slot] = &slotRef{item: visible[i].item, value: visible[i].value}
		occupied[slot] = true
	}

	if l.filler != nil {
		rep, ok := v.evaluate(l.name, l.filler)
		for slot := range f.reps {
			if !occupied[slot] && ok {
				f.reps[slot] = rep
				f.refs[slot] = &slotRef{item: l.filler}
			}
		}
	}
	return f
}

// StaticBuilder declares a pane of fixed items.
type StaticBuilder struct {
	name   string
	rect   Rect
	placed []placement
	flow   []*ItemBuilder
	filler *ItemBuilder
}

// NewStatic starts a static pane declaration.
func NewStatic(name string, r Rect) *StaticBuilder {
	return &StaticBuilder{name: name, rect: r}
}

// Place pins item to a pane-local cell.
func (b *StaticBuilder) Place(row, col int, item *ItemBuilder) *StaticBuilder {
	b.placed = append(b.placed, placement{row: row, col: col, item: item})
	return b
}

// Flow appends auto-positioned items.
func (b *StaticBuilder) Flow(items ...*ItemBuilder) *StaticBuilder {
	b.flow = append(b.flow, items...)
	return b
}

// Filler paints item into every cell left empty.
func (b *StaticBuilder) Filler(item *ItemBuilder) *StaticBuilder {
	b.filler = item
	return b
}

func (b *StaticBuilder) build(gridWidth int) (Pane, error) {
	l, err := buildLayout(b.name, b.rect, gridWidth, b.placed, b.filler)
	if err != nil {
		return nil, err
	}
	flow, err := buildFlow(b.name, b.flow)
	if err != nil {
		return nil, err
	}
	return &staticPane{layout: l, flow: flow}, nil
}

type staticPane struct {
	layout
	flow []*Item
}

func (p *staticPane) Kind() PaneKind {
	return KindStatic
}

func (p *staticPane) paint(v *Viewer) frame {
	entries := make([]flowEntry, len(p.flow))
	for i, it := range p.flow {
		entries[i] = flowEntry{item: it}
	}
	return p.layout.paint(v, true, entries)
}

func (p *staticPane) refresh(*Viewer) {}
