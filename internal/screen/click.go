package screen

import (
	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
)

// ClickKind distinguishes mouse buttons.
type ClickKind int

const (
	ClickLeft ClickKind = iota
	ClickRight
	ClickMiddle
)

func (k ClickKind) String() string {
	switch k {
	case ClickRight:
		return "right"
	case ClickMiddle:
		return "middle"
	default:
		return "left"
	}
}

// Region says which surface a click landed on.
type Region int

const (
	// RegionScreen is the shared screen grid.
	RegionScreen Region = iota
	// RegionViewer is the viewer's own area, such as an inventory.
	RegionViewer
)

// Click is one input event delivered by the host.
type Click struct {
	Viewer string
	Cell   int
	Kind   ClickKind
	Region Region
	// Cursor is the stack the viewer is holding when clicking.
	Cursor surface.Representation
}

// Decision is the router's verdict. Cancel tells the host to reject the
// underlying mutation; Cursor is what the viewer holds afterwards.
type Decision struct {
	Cancel bool
	Cursor surface.Representation
	Change *SlotChange
	Err    error
}

func cancelled(c Click) Decision {
	return Decision{Cancel: true, Cursor: c.Cursor}
}

// Handler reacts to a click on a display item.
type Handler func(*ClickContext) error

// ChangeHandler observes a permitted interactive slot mutation. Returning an
// error rejects the mutation.
type ChangeHandler func(*ClickContext, SlotChange) error

// ClickContext is passed to handlers.
type ClickContext struct {
	Viewer *Viewer
	Pane   string
	Cell   int
	Slot   int
	Kind   ClickKind
	Item   *Item
	// Value is the page element behind a paginated item, nil otherwise.
	Value any

	refreshAll   bool
	refreshPanes []string
}

// State is shorthand for Viewer.State.
func (c *ClickContext) State() state.Store {
	return c.Viewer.State()
}

// Refresh asks for a full refresh of the session once the handler returns.
func (c *ClickContext) Refresh() {
	c.refreshAll = true
}

// RefreshPane asks for the named panes, or the clicked pane when none are
// given, to be refreshed once the handler returns.
func (c *ClickContext) RefreshPane(names ...string) {
	if len(names) == 0 {
		names = []string{c.Pane}
	}
	c.refreshPanes = append(c.refreshPanes, names...)
}
