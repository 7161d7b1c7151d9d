package screen

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/atomicstack/panegrid/internal/grid"
	"github.com/atomicstack/panegrid/internal/logging/events"
)

// Definition is an immutable screen shared by every viewer session.
type Definition struct {
	title     string
	titleVars map[string]func(*Viewer) string
	varNames  []string
	rows      int
	width     int
	defaults  map[string]any
	panes     []Pane
	byName    map[string]Pane
}

// Title returns the unresolved title template.
func (d *Definition) Title() string {
	return d.title
}

// Rows is the grid height.
func (d *Definition) Rows() int {
	return d.rows
}

// Width is the grid column count.
func (d *Definition) Width() int {
	return d.width
}

// Size is the number of grid cells.
func (d *Definition) Size() int {
	return d.rows * d.width
}

// Panes returns the panes in declaration order.
func (d *Definition) Panes() []Pane {
	return append([]Pane(nil), d.panes...)
}

// Pane looks a pane up by name.
func (d *Definition) Pane(name string) (Pane, bool) {
	p, ok := d.byName[name]
	return p, ok
}

// PaneAt returns the pane containing cell.
func (d *Definition) PaneAt(cell int) (Pane, bool) {
	for _, p := range d.panes {
		if p.Bounds().Contains(cell) {
			return p, true
		}
	}
	return nil, false
}

// Defaults returns a copy of the default state.
func (d *Definition) Defaults() map[string]any {
	return maps.Clone(d.defaults)
}

// ScreenBuilder declares a screen.
type ScreenBuilder struct {
	title     string
	rows      int
	width     int
	defaults  map[string]any
	titleVars map[string]func(*Viewer) string
	panes     []PaneBuilder
}

// NewScreen starts a screen of rows grid rows. The title may contain {var}
// placeholders bound with TitleVar.
func NewScreen(title string, rows int) *ScreenBuilder {
	return &ScreenBuilder{
		title:     title,
		rows:      rows,
		width:     grid.DefaultWidth,
		defaults:  make(map[string]any),
		titleVars: make(map[string]func(*Viewer) string),
	}
}

// Width overrides the column count.
func (b *ScreenBuilder) Width(n int) *ScreenBuilder {
	b.width = n
	return b
}

// Default seeds a state key for every new viewer.
func (b *ScreenBuilder) Default(key string, value any) *ScreenBuilder {
	b.defaults[key] = value
	return b
}

// TitleVar binds a title placeholder.
func (b *ScreenBuilder) TitleVar(name string, fn func(*Viewer) string) *ScreenBuilder {
	b.titleVars[name] = fn
	return b
}

// Pane adds panes in declaration order.
func (b *ScreenBuilder) Pane(panes ...PaneBuilder) *ScreenBuilder {
	b.panes = append(b.panes, panes...)
	return b
}

// Build validates every pane and the layout as a whole.
func (b *ScreenBuilder) Build() (*Definition, error) {
	d, err := b.build()
	if err != nil {
		events.Screen.BuildFailed(b.title, err)
		return nil, err
	}
	names := make([]string, len(d.panes))
	for i, p := range d.panes {
		names[i] = p.Name()
	}
	events.Screen.Build(d.title, d.rows, names)
	return d, nil
}

// MustBuild is Build for screens known to be valid.
func (b *ScreenBuilder) MustBuild() *Definition {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

func (b *ScreenBuilder) build() (*Definition, error) {
	if b.rows <= 0 {
		return nil, fmt.Errorf("screen %q: rows must be positive (got %d)", b.title, b.rows)
	}
	if b.width <= 0 {
		return nil, fmt.Errorf("screen %q: width must be positive (got %d)", b.title, b.width)
	}
	if len(b.panes) == 0 {
		return nil, errors.New("screen has no panes")
	}
	d := &Definition{
		title:     b.title,
		titleVars: maps.Clone(b.titleVars),
		rows:      b.rows,
		width:     b.width,
		defaults:  maps.Clone(b.defaults),
		byName:    make(map[string]Pane, len(b.panes)),
	}
	regions := make([]grid.Region, 0, len(b.panes))
	for _, pb := range b.panes {
		p, err := pb.build(b.width)
		if err != nil {
			return nil, err
		}
		if _, dup := d.byName[p.Name()]; dup {
			return nil, fmt.Errorf("screen %q: duplicate pane name %q", b.title, p.Name())
		}
		d.panes = append(d.panes, p)
		d.byName[p.Name()] = p
		regions = append(regions, grid.Region{Name: p.Name(), Bounds: p.Bounds()})
	}
	if err := grid.CheckLayout(b.rows, regions); err != nil {
		return nil, err
	}
	for name := range d.titleVars {
		d.varNames = append(d.varNames, name)
	}
	sort.Strings(d.varNames)
	return d, nil
}
