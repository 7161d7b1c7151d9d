package screen

import (
	"fmt"
	"sort"

	"github.com/atomicstack/panegrid/internal/reactive"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/text"
)

// Item is a built display item or interactive slot. Items are immutable and
// shared by every viewer of a screen.
type Item struct {
	id string

	rep      *reactive.Value[*Viewer, surface.Representation]
	visible  *reactive.Value[*Viewer, bool]
	onClick  Handler
	handlers map[ClickKind]Handler

	interactive bool
	pickup      bool
	place       bool
	onChange    ChangeHandler

	// ephemeral items are rebuilt on every render and bypass the reactive
	// cache.
	ephemeral bool
}

// ID returns the item's identifier, used in traces and errors.
func (it *Item) ID() string {
	return it.id
}

// Interactive reports whether the item is a slot proxy.
func (it *Item) Interactive() bool {
	return it.interactive
}

// CanPickup reports the slot's pickup permission.
func (it *Item) CanPickup() bool {
	return it.pickup
}

// CanPlace reports the slot's placement permission.
func (it *Item) CanPlace() bool {
	return it.place
}

func (it *Item) handlerFor(kind ClickKind) Handler {
	if h, ok := it.handlers[kind]; ok {
		return h
	}
	return it.onClick
}

func (it *Item) own(owner string) {
	if it.rep != nil {
		it.rep.Own(owner)
	}
	if it.visible != nil {
		it.visible.Own(owner)
	}
}

// ItemBuilder declares an item. Errors surface from Build.
type ItemBuilder struct {
	id string

	material     surface.Material
	materialFunc func(*Viewer) surface.Material
	name         string
	lore         []string
	amount       int
	amountFunc   func(*Viewer) int
	vars         map[string]func(*Viewer) string
	visible      func(*Viewer) bool
	deps         []string
	onClick      Handler
	handlers     map[ClickKind]Handler
	display      bool

	interactive bool
	pickup      bool
	place       bool
	onChange    ChangeHandler
}

// NewItem starts an item declaration.
func NewItem() *ItemBuilder {
	return &ItemBuilder{}
}

// ID names the item for traces.
func (b *ItemBuilder) ID(id string) *ItemBuilder {
	b.id = id
	return b
}

// Material sets a fixed material.
func (b *ItemBuilder) Material(m surface.Material) *ItemBuilder {
	b.material = m
	b.display = true
	return b
}

// MaterialFunc computes the material per viewer.
func (b *ItemBuilder) MaterialFunc(fn func(*Viewer) surface.Material) *ItemBuilder {
	b.materialFunc = fn
	b.display = true
	return b
}

// Name sets the display name template; {var} placeholders are resolved with
// the item's vars.
func (b *ItemBuilder) Name(template string) *ItemBuilder {
	b.name = template
	b.display = true
	return b
}

// Lore sets description line templates.
func (b *ItemBuilder) Lore(lines ...string) *ItemBuilder {
	b.lore = append([]string(nil), lines...)
	b.display = true
	return b
}

// Amount sets the stack size shown on the cell.
func (b *ItemBuilder) Amount(n int) *ItemBuilder {
	b.amount = n
	b.display = true
	return b
}

// AmountFunc computes the stack size per viewer.
func (b *ItemBuilder) AmountFunc(fn func(*Viewer) int) *ItemBuilder {
	b.amountFunc = fn
	b.display = true
	return b
}

// Var binds a template variable.
func (b *ItemBuilder) Var(name string, fn func(*Viewer) string) *ItemBuilder {
	if b.vars == nil {
		b.vars = make(map[string]func(*Viewer) string)
	}
	b.vars[name] = fn
	b.display = true
	return b
}

// VisibleWhen installs a visibility predicate.
func (b *ItemBuilder) VisibleWhen(fn func(*Viewer) bool) *ItemBuilder {
	b.visible = fn
	b.display = true
	return b
}

// DependOn names state keys or page keys whose change invalidates the item.
func (b *ItemBuilder) DependOn(keys ...string) *ItemBuilder {
	b.deps = append(b.deps, keys...)
	return b
}

// OnClick handles every click kind without a more specific handler.
func (b *ItemBuilder) OnClick(h Handler) *ItemBuilder {
	b.onClick = h
	b.display = true
	return b
}

// On handles one click kind.
func (b *ItemBuilder) On(kind ClickKind, h Handler) *ItemBuilder {
	if b.handlers == nil {
		b.handlers = make(map[ClickKind]Handler)
	}
	b.handlers[kind] = h
	b.display = true
	return b
}

// OnLeft is On(ClickLeft, h).
func (b *ItemBuilder) OnLeft(h Handler) *ItemBuilder { return b.On(ClickLeft, h) }

// OnRight is On(ClickRight, h).
func (b *ItemBuilder) OnRight(h Handler) *ItemBuilder { return b.On(ClickRight, h) }

// OnMiddle is On(ClickMiddle, h).
func (b *ItemBuilder) OnMiddle(h Handler) *ItemBuilder { return b.On(ClickMiddle, h) }

// Interactive turns the item into a slot proxy the viewer can put stacks
// into or take them from.
func (b *ItemBuilder) Interactive() *ItemBuilder {
	b.interactive = true
	return b
}

// AllowPickup permits taking stacks out of the slot.
func (b *ItemBuilder) AllowPickup() *ItemBuilder {
	b.pickup = true
	return b
}

// AllowPlace permits putting stacks into the slot.
func (b *ItemBuilder) AllowPlace() *ItemBuilder {
	b.place = true
	return b
}

// OnChange observes slot mutations.
func (b *ItemBuilder) OnChange(h ChangeHandler) *ItemBuilder {
	b.onChange = h
	return b
}

// Build validates the declaration.
func (b *ItemBuilder) Build() (*Item, error) {
	return b.build("")
}

// MustBuild is Build for declarations known to be valid.
func (b *ItemBuilder) MustBuild() *Item {
	it, err := b.Build()
	if err != nil {
		panic(err)
	}
	return it
}

func (b *ItemBuilder) build(owner string) (*Item, error) {
	if b == nil {
		return nil, &ItemConfigError{Reason: "nil item"}
	}
	slotFields := b.pickup || b.place || b.onChange != nil
	if b.interactive && b.display {
		return nil, &ItemConfigError{Item: b.id, Reason: "interactive slots cannot declare display fields"}
	}
	if !b.interactive && slotFields {
		return nil, &ItemConfigError{Item: b.id, Reason: "pickup, placement and change handlers require Interactive()"}
	}
	if b.interactive {
		it := &Item{id: b.id, interactive: true, pickup: b.pickup, place: b.place, onChange: b.onChange}
		return it, nil
	}
	if b.materialFunc == nil && !b.material.Valid() {
		return nil, &ItemConfigError{Item: b.id, Reason: fmt.Sprintf("material %q is not in the catalog", b.material)}
	}
	if b.amount < 0 || b.amount > surface.MaxStack {
		return nil, &ItemConfigError{Item: b.id, Reason: fmt.Sprintf("amount %d outside 0..%d", b.amount, surface.MaxStack)}
	}

	it := &Item{id: b.id, onClick: b.onClick}
	if len(b.handlers) > 0 {
		it.handlers = make(map[ClickKind]Handler, len(b.handlers))
		for k, h := range b.handlers {
			it.handlers[k] = h
		}
	}
	it.rep = reactive.Func(b.representation())
	it.rep.DependOn(b.deps...)
	if b.visible != nil {
		it.visible = reactive.Func(b.visible)
		it.visible.DependOn(b.deps...)
	}
	it.own(owner)
	return it, nil
}

func (b *ItemBuilder) representation() func(*Viewer) surface.Representation {
	material, materialFunc := b.material, b.materialFunc
	name := b.name
	lore := append([]string(nil), b.lore...)
	amount, amountFunc := b.amount, b.amountFunc
	if amount == 0 && amountFunc == nil {
		amount = 1
	}
	vars := make([]string, 0, len(b.vars))
	for k := range b.vars {
		vars = append(vars, k)
	}
	sort.Strings(vars)
	bindings := make([]func(*Viewer) string, len(vars))
	for i, k := range vars {
		bindings[i] = b.vars[k]
	}

	return func(v *Viewer) surface.Representation {
		m := material
		if materialFunc != nil {
			m = materialFunc(v)
			if !m.Valid() {
				m = surface.Barrier
			}
		}
		n := amount
		if amountFunc != nil {
			n = min(amountFunc(v), surface.MaxStack)
		}
		values := make(map[string]string, len(vars))
		for i, k := range vars {
			values[k] = bindings[i](v)
		}
		res := v.resolver()
		return surface.Representation{
			Material: m,
			Name:     res.Resolve(name, values),
			Lore:     text.ResolveAll(res, lore, values),
			Amount:   n,
		}
	}
}

// Button is a display item with a generic click handler.
func Button(m surface.Material, name string, h Handler) *ItemBuilder {
	return NewItem().Material(m).Name(name).OnClick(h)
}

// Label is a display item without handlers.
func Label(m surface.Material, name string, lore ...string) *ItemBuilder {
	b := NewItem().Material(m).Name(name)
	if len(lore) > 0 {
		b.Lore(lore...)
	}
	return b
}

// Slot is an interactive slot with both permissions.
func Slot(onChange ChangeHandler) *ItemBuilder {
	return NewItem().Interactive().AllowPickup().AllowPlace().OnChange(onChange)
}
