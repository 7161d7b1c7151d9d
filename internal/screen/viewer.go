package screen

import (
	"fmt"
	"time"

	"github.com/atomicstack/panegrid/internal/async"
	"github.com/atomicstack/panegrid/internal/logging/events"
	"github.com/atomicstack/panegrid/internal/paging"
	"github.com/atomicstack/panegrid/internal/reactive"
	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/text"
)

// PageKey is the reactive name invalidated whenever the page, filters or
// data of the named pane change. Items that show paging state depend on it.
func PageKey(pane string) string {
	return "page:" + pane
}

// Viewer is one viewer's session on a screen. All methods must be called on
// the host goroutine that owns the registry.
type Viewer struct {
	id    string
	token string
	reg   *Registry
	def   *Definition

	surface surface.Surface
	cache   *reactive.Cache
	async   *async.Cache
	store   state.Store

	pagers   map[string]Pager
	loaded   map[string]time.Time
	loadErr  map[string]error
	rendered map[string]map[int]*slotRef
	suspense map[string]Suspense
	slots    map[int]surface.Representation
	title    string

	closed    bool
	dirty     bool
	rendering bool
}

func newViewer(reg *Registry, id, token string, s surface.Surface) *Viewer {
	v := &Viewer{
		id:       id,
		token:    token,
		reg:      reg,
		def:      reg.def,
		surface:  s,
		cache:    reactive.NewCache(),
		store:    state.NewStore(reg.def.defaults),
		pagers:   make(map[string]Pager),
		loaded:   make(map[string]time.Time),
		loadErr:  make(map[string]error),
		rendered: make(map[string]map[int]*slotRef),
		suspense: make(map[string]Suspense),
		slots:    make(map[int]surface.Representation),
	}
	v.async = async.New(reg.opts.Scheduler, async.WithClock(reg.opts.Clock), async.WithOwner(id))
	v.async.OnSettle(func(key string) {
		if v.closed {
			return
		}
		v.invalidatePage(key)
		v.render()
	})
	v.store.OnChange(func(key string) {
		events.Session.StateSet(v.id, key)
		v.cache.Invalidate(key)
		for name, pg := range v.pagers {
			if r, ok := pg.(reapplier); ok {
				r.reapply()
				v.cache.Invalidate(PageKey(name))
			}
		}
		v.dirty = true
	})
	return v
}

// ID returns the viewer identity.
func (v *Viewer) ID() string {
	return v.id
}

// Token is a random identifier minted when the session was created.
func (v *Viewer) Token() string {
	return v.token
}

// Definition returns the screen the session renders.
func (v *Viewer) Definition() *Definition {
	return v.def
}

// State returns the viewer's state store.
func (v *Viewer) State() state.Store {
	return v.store
}

// Title is the title resolved during the last render.
func (v *Viewer) Title() string {
	return v.title
}

// Closed reports whether the session was closed.
func (v *Viewer) Closed() bool {
	return v.closed
}

// Suspense reports the data state of a pane at the last render. Static panes
// are always loaded.
func (v *Viewer) Suspense(pane string) Suspense {
	return v.suspense[pane]
}

// LoadedAt reports when the pane's async data was last applied.
func (v *Viewer) LoadedAt(pane string) time.Time {
	return v.loaded[pane]
}

// LoadError returns the message of the pane's last failed load.
func (v *Viewer) LoadError(pane string) string {
	if err := v.loadErr[pane]; err != nil {
		return err.Error()
	}
	if entry, ok := v.async.Peek(pane); ok && entry.Err != nil {
		return entry.Err.Error()
	}
	return ""
}

// ItemAt returns the item the viewer currently sees at cell, if it can be
// clicked.
func (v *Viewer) ItemAt(cell int) (*Item, bool) {
	for _, refs := range v.rendered {
		if ref, ok := refs[cell]; ok {
			return ref.item, true
		}
	}
	return nil, false
}

// ValueAt returns the page element behind the item at cell.
func (v *Viewer) ValueAt(cell int) (any, bool) {
	for _, refs := range v.rendered {
		if ref, ok := refs[cell]; ok {
			return ref.value, ref.value != nil
		}
	}
	return nil, false
}

// SlotContent returns what an interactive slot at cell holds.
func (v *Viewer) SlotContent(cell int) surface.Representation {
	if rep, ok := v.slots[cell]; ok {
		return rep
	}
	return surface.Empty
}

// SetSlot replaces the content of the interactive slot at cell.
func (v *Viewer) SetSlot(cell int, rep surface.Representation) {
	if rep.IsEmpty() {
		delete(v.slots, cell)
		rep = surface.Empty
	} else {
		v.slots[cell] = rep
	}
	v.surface.SetCell(cell, rep)
}

// Slots lists the non-empty interactive slots by cell.
func (v *Viewer) Slots() map[int]surface.Representation {
	out := make(map[int]surface.Representation, len(v.slots))
	for k, rep := range v.slots {
		out[k] = rep
	}
	return out
}

// Pager returns the pagination state of a paginated pane.
func (v *Viewer) Pager(pane string) (Pager, error) {
	p, ok := v.def.Pane(pane)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPane, pane)
	}
	pp, ok := p.(interface{ pagerFor(*Viewer) Pager })
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotPaginated, pane)
	}
	return pp.pagerFor(v), nil
}

// NextPage advances the pane one page.
func (v *Viewer) NextPage(pane string) (bool, error) {
	return v.movePage(pane, Pager.NextPage)
}

// PreviousPage moves the pane back one page.
func (v *Viewer) PreviousPage(pane string) (bool, error) {
	return v.movePage(pane, Pager.PreviousPage)
}

// SetPage jumps to page, clamped into range.
func (v *Viewer) SetPage(pane string, page int) (bool, error) {
	return v.movePage(pane, func(pg Pager) bool { return pg.SetPage(page) })
}

func (v *Viewer) movePage(pane string, move func(Pager) bool) (bool, error) {
	pg, err := v.Pager(pane)
	if err != nil {
		return false, err
	}
	if !move(pg) {
		return false, nil
	}
	events.Page.Move(v.id, pane, pg.Page(), pg.TotalPages())
	v.invalidatePage(pane)
	return true, nil
}

// ToggleFilter flips a declared filter and reports whether it is now active.
func (v *Viewer) ToggleFilter(pane, id string) (bool, error) {
	pg, err := v.Pager(pane)
	if err != nil {
		return false, err
	}
	active, err := pg.ToggleFilter(id)
	if err != nil {
		return false, err
	}
	events.Page.Filter(v.id, pane, id, active)
	v.invalidatePage(pane)
	return active, nil
}

// SetStrategy changes how the pane combines its filters.
func (v *Viewer) SetStrategy(pane string, s paging.Strategy) error {
	pg, err := v.Pager(pane)
	if err != nil {
		return err
	}
	if pg.Strategy() == s {
		return nil
	}
	pg.SetStrategy(s)
	v.invalidatePage(pane)
	return nil
}

// Search fuzzy-filters a searchable pane. An empty query clears the search.
func (v *Viewer) Search(pane, query string) error {
	pg, err := v.Pager(pane)
	if err != nil {
		return err
	}
	if pg.Search(query) {
		events.Page.Filter(v.id, pane, SearchFilter, query != "")
		v.invalidatePage(pane)
	}
	return nil
}

// Invalidate drops cached values registered under the given names and
// schedules a redraw.
func (v *Viewer) Invalidate(names ...string) {
	for _, name := range names {
		v.cache.Invalidate(name)
	}
	v.dirty = true
}

// CacheStats reports reactive lookups that hit and missed, and how many
// values are cached right now.
func (v *Viewer) CacheStats() (hits, misses, cached int) {
	hits, misses = v.cache.Stats()
	return hits, misses, v.cache.Len()
}

// Flush redraws the session if anything changed since the last render.
func (v *Viewer) Flush() {
	if v.dirty && !v.closed {
		v.render()
	}
}

func (v *Viewer) invalidatePage(pane string) {
	v.cache.Invalidate(PageKey(pane))
	v.dirty = true
}

func (v *Viewer) resolver() text.Resolver {
	return v.reg.opts.Resolver
}

func (v *Viewer) close() {
	v.closed = true
	v.async.Close()
	v.cache.InvalidateAll()
	clear(v.pagers)
	clear(v.rendered)
	clear(v.slots)
}
