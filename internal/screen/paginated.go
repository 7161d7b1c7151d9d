package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/panegrid/internal/async"
	"github.com/atomicstack/panegrid/internal/logging"
	"github.com/atomicstack/panegrid/internal/paging"
	"github.com/atomicstack/panegrid/internal/surface"
)

// SearchFilter is the filter id used by Viewer.Search.
const SearchFilter = "search"

// DefaultTTL applies to async panes that do not set one.
const DefaultTTL = time.Minute

// Pager is the type-erased view of one viewer's pagination context.
type Pager interface {
	Page() int
	TotalPages() int
	Len() int
	PerPage() int
	HasNext() bool
	HasPrevious() bool
	NextPage() bool
	PreviousPage() bool
	SetPage(page int) bool
	Filters() []string
	HasFilter(id string) bool
	Strategy() paging.Strategy
	SetStrategy(s paging.Strategy)
	ToggleFilter(id string) (bool, error)
	Search(query string) bool
	Query() string
}

type filterDecl[T any] struct {
	id     string
	pred   func(*Viewer, T) bool
	active bool
}

type pager[T any] struct {
	*paging.Context[T]
	decls []filterDecl[T]
	label func(T) string
	query string
	v     *Viewer
}

func (p *pager[T]) bind(d filterDecl[T]) paging.Predicate[T] {
	return func(item T) bool { return d.pred(p.v, item) }
}

func (p *pager[T]) ToggleFilter(id string) (bool, error) {
	for _, d := range p.decls {
		if d.id == id {
			return p.Context.ToggleFilter(id, p.bind(d)), nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownFilter, id)
}

func (p *pager[T]) Search(query string) bool {
	if p.label == nil || query == p.query {
		return false
	}
	p.query = query
	if query == "" {
		p.RemoveFilter(SearchFilter)
		return true
	}
	p.AddFilter(SearchFilter, paging.Fuzzy(query, p.label))
	return true
}

func (p *pager[T]) Query() string {
	return p.query
}

// reapply recomputes the filtered view after state the predicates read has
// changed. The page is kept and re-clamped.
func (p *pager[T]) reapply() {
	p.UpdateItems(p.Items())
}

type reapplier interface {
	reapply()
}

// PaginatedBuilder declares a paginated or async paginated pane over
// elements of type T.
type PaginatedBuilder[T any] struct {
	name     string
	rect     Rect
	async    bool
	items    []T
	source   func(*Viewer) []T
	loader   func(ctx context.Context, viewer string) ([]T, error)
	ttl      time.Duration
	render   func(*Viewer, T) *ItemBuilder
	perPage  int
	placed   []placement
	filler   *ItemBuilder
	filters  []filterDecl[T]
	strategy paging.Strategy
	label    func(T) string
	loading  []*ItemBuilder
	failed   []*ItemBuilder
	empty    []*ItemBuilder
}

// NewPaginated starts a paginated pane whose page elements are turned into
// items by render.
func NewPaginated[T any](name string, r Rect, render func(*Viewer, T) *ItemBuilder) *PaginatedBuilder[T] {
	return &PaginatedBuilder[T]{name: name, rect: r, render: render}
}

// NewAsyncPaginated starts a paginated pane backed by loader, which runs on
// the registry's scheduler.
func NewAsyncPaginated[T any](name string, r Rect, loader func(ctx context.Context, viewer string) ([]T, error), render func(*Viewer, T) *ItemBuilder) *PaginatedBuilder[T] {
	return &PaginatedBuilder[T]{name: name, rect: r, render: render, loader: loader, async: true, ttl: DefaultTTL}
}

// Items sets a fixed backing collection.
func (b *PaginatedBuilder[T]) Items(items ...T) *PaginatedBuilder[T] {
	b.items = append([]T(nil), items...)
	return b
}

// Source computes the backing collection per viewer. It is re-read on
// refresh.
func (b *PaginatedBuilder[T]) Source(fn func(*Viewer) []T) *PaginatedBuilder[T] {
	b.source = fn
	return b
}

// PerPage overrides the page size.
func (b *PaginatedBuilder[T]) PerPage(n int) *PaginatedBuilder[T] {
	b.perPage = n
	return b
}

// Place pins a fixed item inside the pane; page elements flow around it.
func (b *PaginatedBuilder[T]) Place(row, col int, item *ItemBuilder) *PaginatedBuilder[T] {
	b.placed = append(b.placed, placement{row: row, col: col, item: item})
	return b
}

// Filler paints item into every cell left empty.
func (b *PaginatedBuilder[T]) Filler(item *ItemBuilder) *PaginatedBuilder[T] {
	b.filler = item
	return b
}

// Filter declares a named predicate, optionally active from the start.
func (b *PaginatedBuilder[T]) Filter(id string, pred func(*Viewer, T) bool, active bool) *PaginatedBuilder[T] {
	b.filters = append(b.filters, filterDecl[T]{id: id, pred: pred, active: active})
	return b
}

// Strategy sets the initial filter combination.
func (b *PaginatedBuilder[T]) Strategy(s paging.Strategy) *PaginatedBuilder[T] {
	b.strategy = s
	return b
}

// Searchable enables Viewer.Search, matching queries against label.
func (b *PaginatedBuilder[T]) Searchable(label func(T) string) *PaginatedBuilder[T] {
	b.label = label
	return b
}

// TTL sets how long loaded data stays fresh.
func (b *PaginatedBuilder[T]) TTL(d time.Duration) *PaginatedBuilder[T] {
	b.ttl = d
	return b
}

// Loading sets the placeholder items shown while data loads.
func (b *PaginatedBuilder[T]) Loading(items ...*ItemBuilder) *PaginatedBuilder[T] {
	b.loading = items
	return b
}

// Failed sets the placeholder items shown when loading failed.
func (b *PaginatedBuilder[T]) Failed(items ...*ItemBuilder) *PaginatedBuilder[T] {
	b.failed = items
	return b
}

// Empty sets the placeholder items shown when the loaded collection is empty.
func (b *PaginatedBuilder[T]) Empty(items ...*ItemBuilder) *PaginatedBuilder[T] {
	b.empty = items
	return b
}

func (b *PaginatedBuilder[T]) build(gridWidth int) (Pane, error) {
	if b.render == nil {
		return nil, fmt.Errorf("pane %q: render function is required", b.name)
	}
	if b.async && b.loader == nil {
		return nil, fmt.Errorf("pane %q: loader is required", b.name)
	}
	l, err := buildLayout(b.name, b.rect, gridWidth, b.placed, b.filler)
	if err != nil {
		return nil, err
	}
	perPage := b.perPage
	if perPage <= 0 {
		perPage = l.bounds.Capacity() - len(l.explicit)
	}
	if perPage <= 0 {
		return nil, fmt.Errorf("pane %q: no cells left for page elements", b.name)
	}
	p := &paginatedPane[T]{
		layout:   l,
		async:    b.async,
		items:    b.items,
		source:   b.source,
		loader:   b.loader,
		ttl:      b.ttl,
		render:   b.render,
		perPage:  perPage,
		filters:  b.filters,
		strategy: b.strategy,
		label:    b.label,
	}
	if b.async {
		loading := b.loading
		if len(loading) == 0 {
			loading = []*ItemBuilder{Label(surface.Clock, "Loading...")}
		}
		failed := b.failed
		if len(failed) == 0 {
			failed = []*ItemBuilder{Label(surface.Barrier, "Failed to load", "{error}").
				Var("error", func(v *Viewer) string { return v.LoadError(b.name) })}
		}
		empty := b.empty
		if len(empty) == 0 {
			empty = []*ItemBuilder{Label(surface.Barrier, "Nothing here")}
		}
		if p.loading, err = buildFlow(b.name, loading); err != nil {
			return nil, err
		}
		if p.failed, err = buildFlow(b.name, failed); err != nil {
			return nil, err
		}
		if p.empty, err = buildFlow(b.name, empty); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type paginatedPane[T any] struct {
	layout
	async    bool
	items    []T
	source   func(*Viewer) []T
	loader   func(ctx context.Context, viewer string) ([]T, error)
	ttl      time.Duration
	render   func(*Viewer, T) *ItemBuilder
	perPage  int
	filters  []filterDecl[T]
	strategy paging.Strategy
	label    func(T) string

	loading []*Item
	failed  []*Item
	empty   []*Item
}

func (p *paginatedPane[T]) Kind() PaneKind {
	if p.async {
		return KindAsyncPaginated
	}
	return KindPaginated
}

// pager returns the viewer's context for this pane, creating it on first use.
func (p *paginatedPane[T]) pager(v *Viewer) *pager[T] {
	if existing, ok := v.pagers[p.name].(*pager[T]); ok {
		return existing
	}
	var items []T
	if !p.async {
		items = p.sourceItems(v)
	}
	pg := &pager[T]{Context: paging.New(items, p.perPage), decls: p.filters, label: p.label, v: v}
	pg.SetStrategy(p.strategy)
	for _, d := range p.filters {
		if d.active {
			pg.AddFilter(d.id, pg.bind(d))
		}
	}
	v.pagers[p.name] = pg
	return pg
}

func (p *paginatedPane[T]) pagerFor(v *Viewer) Pager {
	return p.pager(v)
}

func (p *paginatedPane[T]) sourceItems(v *Viewer) []T {
	if p.source == nil {
		return p.items
	}
	var items []T
	err := safeCall(func() error {
		items = p.source(v)
		return nil
	})
	if err != nil {
		logging.Errorf("pane %q source for %s: %w", p.name, v.id, err)
	}
	return items
}

// sync pulls async data into the pager and reports the suspense state.
func (p *paginatedPane[T]) sync(v *Viewer, pg *pager[T]) Suspense {
	if !p.async {
		return SuspenseLoaded
	}
	entry, ok := v.async.Peek(p.name)
	if !ok || entry.HasValue || entry.Err == nil {
		f := v.async.Load(p.name, p.ttl, p.supplier(v.id))
		if !f.Ready() {
			return SuspenseLoading
		}
		if _, err := f.Result(); err != nil {
			v.loadErr[p.name] = err
			return SuspenseError
		}
		entry, ok = v.async.Peek(p.name)
	}
	if !ok || !entry.HasValue {
		if entry.Err != nil {
			v.loadErr[p.name] = entry.Err
			return SuspenseError
		}
		return SuspenseLoading
	}
	if !entry.LoadedAt.Equal(v.loaded[p.name]) {
		items, _ := entry.Value.([]T)
		pg.UpdateItems(items)
		v.loaded[p.name] = entry.LoadedAt
		v.invalidatePage(p.name)
	}
	if len(pg.Items()) == 0 {
		return SuspenseEmpty
	}
	return SuspenseLoaded
}

func (p *paginatedPane[T]) supplier(viewer string) async.Supplier {
	loader := p.loader
	return func(ctx context.Context) (any, error) {
		items, err := loader(ctx, viewer)
		if err != nil {
			return nil, err
		}
		return items, nil
	}
}

func (p *paginatedPane[T]) paint(v *Viewer) frame {
	pg := p.pager(v)
	suspense := p.sync(v, pg)
	var f frame
	switch suspense {
	case SuspenseLoading:
		f = p.layout.paint(v, false, entries(p.loading))
	case SuspenseError:
		f = p.layout.paint(v, false, entries(p.failed))
	case SuspenseEmpty:
		f = p.layout.paint(v, false, entries(p.empty))
	default:
		page := pg.PageItems()
		flow := make([]flowEntry, 0, len(page))
		for _, elem := range page {
			it, err := p.renderElement(v, elem)
			if err != nil {
				logging.Errorf("pane %q element for %s: %w", p.name, v.id, err)
				continue
			}
			flow = append(flow, flowEntry{item: it, value: elem})
		}
		f = p.layout.paint(v, true, flow)
	}
	f.suspense = suspense
	return f
}

func (p *paginatedPane[T]) renderElement(v *Viewer, elem T) (it *Item, err error) {
	err = safeCall(func() error {
		b := p.render(v, elem)
		if b == nil {
			return &ItemConfigError{Reason: "render returned no item"}
		}
		it, err = b.build(p.name)
		if err != nil {
			return err
		}
		if it.interactive {
			return &ItemConfigError{Item: it.id, Reason: "interactive slots cannot auto-flow"}
		}
		it.ephemeral = true
		return nil
	})
	return it, err
}

func (p *paginatedPane[T]) refresh(v *Viewer) {
	pg, ok := v.pagers[p.name].(*pager[T])
	if !ok {
		return
	}
	if p.async {
		if entry, found := v.async.Peek(p.name); found && entry.Err != nil {
			if entry.HasValue {
				v.async.Expire(p.name)
			} else {
				v.async.Invalidate(p.name)
			}
			delete(v.loadErr, p.name)
		}
		pg.reapply()
		return
	}
	if p.source != nil {
		pg.UpdateItems(p.sourceItems(v))
		return
	}
	pg.reapply()
}

func entries(items []*Item) []flowEntry {
	out := make([]flowEntry, len(items))
	for i, it := range items {
		out[i] = flowEntry{item: it}
	}
	return out
}
