package screen

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/panegrid/internal/async"
	"github.com/atomicstack/panegrid/internal/logging/events"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/text"
)

// Options carries the host collaborators of a registry.
type Options struct {
	// Scheduler runs async loads. Completions must be delivered on the
	// goroutine that drives the registry. Defaults to running loads inline.
	Scheduler async.Scheduler
	// Resolver expands name and lore templates. Defaults to text.Braces.
	Resolver text.Resolver
	// Clock overrides time.Now for TTL checks.
	Clock func() time.Time
	// ViewerRegion decides clicks outside the screen grid. Returning true
	// lets the host apply them; the default cancels everything.
	ViewerRegion func(Click) bool
}

// Inline runs work immediately on the calling goroutine.
type Inline struct{}

func (Inline) Go(work func() (any, error), done func(any, error)) {
	done(work())
}

// Registry owns the viewer sessions of one screen definition.
type Registry struct {
	def  *Definition
	opts Options

	mu       sync.Mutex
	sessions map[string]*Viewer

	// locate resolves the pane owning a cell. Tests replace it.
	locate func(cell int) (Pane, bool)
}

// NewRegistry prepares a registry for def.
func NewRegistry(def *Definition, opts Options) *Registry {
	if opts.Scheduler == nil {
		opts.Scheduler = Inline{}
	}
	if opts.Resolver == nil {
		opts.Resolver = text.Braces{}
	}
	r := &Registry{def: def, opts: opts, sessions: make(map[string]*Viewer)}
	r.locate = def.PaneAt
	return r
}

// Definition returns the shared screen.
func (r *Registry) Definition() *Definition {
	return r.def
}

// Open returns the viewer's session, creating and rendering it on first
// open. Reopening reuses the session and redraws it onto s.
func (r *Registry) Open(viewer string, s surface.Surface) (*Viewer, error) {
	if s == nil || s.Size() < r.def.Size() {
		return nil, fmt.Errorf("open %s: %w", viewer, ErrSurfaceTooSmall)
	}
	r.mu.Lock()
	v, reused := r.sessions[viewer]
	if !reused {
		v = newViewer(r, viewer, uuid.NewString(), s)
		r.sessions[viewer] = v
	}
	r.mu.Unlock()

	events.Session.Open(viewer, v.token, reused)
	if reused {
		v.surface = s
	}
	v.render()
	return v, nil
}

// Close destroys the viewer's session. In-flight loads are cancelled and
// their results dropped.
func (r *Registry) Close(viewer string) error {
	r.mu.Lock()
	v, ok := r.sessions[viewer]
	delete(r.sessions, viewer)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("close %s: %w", viewer, ErrUnknownViewer)
	}
	v.close()
	events.Session.Close(viewer)
	return nil
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	for _, id := range r.Sessions() {
		_ = r.Close(id)
	}
}

// Session returns the open session of viewer.
func (r *Registry) Session(viewer string) (*Viewer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.sessions[viewer]
	return v, ok
}

// Sessions lists open viewer ids, sorted.
func (r *Registry) Sessions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Refresh drops every reactive value of the viewer, re-reads sync pane
// sources and redraws. Async data follows its TTL.
func (r *Registry) Refresh(viewer string) error {
	v, ok := r.Session(viewer)
	if !ok {
		return fmt.Errorf("refresh %s: %w", viewer, ErrUnknownViewer)
	}
	v.refresh()
	return nil
}

// RefreshPane drops the reactive values owned by one pane and redraws it.
func (r *Registry) RefreshPane(viewer, pane string) error {
	v, ok := r.Session(viewer)
	if !ok {
		return fmt.Errorf("refresh %s: %w", viewer, ErrUnknownViewer)
	}
	return v.refreshPane(pane)
}

// Reload discards the async data of a pane and loads it again.
func (r *Registry) Reload(viewer, pane string) error {
	v, ok := r.Session(viewer)
	if !ok {
		return fmt.Errorf("reload %s: %w", viewer, ErrUnknownViewer)
	}
	return v.Reload(pane)
}

func (v *Viewer) refresh() {
	if v.closed {
		return
	}
	events.Session.Refresh(v.id, "")
	v.cache.InvalidateAll()
	for _, p := range v.def.panes {
		p.refresh(v)
	}
	v.render()
}

func (v *Viewer) refreshPane(name string) error {
	p, ok := v.def.Pane(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPane, name)
	}
	if v.closed {
		return nil
	}
	events.Session.Refresh(v.id, name)
	v.cache.InvalidateOwner(name)
	v.cache.Invalidate(PageKey(name))
	p.refresh(v)
	v.renderPane(p)
	return nil
}

// Reload discards the pane's async data so the next render is a cold load.
func (v *Viewer) Reload(name string) error {
	if err := v.asyncPane(name); err != nil {
		return err
	}
	v.async.Invalidate(name)
	delete(v.loadErr, name)
	delete(v.loaded, name)
	v.invalidatePage(name)
	v.render()
	return nil
}

// Revalidate marks the pane's async data outdated. The pane keeps showing it
// while a background load replaces it.
func (v *Viewer) Revalidate(name string) error {
	if err := v.asyncPane(name); err != nil {
		return err
	}
	v.async.Expire(name)
	v.render()
	return nil
}

func (v *Viewer) asyncPane(name string) error {
	p, ok := v.def.Pane(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPane, name)
	}
	if p.Kind() != KindAsyncPaginated {
		return fmt.Errorf("%w: %q", ErrNotPaginated, name)
	}
	return nil
}
