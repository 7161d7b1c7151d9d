package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panegrid/internal/backend"
	"github.com/atomicstack/panegrid/internal/catalog"
	"github.com/atomicstack/panegrid/internal/menu"
	"github.com/atomicstack/panegrid/internal/screen"
	"github.com/atomicstack/panegrid/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Viewer   string
	Database string
	TTL      time.Duration
	Workers  int
	Width    int
	Height   int
	Mouse    bool
	Verbose  bool
	Screen   string
}

// tickInterval refreshes relative load times in the status line.
const tickInterval = 5 * time.Second

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := catalog.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	pool := backend.NewPool(backend.Options{Workers: cfg.Workers, Tick: tickInterval})
	defer pool.Stop()

	model, err := Setup(ctx, cfg, store, pool)
	if err != nil {
		return err
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Setup seeds the catalog, builds the configured screen and opens the
// viewer's session. pool may be nil to run loaders inline.
func Setup(ctx context.Context, cfg Config, store *catalog.Store, pool *backend.Pool) (*ui.Model, error) {
	if err := store.Seed(ctx, catalog.Demo()); err != nil {
		return nil, err
	}
	categories, err := store.Categories(ctx)
	if err != nil {
		return nil, err
	}

	inventory := ui.NewInventory()
	def, err := menu.BuildRegistry().Build(cfg.Screen, menu.Deps{
		Catalog:    store,
		Categories: categories,
		TTL:        cfg.TTL,
		Deliver:    inventory.Deliver,
		Context:    ctx,
	})
	if err != nil {
		return nil, err
	}

	opts := screen.Options{ViewerRegion: allowViewerRegion}
	if pool != nil {
		opts.Scheduler = pool
	}
	registry := screen.NewRegistry(def, opts)
	model, err := ui.NewModel(ui.Options{
		Registry:   registry,
		Viewer:     cfg.Viewer,
		Inventory:  inventory,
		Pool:       pool,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: true,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		registry.CloseAll()
		return nil, fmt.Errorf("start %s: %w", cfg.Screen, err)
	}
	return model, nil
}

// allowViewerRegion lets the viewer rearrange their own inventory while a
// screen is open.
func allowViewerRegion(c screen.Click) bool {
	return c.Region == screen.RegionViewer
}
