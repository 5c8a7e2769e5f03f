package kbcards

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State is the page lifecycle state of an App.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateLoaded
	StateFiltering
	// StateFailed is terminal: the first load failed on every source.
	StateFailed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFiltering:
		return "filtering"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// App ties the catalog, its loader and a renderer together. It is
// constructed once at startup and passed to whatever drives the search
// field.
type App struct {
	loader   CatalogLoader
	renderer Renderer
	logger   *slog.Logger

	catalog Catalog
	loads   singleflight.Group

	mu      sync.Mutex // serializes state changes and renderer calls
	state   State
	query   string
	visible []*Entry
}

// NewApp creates an App. A nil logger discards diagnostics.
func NewApp(loader CatalogLoader, renderer Renderer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		loader:   loader,
		renderer: renderer,
		logger:   logger,
		visible:  []*Entry{},
	}
}

// Load runs the loader and, on success, replaces the catalog and renders
// it filtered by the current query. The first call initializes the
// catalog; later calls replace it.
//
// Concurrent calls share one in-flight load, which is not tied to any
// single caller's context: a caller whose ctx ends stops waiting and gets
// ctx.Err(), while the load completes for the others. When every source
// fails on the first load the terminal error is logged once and returned.
// A failed reload keeps the previous snapshot. Callers need not log the
// returned error again.
func (a *App) Load(ctx context.Context) error {
	ch := a.loads.DoChan("load", func() (any, error) {
		return nil, a.load(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) load(ctx context.Context) error {
	a.mu.Lock()
	prev := a.state
	if prev == StateUninitialized || prev == StateFailed {
		a.state = StateLoading
	}
	a.mu.Unlock()

	begin := time.Now()
	snap, err := a.loader.LoadCatalog(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		if a.catalog.Loaded() {
			a.logger.Warn("catalog reload failed",
				"err", ErrorMessage(err),
				"duration", time.Since(begin),
			)
			a.state = StateLoaded
			return err
		}
		a.logger.Error("catalog load failed",
			"err", ErrorMessage(err),
			"duration", time.Since(begin),
		)
		a.state = StateFailed
		a.visible = []*Entry{}
		if rerr := a.renderer.Render(a.visible); rerr != nil {
			a.logger.Warn("render failed", "err", rerr)
		}
		return err
	}

	if old := a.catalog.Snapshot(); old != nil && old.Fingerprint == snap.Fingerprint {
		a.logger.Info("catalog unchanged", "source", snap.Source, "fingerprint", snap.Fingerprint)
	}
	a.catalog.Replace(snap)
	a.state = StateLoaded
	a.logger.Info("catalog loaded",
		"source", snap.Source,
		"entries", len(snap.Entries),
		"duration", time.Since(begin),
	)

	return a.render()
}

// Search filters the catalog by query and renders the result. It runs to
// completion synchronously; the query is remembered and re-applied after
// a reload.
func (a *App) Search(query string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.query = query
	if a.state != StateLoaded {
		// Nothing to filter yet, or nothing ever will be.
		a.visible = Filter(query, a.catalog.Current())
		return a.renderer.Render(a.visible)
	}

	a.state = StateFiltering
	defer func() { a.state = StateLoaded }()
	return a.render()
}

// render must be called with a.mu held.
func (a *App) render() error {
	a.visible = Filter(a.query, a.catalog.Current())
	return a.renderer.Render(a.visible)
}

// State returns the current lifecycle state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Query returns the most recent search query.
func (a *App) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Visible returns the entries most recently rendered.
func (a *App) Visible() []*Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Catalog returns the App's catalog.
func (a *App) Catalog() *Catalog {
	return &a.catalog
}
