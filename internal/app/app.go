// Package app implements the application layer for quill.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/quill/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/quill/internal/engine/invalidation"
	"go.trai.ch/quill/internal/engine/site"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	builder        *site.Builder
	invalidator    *invalidation.Invalidator
	store          ports.ManifestStore
	watcher        ports.Watcher
	logger         ports.Logger
	now            func() time.Time
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder *site.Builder,
	invalidator *invalidation.Invalidator,
	store ports.ManifestStore,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   loader,
		builder:        builder,
		invalidator:    invalidator,
		store:          store,
		watcher:        w,
		logger:         log,
		now:            time.Now,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithClock overrides the clock used for cache decisions.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithDebounceWindow overrides the watch mode debounce window.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Force bool
}

// Build renders the site once.
func (a *App) Build(ctx context.Context, opts BuildOptions) (site.Report, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return site.Report{}, err
	}

	report, err := a.builder.Run(ctx, cfg, site.Options{Force: opts.Force, Now: a.now()})
	if err != nil {
		return site.Report{}, err
	}

	a.logger.Info(fmt.Sprintf("rebuilt %d pages, skipped %d", len(report.Rebuilt), len(report.Skipped)))
	return report, nil
}

// Watch builds the site, then rebuilds on every debounced batch of changes below
// the source directory until ctx is done. The manifest is loaded once and saved
// after each successful cycle. Failed cycles are logged and watching continues.
func (a *App) Watch(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var manifest *domain.CacheManifest
	if cfg.ISGEnabled() {
		manifest = a.store.Load(cfg.CacheDir)
	}
	if manifest == nil {
		manifest = domain.NewManifest()
	}

	if err := a.cycle(ctx, cfg, manifest); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, cfg.SrcDir); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("watching " + cfg.SrcDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-batches:
			a.logger.Info(fmt.Sprintf("%d files changed", len(paths)))
			if err := a.cycle(ctx, cfg, manifest); err != nil {
				a.logger.Error(err)
			}
		}
	}
}

func (a *App) cycle(ctx context.Context, cfg *domain.SiteConfig, manifest *domain.CacheManifest) error {
	report, err := a.builder.RunCycle(ctx, cfg, manifest, site.Options{Now: a.now()})
	if err != nil {
		return err
	}
	if cfg.ISGEnabled() {
		if err := a.store.Save(cfg.CacheDir, manifest); err != nil {
			return err
		}
	}
	a.logger.Info(fmt.Sprintf("rebuilt %d pages, skipped %d", len(report.Rebuilt), len(report.Skipped)))
	return nil
}

// Invalidate drops the cache entries matching query. A blank query drops all of them.
func (a *App) Invalidate(_ context.Context, query string) (invalidation.Result, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return invalidation.Result{}, err
	}

	result, err := a.invalidator.Invalidate(cfg.CacheDir, query, a.now())
	if err != nil {
		return invalidation.Result{}, err
	}

	switch {
	case result.ClearedAll:
		a.logger.Info(fmt.Sprintf("cleared all %d cache entries", result.InvalidatedCount))
	default:
		a.logger.Info(fmt.Sprintf("invalidated %d cache entries", result.InvalidatedCount))
	}
	return result, nil
}

// EntryStatus describes the cache state of one page.
type EntryStatus struct {
	Path       string    `json:"path"`
	Tags       []string  `json:"tags"`
	RenderedAt time.Time `json:"renderedAt"`
	// NextRebuildAt is nil for frozen entries.
	NextRebuildAt *time.Time `json:"nextRebuildAt,omitempty"`
	Frozen        bool       `json:"frozen"`
	Expired       bool       `json:"expired"`
}

// Status lists every manifest entry in manifest order.
func (a *App) Status(_ context.Context) ([]EntryStatus, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	statuses := []EntryStatus{}
	manifest := a.store.Load(cfg.CacheDir)
	if manifest == nil {
		return statuses, nil
	}

	now := a.now()
	for path, entry := range manifest.All() {
		status := EntryStatus{Path: path, Tags: entry.Tags, RenderedAt: entry.RenderedAt}
		next, ok := domain.NextRebuildAt(domain.NextRebuildInput{
			Now:           entry.RenderedAt,
			PublishedAt:   entry.PublishedAt,
			TTLSeconds:    entry.TTLSeconds,
			MaxAgeCapDays: entry.MaxAgeCapDays,
		})
		switch {
		case domain.IsFrozen(entry, now) || !ok:
			status.Frozen = true
		default:
			status.NextRebuildAt = &next
			status.Expired = !next.After(now)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Check loads and validates the configuration.
func (a *App) Check(_ context.Context) (*domain.SiteConfig, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	a.logger.Info("configuration is valid")
	return cfg, nil
}

// Clean removes the cache directory.
func (a *App) Clean(_ context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.logger.Info("removing " + cfg.CacheDir + "...")
	if err := os.RemoveAll(cfg.CacheDir); err != nil {
		return errors.Join(domain.ErrCleanFailed, zerr.With(err, "cache_dir", cfg.CacheDir))
	}
	a.logger.Info("removed " + cfg.CacheDir)
	return nil
}

func (a *App) loadConfig() (*domain.SiteConfig, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}
