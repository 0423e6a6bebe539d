// Package site runs build cycles: load pages, decide, render, record.
package site

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/quill/internal/engine/planner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options tune a build cycle.
type Options struct {
	// Force renders every page regardless of the cache.
	Force bool
	// Now is the decision instant. Zero means time.Now.
	Now time.Time
}

// Report lists the entry paths handled by a cycle, in page order.
type Report struct {
	Rebuilt []string `json:"rebuilt"`
	Skipped []string `json:"skipped"`
}

// Builder renders the pages of a site, skipping those the cache says are fresh.
type Builder struct {
	loader   ports.PageLoader
	renderer ports.Renderer
	planner  *planner.Planner
	store    ports.ManifestStore
}

// New creates a Builder.
func New(
	loader ports.PageLoader,
	renderer ports.Renderer,
	plan *planner.Planner,
	store ports.ManifestStore,
) *Builder {
	return &Builder{
		loader:   loader,
		renderer: renderer,
		planner:  plan,
		store:    store,
	}
}

// Run performs one complete build: the manifest is loaded, a cycle runs against
// it and the result is saved once. Nothing is saved when the cycle fails or
// when ISG is disabled.
func (b *Builder) Run(ctx context.Context, cfg *domain.SiteConfig, opts Options) (Report, error) {
	var manifest *domain.CacheManifest
	if cfg.ISGEnabled() {
		manifest = b.store.Load(cfg.CacheDir)
	}
	if manifest == nil {
		manifest = domain.NewManifest()
	}

	report, err := b.RunCycle(ctx, cfg, manifest, opts)
	if err != nil {
		return Report{}, err
	}

	if cfg.ISGEnabled() {
		if err := b.store.Save(cfg.CacheDir, manifest); err != nil {
			return Report{}, err
		}
	}
	return report, nil
}

type outcome struct {
	path     string
	rendered bool
	entry    *domain.CacheEntry
}

// RunCycle builds every page against a caller-owned manifest.
//
// Pages are decided and rendered concurrently while the manifest is only read.
// New entries are merged afterwards in page order, so a failed cycle leaves the
// manifest untouched. With ISG disabled every page is rendered and nothing is recorded.
func (b *Builder) RunCycle(
	ctx context.Context,
	cfg *domain.SiteConfig,
	manifest *domain.CacheManifest,
	opts Options,
) (Report, error) {
	pages, err := b.loader.LoadPages(ctx, cfg)
	if err != nil {
		return Report{}, zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	isg := cfg.ISGEnabled()

	results := make([]outcome, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, page := range pages {
		g.Go(func() error {
			path := domain.OutputPath(page.URL)
			results[i].path = path

			var existing *domain.CacheEntry
			if isg {
				existing, _ = manifest.Get(path)
			}

			if isg && !opts.Force {
				rebuild, err := b.planner.ShouldRebuild(page, existing, cfg, now)
				if err != nil {
					return zerr.With(err, "page", page.SourcePath)
				}
				if !rebuild {
					return nil
				}
			}

			if err := b.renderer.Render(gctx, page, outputFile(cfg, path)); err != nil {
				return err
			}
			results[i].rendered = true

			if !isg {
				return nil
			}

			entry, err := b.record(existing, page, cfg, now)
			if err != nil {
				return zerr.With(err, "page", page.SourcePath)
			}
			results[i].entry = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}

	report := Report{Rebuilt: []string{}, Skipped: []string{}}
	for _, r := range results {
		if !r.rendered {
			report.Skipped = append(report.Skipped, r.path)
			continue
		}
		report.Rebuilt = append(report.Rebuilt, r.path)
		if r.entry != nil {
			manifest.Set(r.path, r.entry)
		}
	}
	return report, nil
}

func (b *Builder) record(
	existing *domain.CacheEntry,
	page *domain.Page,
	cfg *domain.SiteConfig,
	now time.Time,
) (*domain.CacheEntry, error) {
	if existing == nil {
		return b.planner.CreateEntry(page, cfg, now)
	}
	return b.planner.UpdateEntry(existing, page, cfg, now)
}

func outputFile(cfg *domain.SiteConfig, entryPath string) string {
	return filepath.Join(cfg.OutDir, filepath.FromSlash(entryPath))
}
