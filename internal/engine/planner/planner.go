// Package planner decides which pages need rendering and builds the cache entries that record them.
package planner

import (
	"slices"
	"time"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// PageTag is attached to every cache entry.
	PageTag = "page"

	tagsField       = "tags"
	categoriesField = "categories"
)

// Planner combines hashing, dependency tracking and the TTL policy.
type Planner struct {
	hasher  ports.Hasher
	tracker ports.DependencyTracker
}

// New creates a Planner.
func New(hasher ports.Hasher, tracker ports.DependencyTracker) *Planner {
	return &Planner{hasher: hasher, tracker: tracker}
}

// Fingerprint computes the current content hash, dependencies and inputs hash of page.
// A missing dependency file is recorded, not reported; any other hashing or
// tracking failure is returned.
func (p *Planner) Fingerprint(page *domain.Page, cfg *domain.SiteConfig) (domain.Fingerprint, error) {
	contentHash := p.hasher.ComputeContentHash(page.Content, page.FrontMatter)

	deps, err := p.tracker.TrackTemplateDependencies(page, cfg)
	if err != nil {
		return domain.Fingerprint{}, zerr.With(err, "page", page.SourcePath)
	}
	if deps == nil {
		deps = []string{}
	}

	depHashes := make([]string, len(deps))
	for i, dep := range deps {
		hash, found, err := p.hasher.ComputeFileHash(dep)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrDependencyHashFailed.Error())
			return domain.Fingerprint{}, zerr.With(zerr.With(err, "dependency", dep), "page", page.SourcePath)
		}
		if found {
			depHashes[i] = hash
		}
	}

	return domain.Fingerprint{
		ContentHash: contentHash,
		Deps:        deps,
		DepHashes:   depHashes,
		InputsHash:  p.hasher.ComputeInputsHash(contentHash, depHashes),
	}, nil
}

// ShouldRebuild reports whether page must be rendered again given its existing entry.
//
// The fingerprint is always computed, even for frozen entries, so tracking and
// hashing failures surface on every check.
func (p *Planner) ShouldRebuild(
	page *domain.Page,
	existing *domain.CacheEntry,
	cfg *domain.SiteConfig,
	now time.Time,
) (bool, error) {
	if existing == nil {
		return true, nil
	}

	fp, err := p.Fingerprint(page, cfg)
	if err != nil {
		return false, err
	}

	if domain.IsFrozen(existing, now) {
		return false, nil
	}

	if fp.InputsHash != existing.InputsHash {
		return true, nil
	}

	next, ok := domain.NextRebuildAt(domain.NextRebuildInput{
		Now:           existing.RenderedAt,
		PublishedAt:   existing.PublishedAt,
		TTLSeconds:    existing.TTLSeconds,
		MaxAgeCapDays: existing.MaxAgeCapDays,
	})
	if !ok {
		return false, nil
	}
	return !next.After(now), nil
}

// CreateEntry builds the cache entry for a freshly rendered page.
func (p *Planner) CreateEntry(page *domain.Page, cfg *domain.SiteConfig, now time.Time) (*domain.CacheEntry, error) {
	fp, err := p.Fingerprint(page, cfg)
	if err != nil {
		return nil, err
	}

	var isg *domain.ISGConfig
	if cfg != nil {
		isg = cfg.ISG
	}

	entry := &domain.CacheEntry{
		Path:       domain.OutputPath(page.URL),
		InputsHash: fp.InputsHash,
		Deps:       fp.Deps,
		Tags:       Tags(page.FrontMatter),
		RenderedAt: now,
		TTLSeconds: domain.EffectiveTTL(page, isg, now),
	}
	if publishedAt, ok := page.PublishDate(); ok {
		entry.PublishedAt = &publishedAt
	}
	if isg != nil && isg.MaxAgeCapDays != nil {
		capDays := *isg.MaxAgeCapDays
		entry.MaxAgeCapDays = &capDays
	}
	return entry, nil
}

// UpdateEntry rebuilds the entry of a re-rendered page. A publish date, once
// recorded, survives a page that no longer declares one.
func (p *Planner) UpdateEntry(
	existing *domain.CacheEntry,
	page *domain.Page,
	cfg *domain.SiteConfig,
	now time.Time,
) (*domain.CacheEntry, error) {
	entry, err := p.CreateEntry(page, cfg, now)
	if err != nil {
		return nil, err
	}
	if entry.PublishedAt == nil && existing != nil && existing.PublishedAt != nil {
		publishedAt := *existing.PublishedAt
		entry.PublishedAt = &publishedAt
	}
	return entry, nil
}

// Tags derives the invalidation tags of a page: PageTag followed by the front
// matter tags and categories, each accepted as a string or a list, first occurrence wins.
func Tags(frontMatter map[string]any) []string {
	tags := []string{PageTag}
	add := func(tag string) {
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	for _, field := range []string{tagsField, categoriesField} {
		switch v := frontMatter[field].(type) {
		case string:
			add(v)
		case []string:
			for _, tag := range v {
				add(tag)
			}
		case []any:
			for _, item := range v {
				if tag, ok := item.(string); ok {
					add(tag)
				}
			}
		}
	}
	return tags
}
