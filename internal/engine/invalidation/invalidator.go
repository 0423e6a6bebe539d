// Package invalidation removes cache entries selected by a query.
package invalidation

import (
	"strings"
	"time"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

// Result summarizes an invalidation run.
type Result struct {
	InvalidatedCount int      `json:"invalidatedCount"`
	InvalidatedPaths []string `json:"invalidatedPaths"`
	ClearedAll       bool     `json:"clearedAll"`
}

// Invalidator applies queries to the persisted manifest.
type Invalidator struct {
	store   ports.ManifestStore
	matcher *Matcher
}

// New creates an Invalidator.
func New(store ports.ManifestStore, logger ports.Logger) *Invalidator {
	return &Invalidator{store: store, matcher: NewMatcher(logger)}
}

// Invalidate removes every entry matching any term of query from the manifest in
// cacheDir. A blank query clears the manifest. Nothing is written when no manifest exists.
func (inv *Invalidator) Invalidate(cacheDir, query string, now time.Time) (Result, error) {
	result := Result{InvalidatedPaths: []string{}}

	manifest := inv.store.Load(cacheDir)
	if manifest == nil {
		return result, nil
	}

	if strings.TrimSpace(query) == "" {
		result.InvalidatedPaths = manifest.Paths()
		result.InvalidatedCount = len(result.InvalidatedPaths)
		result.ClearedAll = true
		manifest.Clear()
		return result, inv.save(cacheDir, manifest)
	}

	terms := inv.matcher.Compile(ParseQuery(query))
	for path, entry := range manifest.All() {
		if matchesAny(entry, path, terms, now) {
			result.InvalidatedPaths = append(result.InvalidatedPaths, path)
		}
	}
	for _, path := range result.InvalidatedPaths {
		manifest.Delete(path)
	}
	result.InvalidatedCount = len(result.InvalidatedPaths)

	return result, inv.save(cacheDir, manifest)
}

func matchesAny(entry *domain.CacheEntry, path string, terms []Term, now time.Time) bool {
	for _, term := range terms {
		if term.Matches(entry, path, now) {
			return true
		}
	}
	return false
}

func (inv *Invalidator) save(cacheDir string, manifest *domain.CacheManifest) error {
	if err := inv.store.Save(cacheDir, manifest); err != nil {
		return zerr.With(err, "operation", "invalidate")
	}
	return nil
}
