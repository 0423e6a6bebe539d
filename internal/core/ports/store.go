package ports

import "go.trai.ch/quill/internal/core/domain"

// ManifestStore persists the cache manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest from cacheDir.
	// Returns nil when there is no usable manifest; callers rebuild everything.
	Load(cacheDir string) *domain.CacheManifest

	// Save writes the manifest to cacheDir, creating the directory if needed.
	Save(cacheDir string, manifest *domain.CacheManifest) error
}
