// Package cas implements persistence of the ISG cache manifest.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

const manifestTempPattern = ".manifest-*.json"

// Store implements ports.ManifestStore with a single JSON file per cache directory.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new manifest store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads <cacheDir>/manifest.json.
// A missing file yields nil quietly; unreadable or corrupt manifests yield nil with a warning.
func (s *Store) Load(cacheDir string) *domain.CacheManifest {
	path := domain.ManifestPath(cacheDir)

	//nolint:gosec // Path is built from the configured cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("ignoring unreadable cache manifest " + path + ": " + err.Error())
		}
		return nil
	}

	manifest := domain.NewManifest()
	if err := json.Unmarshal(data, manifest); err != nil {
		s.logger.Warn("ignoring corrupt cache manifest " + path + ": " + err.Error())
		return nil
	}

	return manifest
}

// Save writes manifest to <cacheDir>/manifest.json as indented JSON.
// The file is replaced atomically so an interrupted save never leaves a truncated manifest.
func (s *Store) Save(cacheDir string, manifest *domain.CacheManifest) error {
	if manifest == nil {
		manifest = domain.NewManifest()
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestMarshalFailed.Error()), "cache_dir", cacheDir)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(cacheDir, domain.DirPerm); err != nil {
		return classifyWriteError(err, cacheDir)
	}

	if err := writeAtomic(domain.ManifestPath(cacheDir), data); err != nil {
		return classifyWriteError(err, cacheDir)
	}

	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), manifestTempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// classifyWriteError maps permission and disk-full failures to their sentinels.
// Every result wraps the cause and carries the cache directory.
func classifyWriteError(err error, cacheDir string) error {
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "cache_dir", cacheDir)

	switch {
	case errors.Is(err, fs.ErrPermission):
		return errors.Join(domain.ErrManifestPermissionDenied, wrapped)
	case errors.Is(err, syscall.ENOSPC):
		return errors.Join(domain.ErrManifestDiskFull, wrapped)
	default:
		return errors.Join(domain.ErrManifestWriteFailed, wrapped)
	}
}
