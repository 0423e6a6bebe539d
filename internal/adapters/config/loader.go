// Package config provides the configuration loader for quill.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds quill.yaml in cwd or the nearest ancestor, resolves directories against the
// file's location and validates the isg block.
func (l *Loader) Load(cwd string) (*domain.SiteConfig, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var quillfile Quillfile
	if err := readAndUnmarshalYAML(configPath, &quillfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)
	cfg := &domain.SiteConfig{
		Root:     root,
		SrcDir:   resolveDir(root, quillfile.SrcDir, domain.DefaultSrcDirName),
		OutDir:   resolveDir(root, quillfile.OutDir, domain.DefaultOutDirName),
		CacheDir: resolveDir(root, quillfile.CacheDir, domain.DefaultCachePath()),
	}

	isg, err := l.decodeISG(&quillfile.ISG)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidISGConfig.Error()), "config", configPath)
	}
	cfg.ISG = isg

	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrNoConfigFound, "cwd", cwd)
}

func readAndUnmarshalYAML(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrNoConfigFound, "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

// resolveDir makes dir absolute relative to root, falling back to def when empty.
func resolveDir(root, dir, def string) string {
	if dir == "" {
		dir = def
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}
