package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyTracker = (*Tracker)(nil)

// LayoutField is the front matter key naming an explicit layout template.
const LayoutField = "layout"

// Tracker resolves the layout and partial templates a page depends on.
type Tracker struct {
	walker *Walker
	logger ports.Logger
}

// NewTracker creates a new Tracker.
func NewTracker(walker *Walker, logger ports.Logger) *Tracker {
	return &Tracker{walker: walker, logger: logger}
}

// TrackTemplateDependencies returns the layout path, if one resolves, followed by every partial
// found from the page's directory up to the source root.
func (t *Tracker) TrackTemplateDependencies(page *domain.Page, cfg *domain.SiteConfig) ([]string, error) {
	if cfg == nil || cfg.SrcDir == "" {
		return nil, nil
	}

	var deps []string

	layout, found, err := t.resolveLayout(page, cfg)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDependencyTrackingFailed.Error()), "page", page.SourcePath)
	}
	if found {
		deps = append(deps, layout)
	}

	return append(deps, t.FindPartialDependencies(page.SourcePath, cfg)...), nil
}

// resolveLayout tries the explicit layout, then index.tmpl for index pages,
// then layout.tmpl in each directory from the page's up to the source root.
func (t *Tracker) resolveLayout(page *domain.Page, cfg *domain.SiteConfig) (string, bool, error) {
	if name, ok := page.FrontMatter[LayoutField].(string); ok && strings.TrimSpace(name) != "" {
		path, found, err := t.ResolveTemplatePath(strings.TrimSpace(name), cfg)
		if err != nil || found {
			return path, found, err
		}
	}

	dirs := ancestorDirs(page.SourcePath)

	if page.IsIndex() {
		path, found, err := t.ResolveTemplatePath(filepath.Join(dirs[0], domain.IndexTemplateName), cfg)
		if err != nil || found {
			return path, found, err
		}
	}

	for _, dir := range dirs {
		path, found, err := t.ResolveTemplatePath(filepath.Join(dir, domain.LayoutFileName), cfg)
		if err != nil || found {
			return path, found, err
		}
	}

	return "", false, nil
}

// FindPartialDependencies returns every template under a _partials folder at each level from
// the directory of relSourcePath up to the source root, deepest level first.
// A failing scan is logged and yields no partials at all.
func (t *Tracker) FindPartialDependencies(relSourcePath string, cfg *domain.SiteConfig) []string {
	if cfg == nil || cfg.SrcDir == "" {
		return []string{}
	}

	partials := []string{}
	for _, dir := range ancestorDirs(relSourcePath) {
		found, err := t.scanPartials(filepath.Join(cfg.SrcDir, dir, domain.PartialsDirName))
		if err != nil {
			t.logger.Warn("partial discovery failed for " + relSourcePath + ": " + err.Error())
			return []string{}
		}
		partials = append(partials, found...)
	}
	return partials
}

// scanPartials treats a missing partials folder as empty.
func (t *Tracker) scanPartials(dir string) ([]string, error) {
	var found []string
	for path, err := range t.walker.WalkFiles(dir, nil) {
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) && len(found) == 0 {
				return nil, nil
			}
			return nil, err
		}
		if filepath.Ext(path) == domain.TemplateExt {
			found = append(found, path)
		}
	}
	return found, nil
}

// ResolveTemplatePath joins name below the source directory, appending the template extension
// when name has none, and checks that a file exists there.
func (t *Tracker) ResolveTemplatePath(name string, cfg *domain.SiteConfig) (string, bool, error) {
	if cfg == nil || cfg.SrcDir == "" {
		return "", false, nil
	}

	if filepath.Ext(name) != domain.TemplateExt {
		name += domain.TemplateExt
	}
	path := filepath.Join(cfg.SrcDir, name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	if info.IsDir() {
		return "", false, nil
	}
	return path, true, nil
}

// ancestorDirs returns the directory of relPath and each of its parents up to ".".
// Paths escaping the source root collapse to ".".
func ancestorDirs(relPath string) []string {
	dir := filepath.Dir(filepath.Clean(relPath))
	if filepath.IsAbs(dir) || dir == ".." || strings.HasPrefix(dir, ".."+string(filepath.Separator)) {
		return []string{"."}
	}

	dirs := []string{dir}
	for dir != "." {
		dir = filepath.Dir(dir)
		dirs = append(dirs, dir)
	}
	return dirs
}
