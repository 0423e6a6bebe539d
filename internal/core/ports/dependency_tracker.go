package ports

import "go.trai.ch/quill/internal/core/domain"

// DependencyTracker discovers the template files a page is rendered with.
//
//go:generate go run go.uber.org/mock/mockgen -source=dependency_tracker.go -destination=mocks/mock_dependency_tracker.go -package=mocks
type DependencyTracker interface {
	// TrackTemplateDependencies returns the layout (if any) followed by every partial
	// visible from the page's directory. It returns nil when no source directory is configured.
	TrackTemplateDependencies(page *domain.Page, cfg *domain.SiteConfig) ([]string, error)

	// FindPartialDependencies returns the partials visible from relSourcePath.
	// Scan failures are logged and yield an empty result.
	FindPartialDependencies(relSourcePath string, cfg *domain.SiteConfig) []string

	// ResolveTemplatePath resolves a template name below the source directory.
	ResolveTemplatePath(name string, cfg *domain.SiteConfig) (path string, found bool, err error)
}
