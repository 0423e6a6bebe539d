package ports

import "go.trai.ch/quill/internal/core/domain"

// ConfigLoader defines the interface for loading the site configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds quill.yaml at or above cwd, validates it and returns the resolved configuration.
	Load(cwd string) (*domain.SiteConfig, error)
}
