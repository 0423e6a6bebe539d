package ports

import (
	"context"

	"go.trai.ch/quill/internal/core/domain"
)

// PageLoader reads the content pages of a site.
//
//go:generate go run go.uber.org/mock/mockgen -source=page_loader.go -destination=mocks/mock_page_loader.go -package=mocks
type PageLoader interface {
	// LoadPages returns every publishable page below cfg.SrcDir in a stable order.
	LoadPages(ctx context.Context, cfg *domain.SiteConfig) ([]*domain.Page, error)
}
