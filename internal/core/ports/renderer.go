package ports

import (
	"context"

	"go.trai.ch/quill/internal/core/domain"
)

// Renderer writes the HTML output of a page.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render converts page and writes it to outPath, creating parent directories.
	Render(ctx context.Context, page *domain.Page, outPath string) error
}
