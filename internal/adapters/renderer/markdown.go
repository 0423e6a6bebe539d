// Package renderer converts markdown pages to HTML files.
package renderer

import (
	"bytes"
	"context"
	"html"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Markdown)(nil)

// TitleField is the front matter key used for the document title.
const TitleField = "title"

// Markdown renders pages with goldmark into a bare HTML document.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer with GitHub flavored markdown enabled.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Render writes the HTML of page to outPath.
func (m *Markdown) Render(ctx context.Context, page *domain.Page, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := m.md.Convert([]byte(page.Content), &body); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "page", page.SourcePath)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	doc.WriteString(html.EscapeString(title(page)))
	doc.WriteString("</title>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	if err := os.MkdirAll(filepath.Dir(outPath), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", outPath)
	}
	//nolint:gosec // Output path is derived from the configured output directory
	if err := os.WriteFile(outPath, doc.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", outPath)
	}
	return nil
}

func title(page *domain.Page) string {
	if t, ok := page.FrontMatter[TitleField].(string); ok && t != "" {
		return t
	}
	return page.Slug
}
