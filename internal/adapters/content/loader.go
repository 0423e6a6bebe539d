// Package content loads markdown pages and their YAML front matter from the source directory.
package content

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/quill/internal/adapters/fs"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PageLoader = (*Loader)(nil)

// DraftField marks a page that must not be published.
const DraftField = "draft"

var (
	frontMatterDelim = []byte("---")
	utf8BOM          = []byte("\ufeff")
)

// Loader implements ports.PageLoader for *.md files.
type Loader struct {
	walker *fs.Walker
}

// NewLoader creates a new content Loader.
func NewLoader(walker *fs.Walker) *Loader {
	return &Loader{walker: walker}
}

// LoadPages reads every markdown file below cfg.SrcDir in lexical path order.
// Directories starting with "_" or "." are skipped, and so are drafts.
func (l *Loader) LoadPages(ctx context.Context, cfg *domain.SiteConfig) ([]*domain.Page, error) {
	if cfg == nil || cfg.SrcDir == "" {
		return nil, domain.ErrMissingSourceDir
	}

	var pages []*domain.Page
	for file, err := range l.walker.WalkFiles(cfg.SrcDir, fs.SkipHidden) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPageLoadFailed.Error()), "src_dir", cfg.SrcDir)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if filepath.Ext(file) != domain.ContentExt {
			continue
		}

		rel, err := filepath.Rel(cfg.SrcDir, file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPageLoadFailed.Error()), "path", file)
		}

		page, err := loadPage(file, filepath.ToSlash(rel))
		if err != nil {
			return nil, err
		}
		if isDraft(page) {
			continue
		}
		pages = append(pages, page)
	}

	return pages, nil
}

func loadPage(file, rel string) (*domain.Page, error) {
	data, err := os.ReadFile(file) //nolint:gosec // path comes from walking the source directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPageLoadFailed.Error()), "path", rel)
	}

	frontMatter, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPageLoadFailed.Error()), "path", rel)
	}

	page := &domain.Page{
		Slug:        slugFor(rel),
		URL:         URLFor(rel),
		SourcePath:  rel,
		FrontMatter: frontMatter,
		Content:     body,
	}
	if published, ok := domain.PublishDateFromFrontMatter(frontMatter); ok {
		page.PublishedAt = &published
	}
	return page, nil
}

// ParseFrontMatter splits a leading "---" delimited YAML block from the markdown body.
// Files without a block have empty front matter and are returned whole.
func ParseFrontMatter(data []byte) (map[string]any, string, error) {
	frontMatter := map[string]any{}

	data = bytes.TrimPrefix(data, utf8BOM)
	first, rest, ok := cutLine(data)
	if !ok || !bytes.Equal(bytes.TrimRight(first, " \t"), frontMatterDelim) {
		return frontMatter, string(data), nil
	}

	var block []byte
	for {
		line, next, found := cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t"), frontMatterDelim) {
			if err := yaml.Unmarshal(block, &frontMatter); err != nil {
				return nil, "", err
			}
			if frontMatter == nil {
				frontMatter = map[string]any{}
			}
			return frontMatter, string(next), nil
		}
		if !found {
			// Unterminated block: treat the whole file as body.
			return map[string]any{}, string(data), nil
		}
		block = append(block, line...)
		block = append(block, '\n')
		rest = next
	}
}

// cutLine returns the first line of data without its line ending.
// found is false when data has no line ending.
func cutLine(data []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(data, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

// URLFor maps a content path to its public URL:
// "blog/post.md" is "/blog/post", "blog/index.md" is "/blog/", "index.md" is "/".
func URLFor(rel string) string {
	trimmed := strings.TrimSuffix(rel, domain.ContentExt)
	if trimmed == domain.IndexTemplateName {
		return "/"
	}
	if dir, ok := strings.CutSuffix(trimmed, "/"+domain.IndexTemplateName); ok {
		return "/" + dir + "/"
	}
	return "/" + trimmed
}

func slugFor(rel string) string {
	trimmed := strings.TrimSuffix(rel, domain.ContentExt)
	base := path.Base(trimmed)
	if base != domain.IndexTemplateName {
		return base
	}
	if dir := strings.TrimSuffix(trimmed, "/"+domain.IndexTemplateName); dir != trimmed {
		return path.Base(dir)
	}
	return domain.IndexTemplateName
}

func isDraft(page *domain.Page) bool {
	draft, ok := page.FrontMatter[DraftField].(bool)
	return ok && draft
}
