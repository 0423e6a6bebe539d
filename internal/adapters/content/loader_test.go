package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/internal/adapters/content"
	"go.trai.ch/quill/internal/adapters/fs"
	"go.trai.ch/quill/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(data), domain.PrivateFilePerm))
}

func TestLoader_LoadPages(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "index.md", "# Home\n")
	writeFile(t, src, "blog/index.md", "---\ntitle: Blog\n---\nAll posts\n")
	writeFile(t, src, "blog/post-1.md", "---\ntitle: First\ndate: 2024-03-01\ntags: [blog, go]\n---\nHello\n")
	writeFile(t, src, "blog/wip.md", "---\ndraft: true\n---\nsoon\n")
	writeFile(t, src, "_partials/nav.md", "not a page")
	writeFile(t, src, ".cache/x.md", "not a page")
	writeFile(t, src, "layout.tmpl", "{{ . }}")

	loader := content.NewLoader(fs.NewWalker())
	pages, err := loader.LoadPages(context.Background(), &domain.SiteConfig{SrcDir: src})
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, "blog/index.md", pages[0].SourcePath)
	assert.Equal(t, "/blog/", pages[0].URL)
	assert.Equal(t, "blog", pages[0].Slug)
	assert.Equal(t, "All posts\n", pages[0].Content)

	post := pages[1]
	assert.Equal(t, "blog/post-1.md", post.SourcePath)
	assert.Equal(t, "/blog/post-1", post.URL)
	assert.Equal(t, "post-1", post.Slug)
	assert.Equal(t, "First", post.FrontMatter["title"])
	assert.Equal(t, []any{"blog", "go"}, post.FrontMatter["tags"])
	assert.Equal(t, "Hello\n", post.Content)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), post.PublishedAt.UTC())

	assert.Equal(t, "index.md", pages[2].SourcePath)
	assert.Equal(t, "/", pages[2].URL)
	assert.Equal(t, "index", pages[2].Slug)
	assert.Empty(t, pages[2].FrontMatter)
	assert.Nil(t, pages[2].PublishedAt)
}

func TestLoader_LoadPages_Errors(t *testing.T) {
	loader := content.NewLoader(fs.NewWalker())

	_, err := loader.LoadPages(context.Background(), &domain.SiteConfig{})
	assert.ErrorIs(t, err, domain.ErrMissingSourceDir)

	_, err = loader.LoadPages(context.Background(), &domain.SiteConfig{SrcDir: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPageLoadFailed.Error())

	src := t.TempDir()
	writeFile(t, src, "bad.md", "---\ntitle: [oops\n---\nbody\n")
	_, err = loader.LoadPages(context.Background(), &domain.SiteConfig{SrcDir: src})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPageLoadFailed.Error())
}

func TestLoader_LoadPages_Cancelled(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.md", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := content.NewLoader(fs.NewWalker()).LoadPages(ctx, &domain.SiteConfig{SrcDir: src})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantFM  map[string]any
		wantBod string
	}{
		{name: "no block", in: "# Title\n", wantFM: map[string]any{}, wantBod: "# Title\n"},
		{name: "block", in: "---\na: 1\n---\nbody", wantFM: map[string]any{"a": 1}, wantBod: "body"},
		{name: "crlf", in: "---\r\na: 1\r\n---\r\nbody", wantFM: map[string]any{"a": 1}, wantBod: "body"},
		{name: "empty block", in: "---\n---\nbody", wantFM: map[string]any{}, wantBod: "body"},
		{name: "bom", in: "\ufeff---\na: x\n---\n", wantFM: map[string]any{"a": "x"}, wantBod: ""},
		{name: "unterminated", in: "---\na: 1\nbody", wantFM: map[string]any{}, wantBod: "---\na: 1\nbody"},
		{name: "delimiter must lead", in: "text\n---\na: 1\n---\n", wantFM: map[string]any{}, wantBod: "text\n---\na: 1\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := content.ParseFrontMatter([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFM, fm)
			assert.Equal(t, tt.wantBod, body)
		})
	}
}

func TestURLFor(t *testing.T) {
	assert.Equal(t, "/", content.URLFor("index.md"))
	assert.Equal(t, "/blog/", content.URLFor("blog/index.md"))
	assert.Equal(t, "/blog/post", content.URLFor("blog/post.md"))
	assert.Equal(t, "/about", content.URLFor("about.md"))
	assert.Equal(t, "/docs/reindex", content.URLFor("docs/reindex.md"))
}
