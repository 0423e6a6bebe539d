package domain

import (
	"strings"
	"time"
)

// Page is a single piece of content as handed to the ISG engine.
type Page struct {
	// Slug is the last path segment of the page without extension.
	Slug string
	// URL is the public URL of the page, e.g. "/blog/post-1".
	URL string
	// SourcePath is the content file path relative to the source directory.
	SourcePath string
	// FrontMatter holds the decoded front matter block.
	FrontMatter map[string]any
	// Content is the raw markdown body without the front matter block.
	Content string
	// PublishedAt is set by loaders that already resolved a publish date.
	PublishedAt *time.Time
}

// PublishDate returns the page's publish date. An explicit PublishedAt wins,
// otherwise the front matter is probed with PublishDateFields.
func (p *Page) PublishDate() (time.Time, bool) {
	if p.PublishedAt != nil {
		return *p.PublishedAt, true
	}
	return PublishDateFromFrontMatter(p.FrontMatter)
}

// IsIndex reports whether the page is the index of its directory.
func (p *Page) IsIndex() bool {
	base := p.SourcePath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ContentExt) == IndexTemplateName
}

// OutputPath maps a page URL to its cache key and output file path:
// "/foo" becomes "/foo.html", "/blog/" becomes "/blog/index.html".
func OutputPath(url string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	switch {
	case strings.HasSuffix(url, "/"):
		return url + "index" + OutputExt
	case strings.HasSuffix(url, OutputExt):
		return url
	default:
		return url + OutputExt
	}
}
