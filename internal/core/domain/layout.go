package domain

import "path/filepath"

const (
	// QuillDirName is the name of the internal workspace directory.
	QuillDirName = ".quill"

	// CacheDirName is the name of the ISG cache directory.
	CacheDirName = "cache"

	// ManifestFileName is the name of the cache manifest inside the cache directory.
	ManifestFileName = "manifest.json"

	// ConfigFileName is the name of the site configuration file.
	ConfigFileName = "quill.yaml"

	// DefaultSrcDirName is the source directory used when the config does not name one.
	DefaultSrcDirName = "site"

	// DefaultOutDirName is the output directory used when the config does not name one.
	DefaultOutDirName = "dist"

	// TemplateExt is the extension of layout and partial templates.
	TemplateExt = ".tmpl"

	// LayoutFileName is the cascading layout template looked up in each ancestor directory.
	LayoutFileName = "layout" + TemplateExt

	// IndexTemplateName is the template probed first for index pages.
	IndexTemplateName = "index"

	// PartialsDirName is the conventional folder holding partial templates at any directory level.
	PartialsDirName = "_partials"

	// ContentExt is the extension of markdown content files.
	ContentExt = ".md"

	// OutputExt is the extension appended to page URLs to form cache entry paths.
	OutputExt = ".html"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the default cache directory relative to the site root.
// It joins .quill and cache.
func DefaultCachePath() string {
	return filepath.Join(QuillDirName, CacheDirName)
}

// ManifestPath returns the manifest location inside cacheDir.
func ManifestPath(cacheDir string) string {
	return filepath.Join(cacheDir, ManifestFileName)
}
