package domain

import "go.trai.ch/zerr"

var (
	// ErrNoConfigFound is returned when no quill.yaml can be found walking up from the working directory.
	ErrNoConfigFound = zerr.New("could not find quill.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidISGConfig is the sentinel every ConfigError unwraps to.
	ErrInvalidISGConfig = zerr.New("invalid isg configuration")

	// ErrMissingSourceDir is returned when an operation requires a source directory and none is configured.
	ErrMissingSourceDir = zerr.New("source directory is not configured")

	// ErrManifestMarshalFailed is returned when the cache manifest cannot be encoded.
	ErrManifestMarshalFailed = zerr.New("failed to marshal cache manifest")

	// ErrManifestWriteFailed is returned when the cache manifest cannot be written to the cache directory.
	ErrManifestWriteFailed = zerr.New("failed to write cache manifest")

	// ErrManifestPermissionDenied is returned when the cache directory is not writable.
	ErrManifestPermissionDenied = zerr.New("permission denied writing cache manifest, check ownership of the cache directory")

	// ErrManifestDiskFull is returned when the device holding the cache directory has no space left.
	ErrManifestDiskFull = zerr.New("no space left on device writing cache manifest, free disk space and rebuild")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrDependencyTrackingFailed is returned when the template dependencies of a page cannot be determined.
	ErrDependencyTrackingFailed = zerr.New("failed to track template dependencies")

	// ErrDependencyHashFailed is returned when a dependency file exists but cannot be hashed.
	ErrDependencyHashFailed = zerr.New("failed to hash dependency")

	// ErrPageLoadFailed is returned when a content file cannot be read or its front matter parsed.
	ErrPageLoadFailed = zerr.New("failed to load page")

	// ErrRenderFailed is returned when rendering a page fails.
	ErrRenderFailed = zerr.New("failed to render page")

	// ErrBuildFailed is returned when a build cycle fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrCleanFailed is returned when the cache directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove cache directory")
)
