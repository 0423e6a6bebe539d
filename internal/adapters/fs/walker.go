// Package fs provides file system adapters for walking, hashing and tracking template files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// SkipFunc reports whether a directory below the walk root should be skipped.
type SkipFunc func(d fs.DirEntry) bool

// SkipHidden skips directories starting with "." or "_".
func SkipHidden(d fs.DirEntry) bool {
	name := d.Name()
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// WalkFiles yields every regular file below root in lexical order, with paths including root.
// The walk stops at the first error, which is yielded with an empty path.
// A nil skip descends into every directory. The root itself is never skipped.
func (w *Walker) WalkFiles(root string, skip SkipFunc) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d, skip) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// shouldSkipDir always skips VCS metadata and otherwise defers to skip.
func (w *Walker) shouldSkipDir(d fs.DirEntry, skip SkipFunc) bool {
	switch d.Name() {
	case ".git", ".jj":
		return true
	}
	return skip != nil && skip(d)
}
