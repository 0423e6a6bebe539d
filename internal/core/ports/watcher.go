package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a change below the watched site directory.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path      string
	Operation WatchOp
}

// Watcher reports file system changes below a root directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root recursively until ctx is done or Stop is called.
	Start(ctx context.Context, root string) error
	Stop() error
	// Events yields events until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
