package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quill/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/quill/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/quill/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/quill/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/quill/internal/engine/invalidation"
	"go.trai.ch/quill/internal/engine/site"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			site.NodeID,
			invalidation.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*site.Builder](ctx)
	if err != nil {
		return nil, err
	}

	invalidator, err := graft.Dep[*invalidation.Invalidator](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, builder, invalidator, store, w, log), nil
}
