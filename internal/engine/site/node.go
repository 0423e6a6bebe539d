package site

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quill/internal/adapters/cas"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/adapters/content"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/adapters/renderer" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/core/ports"
	"go.trai.ch/quill/internal/engine/planner"
)

// NodeID is the unique identifier for the site builder Graft node.
const NodeID graft.ID = "engine.site"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			content.NodeID,
			renderer.NodeID,
			planner.NodeID,
			cas.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			loader, err := graft.Dep[ports.PageLoader](ctx)
			if err != nil {
				return nil, err
			}
			render, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			plan, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, render, plan, store), nil
		},
	})
}
