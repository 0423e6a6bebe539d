package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quill/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, fs.TrackerNodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			tracker, err := graft.Dep[ports.DependencyTracker](ctx)
			if err != nil {
				return nil, err
			}
			return New(hasher, tracker), nil
		},
	})
}
