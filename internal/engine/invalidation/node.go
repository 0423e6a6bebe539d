package invalidation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quill/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quill/internal/core/ports"
)

// NodeID is the unique identifier for the invalidator Graft node.
const NodeID graft.ID = "engine.invalidation"

func init() {
	graft.Register(graft.Node[*Invalidator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Invalidator, error) {
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, log), nil
		},
	})
}
