package content

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quill/internal/adapters/fs"
	"go.trai.ch/quill/internal/core/ports"
)

// NodeID is the unique identifier for the page loader Graft node.
const NodeID graft.ID = "adapter.content.loader"

func init() {
	graft.Register(graft.Node[ports.PageLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.PageLoader, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(walker), nil
		},
	})
}
