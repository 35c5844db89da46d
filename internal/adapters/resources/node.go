package resources

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the resource locator Graft node.
const NodeID graft.ID = "adapter.resource_locator"

func init() {
	graft.Register(graft.Node[ports.ResourceLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ResourceLocator, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocator(walker, hasher), nil
		},
	})
}
