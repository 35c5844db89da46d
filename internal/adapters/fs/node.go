package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	WalkerNodeID    graft.ID = "adapter.fs.walker"
	ResolverNodeID  graft.ID = "adapter.fs.resolver"
	HasherNodeID    graft.ID = "adapter.fs.hasher"
	RelocatorNodeID graft.ID = "adapter.fs.relocator"
	InspectorNodeID graft.ID = "adapter.fs.inspector"
)

func init() {
	// Walker Node (Concrete implementation needed by the resource locator)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.ArtifactResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactResolver, error) {
			return NewResolver(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Relocator Node
	graft.Register(graft.Node[ports.Relocator]{
		ID:        RelocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.Relocator, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewRelocator(hasher), nil
		},
	})

	// Inspector Node
	graft.Register(graft.Node[ports.ArtifactInspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactInspector, error) {
			return NewInspector(), nil
		},
	})
}
