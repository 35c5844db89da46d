package pioini

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the default target resolver Graft node.
const NodeID graft.ID = "adapter.default_target_resolver"

func init() {
	graft.Register(graft.Node[ports.DefaultTargetResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DefaultTargetResolver, error) {
			return NewResolver(), nil
		},
	})
}
