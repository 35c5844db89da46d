package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain selector Graft node.
const NodeID graft.ID = "adapter.toolchain_selector"

func init() {
	graft.Register(graft.Node[ports.ToolchainSelector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolchainSelector, error) {
			return NewSelector(), nil
		},
	})
}
