package tree

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/core/ports"
)

// NodeID is the unique identifier for the tree parser node.
const NodeID graft.ID = "adapter.tree_parser"

func init() {
	graft.Register(graft.Node[ports.TreeParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeParser, error) {
			return NewParser(), nil
		},
	})
}
