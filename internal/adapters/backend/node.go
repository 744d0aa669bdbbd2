package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/core/ports"
)

// NodeID is the unique identifier for the backend selector node.
const NodeID graft.ID = "adapter.backend"

func init() {
	graft.Register(graft.Node[ports.BackendSelector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BackendSelector, error) {
			return NewSelector(), nil
		},
	})
}
