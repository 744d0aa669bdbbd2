package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/core/ports"
)

// NodeID is the unique identifier for the lockfile detector node.
const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockfileDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileDetector, error) {
			return NewDetector(), nil
		},
	})
}
