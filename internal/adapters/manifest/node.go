package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/core/ports"
)

// NodeID is the unique identifier for the manifest reader node.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestReader, error) {
			return NewReader(), nil
		},
	})
}
