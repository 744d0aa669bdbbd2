package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/adapters/backend"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/lockfile"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/manifest"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/adapters/tree"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/deptree/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			lockfile.NodeID,
			backend.NodeID,
			shell.NodeID,
			tree.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			reader, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			detector, err := graft.Dep[ports.LockfileDetector](ctx)
			if err != nil {
				return nil, err
			}

			selector, err := graft.Dep[ports.BackendSelector](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}

			parser, err := graft.Dep[ports.TreeParser](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reader, detector, selector, runner, parser, telemetry, log), nil
		},
	})
}
