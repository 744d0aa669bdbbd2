package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deptree/internal/adapters/backend"            //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/deptree/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			orchestrator.NodeID,
			lockfile.NodeID,
			backend.NodeID,
			report.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
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

			reporter, err := graft.Dep[ports.ReportWriter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, orch, detector, selector, reporter, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, telemetry), nil
		},
	})
}
