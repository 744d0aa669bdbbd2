// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/deptree/internal/adapters/backend"
	_ "go.trai.ch/deptree/internal/adapters/config"
	_ "go.trai.ch/deptree/internal/adapters/lockfile"
	_ "go.trai.ch/deptree/internal/adapters/logger"
	_ "go.trai.ch/deptree/internal/adapters/manifest"
	_ "go.trai.ch/deptree/internal/adapters/report"
	_ "go.trai.ch/deptree/internal/adapters/shell"
	_ "go.trai.ch/deptree/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/deptree/internal/adapters/tree"
	// Register app and engine nodes.
	_ "go.trai.ch/deptree/internal/app"
	_ "go.trai.ch/deptree/internal/engine/orchestrator"
)
