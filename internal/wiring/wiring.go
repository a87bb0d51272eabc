// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rockbuild/internal/adapters/bindings"
	_ "go.trai.ch/rockbuild/internal/adapters/cas"
	_ "go.trai.ch/rockbuild/internal/adapters/config"
	_ "go.trai.ch/rockbuild/internal/adapters/emitter"
	_ "go.trai.ch/rockbuild/internal/adapters/fs"
	_ "go.trai.ch/rockbuild/internal/adapters/logger"
	_ "go.trai.ch/rockbuild/internal/adapters/shell"
	_ "go.trai.ch/rockbuild/internal/adapters/telemetry"
	_ "go.trai.ch/rockbuild/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/rockbuild/internal/app"
	_ "go.trai.ch/rockbuild/internal/engine/orchestrator"
)
