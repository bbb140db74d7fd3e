// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/toil/internal/adapters/cmake"
	_ "go.trai.ch/toil/internal/adapters/config"
	_ "go.trai.ch/toil/internal/adapters/detector"
	_ "go.trai.ch/toil/internal/adapters/logger"
	_ "go.trai.ch/toil/internal/adapters/session"
	_ "go.trai.ch/toil/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/toil/internal/app"
	_ "go.trai.ch/toil/internal/engine/resolver"
	_ "go.trai.ch/toil/internal/engine/runner"
)
