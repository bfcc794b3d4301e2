// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forge/internal/adapters/logger"
	_ "go.trai.ch/forge/internal/adapters/render"
	// Register app and engine nodes.
	_ "go.trai.ch/forge/internal/app"
	_ "go.trai.ch/forge/internal/engine/assets"
	_ "go.trai.ch/forge/internal/engine/script"
	_ "go.trai.ch/forge/internal/engine/synth"
	_ "go.trai.ch/forge/internal/engine/toolchain"
)
