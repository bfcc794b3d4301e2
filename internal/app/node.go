package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/render"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/assets"
	"go.trai.ch/forge/internal/engine/script"
	"go.trai.ch/forge/internal/engine/synth"
	"go.trai.ch/forge/internal/engine/toolchain"
)

// Components bundles the fully wired application for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			synth.NodeID,
			script.NodeID,
			assets.NodeID,
			render.DescriptorNodeID,
			render.ScriptNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			registry, err := graft.Dep[ports.ToolchainRegistry](ctx)
			if err != nil {
				return nil, err
			}
			synthesizer, err := graft.Dep[ports.Synthesizer](ctx)
			if err != nil {
				return nil, err
			}
			generator, err := graft.Dep[ports.ScriptGenerator](ctx)
			if err != nil {
				return nil, err
			}
			embedder, err := graft.Dep[ports.AssetEmbedder](ctx)
			if err != nil {
				return nil, err
			}
			descRenderer, err := graft.Dep[ports.DescriptorRenderer](ctx)
			if err != nil {
				return nil, err
			}
			scriptRenderer, err := graft.Dep[ports.ScriptRenderer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(registry, synthesizer, generator, embedder, descRenderer, scriptRenderer, log),
				Logger: log,
			}, nil
		},
	})
}
