package synth

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/toolchain"
)

// NodeID is the unique identifier for the synthesizer Graft node.
const NodeID graft.ID = "engine.synthesizer"

func init() {
	graft.Register(graft.Node[ports.Synthesizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{toolchain.NodeID},
		Run: func(ctx context.Context) (ports.Synthesizer, error) {
			registry, err := graft.Dep[ports.ToolchainRegistry](ctx)
			if err != nil {
				return nil, err
			}
			return New(registry), nil
		},
	})
}
