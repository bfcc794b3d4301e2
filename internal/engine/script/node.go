package script

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the script generator Graft node.
const NodeID graft.ID = "engine.script_generator"

func init() {
	graft.Register(graft.Node[ports.ScriptGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptGenerator, error) {
			return New(), nil
		},
	})
}
