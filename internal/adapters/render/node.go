package render

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

const (
	// DescriptorNodeID is the unique identifier for the descriptor renderer Graft node.
	DescriptorNodeID graft.ID = "adapter.descriptor_renderer"
	// ScriptNodeID is the unique identifier for the script renderer Graft node.
	ScriptNodeID graft.ID = "adapter.script_renderer"
)

func init() {
	graft.Register(graft.Node[ports.DescriptorRenderer]{
		ID:        DescriptorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorRenderer, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.ScriptRenderer]{
		ID:        ScriptNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptRenderer, error) {
			return New(), nil
		},
	})
}
