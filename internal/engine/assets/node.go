package assets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/script"
)

// NodeID is the unique identifier for the asset embedder Graft node.
const NodeID graft.ID = "engine.asset_embedder"

func init() {
	graft.Register(graft.Node[ports.AssetEmbedder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AssetEmbedder, error) {
			return New(script.AssetsDir), nil
		},
	})
}
