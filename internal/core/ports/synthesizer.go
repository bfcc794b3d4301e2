package ports

import "go.trai.ch/forge/internal/core/domain"

// Synthesizer turns a build request into an environment descriptor.
//
//go:generate mockgen -source=synthesizer.go -destination=mocks/mock_synthesizer.go -package=mocks
type Synthesizer interface {
	// Synthesize validates the request and produces a fully consistent
	// descriptor. Validation failures return domain.ErrUnsupportedTarget or
	// domain.ErrUnsupportedToolchain; an inconsistent result is never
	// returned, a post-condition violation aborts with
	// domain.ErrDescriptorInvariant instead.
	Synthesize(req domain.BuildRequest) (*domain.EnvironmentDescriptor, error)
}

// ScriptGenerator renders the ordered container build stages for a request
// and its descriptor.
type ScriptGenerator interface {
	// Generate produces the stage sequence. The descriptor must be the one
	// synthesized from the same request; version strings, mirror URLs and
	// the view root are copied from it verbatim.
	Generate(req domain.BuildRequest, desc *domain.EnvironmentDescriptor) (*domain.BuildScript, error)
}

// AssetEmbedder converts a static asset tree into shell commands that
// reconstruct it inside a container without bind mounts.
type AssetEmbedder interface {
	// Embed walks the tree rooted at root and returns the ordered command
	// list. Identical trees yield identical command sequences.
	Embed(root string) ([]string, error)
}
