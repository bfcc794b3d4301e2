package synth

import (
	"sort"

	"go.trai.ch/forge/internal/core/domain"
)

// buildViewPolicy describes the single merged runtime view. The projection
// keeps per-package directory names short and hash-suffixed: install-prefix
// length is baked into binaries at build time, and long prefixes leave no
// headroom for relocation padding.
func buildViewPolicy() domain.ViewPolicy {
	exclude := hostToolNames()
	exclude = append(exclude,
		// Consumed at build time only; its runtime-support package stays.
		domain.CompilerPackage,
		// Hand-placed into the view during packaging, never projected.
		domain.GPUPackage,
	)
	sort.Strings(exclude)

	return domain.ViewPolicy{
		Root:       ViewRoot,
		LinkType:   "run",
		Projection: "{name}-{hash:7}",
		Exclude:    exclude,
	}
}
