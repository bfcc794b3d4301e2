package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// RequestDigest returns a short stable identity for a build request, used in
// log fields and artifact labels. Identical requests always produce the same
// digest.
func RequestDigest(req BuildRequest) string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%s|%s|%t|%t|%t",
		req.TargetVersion,
		req.ToolchainVersion,
		req.GPU,
		req.ModuleHierarchy,
		req.Verify,
	)
	return fmt.Sprintf("%016x", h.Sum64())
}
