package domain

import (
	"fmt"
	"sort"

	"go.trai.ch/zerr"
)

// BuildRequest is the immutable input to the synthesis engine. It is
// constructed once from CLI flags and never modified afterwards.
type BuildRequest struct {
	// TargetVersion is the user-facing Slurm release, e.g. "25.11".
	TargetVersion string

	// ToolchainVersion is the GCC release to build with, e.g. "13.4.0".
	ToolchainVersion string

	// GPU enables the NVIDIA variant flags on the target spec and the
	// GPU-library hand-copy step in the packaging stage.
	GPU bool

	// ModuleHierarchy switches the generated module tree from a flat
	// namespace to an Lmod hierarchy keyed by MPI availability.
	ModuleHierarchy bool

	// Verify attaches a post-install verification block to the descriptor.
	Verify bool
}

// slurmVersions maps user-facing release strings to the package manager's
// internal Slurm version strings.
var slurmVersions = map[string]string{
	"23.11": "23-11-10-1",
	"24.05": "24-05-7-1",
	"24.11": "24-11-5-1",
	"25.05": "25-05-3-1",
	"25.11": "25-11-0-1",
}

// SlurmPackageVersion translates a user-facing target version into the
// package-manager version string. Unknown versions fail with an error that
// names the offending value and the supported set.
func SlurmPackageVersion(target string) (string, error) {
	v, ok := slurmVersions[target]
	if !ok {
		return "", zerr.Wrap(
			ErrUnsupportedTarget,
			fmt.Sprintf("unknown target version %q, supported versions: %v", target, SupportedTargets()),
		)
	}
	return v, nil
}

// SupportedTargets returns the closed set of user-facing target versions in
// ascending order.
func SupportedTargets() []string {
	targets := make([]string, 0, len(slurmVersions))
	for t := range slurmVersions {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}
