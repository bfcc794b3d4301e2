package domain

// Package and mirror names shared by the descriptor synthesizer and the
// build script generator. Both artifacts must reference the same names; keep
// them in one place.
const (
	// TargetPackage is the workload manager package the whole build exists
	// to produce.
	TargetPackage = "slurm"

	// GPUPackage provides the GPU management libraries. It is excluded from
	// the generic view projection and hand-placed during packaging.
	GPUPackage = "cuda"

	// MPIPackage is the MPI provider keyed on by the hierarchical module
	// layout.
	MPIPackage = "openmpi"

	// MirrorSourcesName is the public, unsigned source mirror.
	MirrorSourcesName = "sources"

	// MirrorBuildcacheName is the signed, toolchain-version-scoped binary
	// cache consulted during compiler bootstrap.
	MirrorBuildcacheName = "toolchain-buildcache"
)
