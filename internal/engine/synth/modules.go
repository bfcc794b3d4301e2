package synth

import "go.trai.ch/forge/internal/core/domain"

// generateModulePolicy builds the Lmod module policy for a toolchain.
//
// Flat mode produces a single-tier namespace where all generated modules are
// siblings. Hierarchical mode introduces a middle tier keyed by MPI
// availability and autoloads the MPI provider together with the compiler
// tier.
//
// GPU mode adds no PATH entries: the GPU libraries resolve through
// binary-embedded search paths, not the environment.
func generateModulePolicy(tc domain.ToolchainSpec, slurmVersion string, hierarchy, gpu bool) domain.ModulePolicy {
	policy := domain.ModulePolicy{
		CoreCompilers: []string{tc.CompilerIdentity()},
		Hierarchy:     []string{},
		PackageEnv: map[string]map[string]string{
			domain.TargetPackage: targetModuleEnv(tc, slurmVersion, gpu),
		},
	}

	if hierarchy {
		policy.Hierarchy = []string{"mpi"}
		policy.Autoload = map[string]string{
			domain.MPIPackage: "direct",
		}
	}

	return policy
}

// targetModuleEnv is the environment the target application's module must
// inject. The compiler runtime prefix is read through the module token
// syntax rather than a guessed lib directory, since the exact library layout
// is compiler and version dependent.
func targetModuleEnv(tc domain.ToolchainSpec, slurmVersion string, gpu bool) map[string]string {
	buildType := "cpu"
	if gpu {
		buildType = "gpu"
	}
	return map[string]string{
		"SLURM_ROOT":        "{prefix}",
		"SLURM_VERSION":     slurmVersion,
		"SLURM_BUILD_TYPE":  buildType,
		"SLURM_COMPILER":    tc.CompilerIdentity(),
		"SLURM_TARGET_ARCH": TargetArch,
		"GCC_RUNTIME_ROOT":  "{^" + domain.CompilerRuntimePackage + ".prefix}",
	}
}
