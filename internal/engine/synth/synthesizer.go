// Package synth implements the environment descriptor synthesizer: the pure
// function from a build request to the structured declaration of what to
// build, with which compiler, under which package overrides and module
// metadata.
package synth

import (
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// TargetArch is the CPU microarchitecture every package is built for.
// Pinning one level keeps the binaries portable across the supported fleet.
const TargetArch = "x86_64_v3"

// ViewRoot is the runtime view mount point inside the container.
const ViewRoot = "/opt/slurm/view"

// compilerVariants are the language-support and ABI variants the compiler
// spec must always carry. Omitting these has caused silent compiler
// capability detection failures downstream; they are a hard requirement.
const compilerVariants = "languages=c,c++,fortran +binutils"

// Synthesizer implements ports.Synthesizer.
type Synthesizer struct {
	registry ports.ToolchainRegistry
}

// New creates a Synthesizer backed by the given toolchain registry.
func New(registry ports.ToolchainRegistry) *Synthesizer {
	return &Synthesizer{registry: registry}
}

// Synthesize validates the request and builds the descriptor section by
// section, then re-checks every cross-artifact invariant before returning.
func (s *Synthesizer) Synthesize(req domain.BuildRequest) (*domain.EnvironmentDescriptor, error) {
	slurmVersion, err := domain.SlurmPackageVersion(req.TargetVersion)
	if err != nil {
		return nil, err
	}

	tc, err := s.registry.Lookup(req.ToolchainVersion)
	if err != nil {
		return nil, err
	}

	desc := &domain.EnvironmentDescriptor{
		Specs:     buildSpecs(tc, slurmVersion, req),
		Packages:  buildPackagePolicies(tc),
		View:      buildViewPolicy(),
		Mirrors:   buildMirrors(tc),
		Compilers: []string{},
		Modules:   generateModulePolicy(tc, slurmVersion, req.ModuleHierarchy, req.GPU),
	}

	if req.Verify {
		desc.Verification = &domain.Verification{
			Relocatability:         true,
			DependencyCompleteness: true,
			SharedLibraryDeps:      true,
		}
	}

	if err := checkDescriptor(desc, req); err != nil {
		return nil, err
	}
	return desc, nil
}

// buildSpecs assembles the ordered spec list: compiler first, then runtime
// libraries in link order (a library always precedes the libraries that link
// against it), then the target application.
func buildSpecs(tc domain.ToolchainSpec, slurmVersion string, req domain.BuildRequest) []string {
	cc := "%" + tc.CompilerIdentity()

	specs := []string{
		// The compiler itself carries no compiler-selection constraint.
		fmt.Sprintf("%s@%s %s", domain.CompilerPackage, tc.Version, compilerVariants),
		// openssl before libjwt (token signing links the hash primitives),
		// both before openldap and curl which link against them.
		"openssl " + cc,
		"libjwt " + cc,
		"openldap " + cc,
		"curl " + cc,
		"munge " + cc,
	}

	if req.ModuleHierarchy {
		specs = append(specs, domain.MPIPackage+" "+cc)
	}

	specs = append(specs, targetSpec(slurmVersion, req.GPU)+" "+cc)
	return specs
}

// targetSpec builds the Slurm spec with the GPU variant pair toggled. The
// on and off forms are mutually exclusive; exactly one is always present.
func targetSpec(slurmVersion string, gpu bool) string {
	nvml := "~nvml"
	if gpu {
		nvml = "+nvml"
	}
	return fmt.Sprintf("%s@%s sysconfdir=/etc/slurm +readline +hwloc +pmix +restd %s",
		domain.TargetPackage, slurmVersion, nvml)
}

// checkDescriptor enforces the generation-time invariants. A violation here
// is a defect in the synthesizer itself, never a user input error, so the
// message carries the offending fragment for post-mortem diagnosis.
func checkDescriptor(desc *domain.EnvironmentDescriptor, req domain.BuildRequest) error {
	cc := "%" + domain.CompilerPackage + "@" + req.ToolchainVersion

	for i, spec := range desc.Specs {
		isCompiler := i == 0
		if isCompiler {
			if containsCompilerConstraint(spec) {
				return zerr.Wrap(domain.ErrDescriptorInvariant,
					fmt.Sprintf("compiler spec must not constrain its own compiler: %q", spec))
			}
			continue
		}
		if !hasSuffixConstraint(spec, cc) {
			return zerr.Wrap(domain.ErrDescriptorInvariant,
				fmt.Sprintf("spec %q is missing the compiler constraint %q", spec, cc))
		}
	}

	for name, policy := range desc.Packages {
		if !policy.Buildable && len(policy.Externals) == 0 {
			return zerr.Wrap(domain.ErrMissingExternal,
				fmt.Sprintf("package %q is non-buildable without an external location", name))
		}
	}

	for _, m := range desc.Mirrors {
		if err := checkMirrorScope(m, req.ToolchainVersion); err != nil {
			return err
		}
	}

	if err := checkViewExclusions(desc); err != nil {
		return err
	}

	if len(desc.Compilers) != 0 {
		return zerr.Wrap(domain.ErrDescriptorInvariant,
			fmt.Sprintf("compilers list must be empty at generation time, got %v", desc.Compilers))
	}

	return nil
}
