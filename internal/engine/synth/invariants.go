package synth

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// runtimePackages are linked into or executed by the final artifact. None of
// them may ever land in the view exclusion set.
var runtimePackages = []string{
	domain.TargetPackage,
	domain.CompilerRuntimePackage,
	"openssl",
	"libjwt",
	"openldap",
	"curl",
	"munge",
	domain.MPIPackage,
}

// containsCompilerConstraint reports whether a spec carries any compiler
// selection token.
func containsCompilerConstraint(spec string) bool {
	return strings.Contains(spec, "%")
}

// hasSuffixConstraint reports whether a spec ends with the exact compiler
// constraint token.
func hasSuffixConstraint(spec, constraint string) bool {
	return strings.HasSuffix(strings.TrimSpace(spec), constraint)
}

// checkMirrorScope verifies that a mirror URL embedding a toolchain version
// segment embeds exactly the active request's version. This is the primary
// cross-artifact consistency invariant: the bootstrap stage reads the same
// URL out of the descriptor verbatim.
func checkMirrorScope(m domain.MirrorEntry, toolchainVersion string) error {
	if !strings.Contains(m.URL, domain.CompilerPackage+"-") {
		return nil
	}
	want := domain.CompilerPackage + "-" + toolchainVersion
	if !strings.HasSuffix(m.URL, want) {
		return zerr.Wrap(domain.ErrDescriptorInvariant,
			fmt.Sprintf("mirror %q URL %q is not scoped to toolchain %q", m.Name, m.URL, toolchainVersion))
	}
	return nil
}

// checkViewExclusions verifies the exclusion set both ways: no runtime
// package is excluded, and every host-only build tool plus the compiler is.
func checkViewExclusions(desc *domain.EnvironmentDescriptor) error {
	for _, pkg := range runtimePackages {
		if slices.Contains(desc.View.Exclude, pkg) {
			return zerr.Wrap(domain.ErrDescriptorInvariant,
				fmt.Sprintf("runtime package %q must not be excluded from the view (exclude set: %v)",
					pkg, desc.View.Exclude))
		}
	}

	for _, tool := range hostToolNames() {
		if !slices.Contains(desc.View.Exclude, tool) {
			return zerr.Wrap(domain.ErrDescriptorInvariant,
				fmt.Sprintf("host build tool %q is missing from the view exclusion set %v",
					tool, desc.View.Exclude))
		}
	}

	if !slices.Contains(desc.View.Exclude, domain.CompilerPackage) {
		return zerr.Wrap(domain.ErrDescriptorInvariant,
			"the compiler must be excluded from the runtime view, it is consumed at build time only")
	}
	if slices.Contains(desc.View.Exclude, domain.CompilerRuntimePackage) {
		return zerr.Wrap(domain.ErrDescriptorInvariant,
			"the compiler runtime-support package must stay in the view, linked binaries depend on it")
	}

	return nil
}
