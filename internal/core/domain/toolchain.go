package domain

// ToolchainSpec describes a supported GCC release and the oldest platform
// libc it can target. The registry of these is closed and hand-maintained;
// there are no mutation operations at runtime.
type ToolchainSpec struct {
	// Version is the exact GCC release, e.g. "13.4.0".
	Version string

	// MinGlibc is the minimum glibc version binaries built with this
	// toolchain require at runtime.
	MinGlibc string

	// Description is a human-readable platform-compatibility note shown in
	// the toolchain listing.
	Description string
}

// CompilerIdentity returns the package-manager compiler identity string for
// this toolchain, e.g. "gcc@13.4.0". This exact string appears in specs,
// module metadata and archive names; both output artifacts must agree on it.
func (t ToolchainSpec) CompilerIdentity() string {
	return CompilerPackage + "@" + t.Version
}

// CompilerPackage is the package name of the compiler that every toolchain
// entry resolves to.
const CompilerPackage = "gcc"

// CompilerRuntimePackage is the compiler's runtime-support package. Linked
// binaries depend on it, so unlike the compiler itself it stays in the
// runtime view.
const CompilerRuntimePackage = "gcc-runtime"
