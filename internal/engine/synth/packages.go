package synth

import (
	"sort"

	"go.trai.ch/forge/internal/core/domain"
)

// hostTools pins the host-provided build tools to the exact versions of the
// EL9 build image. They never relocate, so building them from source would
// only cost time and determinism. The pin table is a snapshot; revalidate it
// when the build image changes.
var hostTools = map[string]string{
	"autoconf":  "2.69",
	"automake":  "1.16.2",
	"bison":     "3.7.4",
	"cmake":     "3.26.5",
	"diffutils": "3.7",
	"flex":      "2.6.4",
	"gmake":     "4.3",
	"libtool":   "2.4.6",
	"m4":        "1.4.18",
	"pkgconf":   "1.7.3",
	"tar":       "1.34",
}

const hostPrefix = "/usr"

// hostToolNames returns the class of host-provided build tools in sorted
// order.
func hostToolNames() []string {
	names := make([]string, 0, len(hostTools))
	for name := range hostTools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildPackagePolicies partitions packages into the three policy classes:
// host tools pinned and non-buildable, the compiler pair pinned to the
// toolchain and restored from the binary cache, and everything else built
// from source for relocatability (the default, so no entry is needed).
func buildPackagePolicies(tc domain.ToolchainSpec) map[string]domain.PackagePolicy {
	policies := make(map[string]domain.PackagePolicy, len(hostTools)+2)

	for name, version := range hostTools {
		policies[name] = domain.PackagePolicy{
			Buildable: false,
			Externals: []domain.ExternalLocation{
				{Spec: name + "@" + version, Prefix: hostPrefix},
			},
		}
	}

	policies[domain.CompilerPackage] = domain.PackagePolicy{
		Buildable: true,
		Versions:  []string{tc.Version},
		Require:   []string{"@=" + tc.Version},
	}
	policies[domain.CompilerRuntimePackage] = domain.PackagePolicy{
		Buildable: true,
		Versions:  []string{tc.Version},
	}

	return policies
}
