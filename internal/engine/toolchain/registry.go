// Package toolchain holds the closed registry of supported compiler
// toolchains and their platform-compatibility metadata.
package toolchain

import (
	"fmt"
	"sort"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// registry is the hand-maintained toolchain table. Each entry pairs a GCC
// release with the oldest glibc its binaries run against. Treat the variant
// details downstream as a snapshot to validate per platform, not as ground
// truth.
var registry = map[string]domain.ToolchainSpec{
	"4.8.5":  {Version: "4.8.5", MinGlibc: "2.17", Description: "legacy EL7 system compiler"},
	"4.9.4":  {Version: "4.9.4", MinGlibc: "2.17", Description: "last GCC 4 release, EL7 compatible"},
	"5.5.0":  {Version: "5.5.0", MinGlibc: "2.17", Description: "C++11 ABI default, EL7 compatible"},
	"7.5.0":  {Version: "7.5.0", MinGlibc: "2.17", Description: "EL7 devtoolset era"},
	"8.5.0":  {Version: "8.5.0", MinGlibc: "2.28", Description: "EL8 system compiler"},
	"9.5.0":  {Version: "9.5.0", MinGlibc: "2.28", Description: "EL8 compatible"},
	"10.5.0": {Version: "10.5.0", MinGlibc: "2.28", Description: "EL8 compatible"},
	"11.5.0": {Version: "11.5.0", MinGlibc: "2.28", Description: "EL8/EL9 compatible"},
	"13.4.0": {Version: "13.4.0", MinGlibc: "2.34", Description: "EL9 system compiler"},
}

// Registry implements ports.ToolchainRegistry over the static table.
type Registry struct{}

// New creates a Registry.
func New() *Registry {
	return &Registry{}
}

// Lookup returns the toolchain spec for version. Unknown versions fail with
// an error naming the value and the full supported set.
func (r *Registry) Lookup(version string) (domain.ToolchainSpec, error) {
	spec, ok := registry[version]
	if !ok {
		return domain.ToolchainSpec{}, zerr.Wrap(
			domain.ErrUnsupportedToolchain,
			fmt.Sprintf("unknown toolchain version %q, supported versions: %v", version, versions()),
		)
	}
	return spec, nil
}

// All returns every registered toolchain in ascending version order.
func (r *Registry) All() []domain.ToolchainSpec {
	specs := make([]domain.ToolchainSpec, 0, len(registry))
	for _, v := range versions() {
		specs = append(specs, registry[v])
	}
	return specs
}

// versions returns the registered version strings sorted numerically by
// release component.
func versions() []string {
	vs := make([]string, 0, len(registry))
	for v := range registry {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool {
		return versionLess(vs[i], vs[j])
	})
	return vs
}

func versionLess(a, b string) bool {
	var amaj, amin, apatch, bmaj, bmin, bpatch int
	_, _ = fmt.Sscanf(a, "%d.%d.%d", &amaj, &amin, &apatch)
	_, _ = fmt.Sscanf(b, "%d.%d.%d", &bmaj, &bmin, &bpatch)
	if amaj != bmaj {
		return amaj < bmaj
	}
	if amin != bmin {
		return amin < bmin
	}
	return apatch < bpatch
}
