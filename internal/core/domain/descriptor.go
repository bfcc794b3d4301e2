package domain

// ExternalLocation pins a package to an installation already present on the
// build host instead of building it from source.
type ExternalLocation struct {
	// Spec is the fully versioned spec of the host installation,
	// e.g. "cmake@3.26.5".
	Spec string

	// Prefix is the install prefix of the host installation.
	Prefix string
}

// PackagePolicy is the per-package override table entry of a descriptor.
// A package marked non-buildable must declare at least one external
// location; the synthesizer enforces this before returning.
type PackagePolicy struct {
	Buildable bool

	// Externals lists host installations satisfying this package.
	Externals []ExternalLocation

	// Versions pins the acceptable version set, e.g. ["13.4.0"].
	Versions []string

	// Require lists variant constraints applied whenever the package is
	// concretized, e.g. ["+pmix"].
	Require []string

	// Dependencies lists dependency constraints the package must be
	// concretized with, e.g. ["^munge"].
	Dependencies []string
}

// ViewPolicy describes the single merged runtime view projected from the
// installed packages.
type ViewPolicy struct {
	// Root is the view's mount point inside the container.
	Root string

	// LinkType selects which specs are linked into the view.
	LinkType string

	// Projection is the per-package directory template. Short hash-suffixed
	// names keep install prefixes short; long prefixes break relocation
	// because the prefix length is baked into binaries at build time.
	Projection string

	// Exclude is the sorted set of packages kept out of the view: host
	// build tools, the compiler itself, and the GPU libraries that are
	// hand-placed during packaging.
	Exclude []string
}

// MirrorEntry names a remote package source or binary cache.
type MirrorEntry struct {
	Name   string
	URL    string
	Signed bool
}

// ModulePolicy drives environment-module generation inside the container.
type ModulePolicy struct {
	// CoreCompilers lists compiler identities whose modules sit at the root
	// of the hierarchy, e.g. ["gcc@13.4.0"].
	CoreCompilers []string

	// Hierarchy lists the middle hierarchy tiers. Empty in flat mode;
	// contains "mpi" in hierarchical mode.
	Hierarchy []string

	// Autoload maps a package name to its autoload mode. In hierarchical
	// mode the MPI provider autoloads with the compiler tier.
	Autoload map[string]string

	// PackageEnv maps a package name to the environment variables its
	// generated module must set. Values may use the module generator's
	// token syntax, e.g. "{prefix}" or "{^gcc-runtime.prefix}".
	PackageEnv map[string]map[string]string
}

// Verification requests post-install checks on the assembled view.
type Verification struct {
	Relocatability         bool
	DependencyCompleteness bool
	SharedLibraryDeps      bool
}

// EnvironmentDescriptor is the structured declaration of what to build. It
// is produced fresh per BuildRequest and never mutated afterwards; the build
// script generator and the external serializer treat it as a snapshot.
type EnvironmentDescriptor struct {
	// Specs is the ordered list of abstract specs: the compiler first, then
	// dependencies in link order, then the target application.
	Specs []string

	// Packages is the per-package policy table.
	Packages map[string]PackagePolicy

	View    ViewPolicy
	Mirrors []MirrorEntry

	// Compilers is always empty at generation time; compilers are
	// registered dynamically inside the container, never pre-declared.
	Compilers []string

	Modules ModulePolicy

	// Verification is present only when the request asked for it.
	Verification *Verification
}

// Mirror returns the mirror entry with the given name, or false when the
// descriptor has no such mirror.
func (d *EnvironmentDescriptor) Mirror(name string) (MirrorEntry, bool) {
	for _, m := range d.Mirrors {
		if m.Name == name {
			return m, true
		}
	}
	return MirrorEntry{}, false
}

// TargetSpec returns the last spec in the ordered list, which is always the
// target application.
func (d *EnvironmentDescriptor) TargetSpec() string {
	if len(d.Specs) == 0 {
		return ""
	}
	return d.Specs[len(d.Specs)-1]
}
