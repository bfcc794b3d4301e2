package synth

import "go.trai.ch/forge/internal/core/domain"

// sourceMirrorURL is the public source mirror; contents are checksummed by
// the package manager, so it is unsigned.
const sourceMirrorURL = "https://mirror.spack.io"

// buildcacheBaseURL is the binary cache endpoint. It is namespaced per
// toolchain so caches built with different compilers can never mix.
const buildcacheBaseURL = "https://buildcache.trai.ch"

// buildMirrors produces the mirror list. The buildcache URL embeds the
// active toolchain version and nothing else ever may; the bootstrap stage
// copies it verbatim.
func buildMirrors(tc domain.ToolchainSpec) []domain.MirrorEntry {
	return []domain.MirrorEntry{
		{
			Name:   domain.MirrorSourcesName,
			URL:    sourceMirrorURL,
			Signed: false,
		},
		{
			Name:   domain.MirrorBuildcacheName,
			URL:    buildcacheBaseURL + "/" + domain.CompilerPackage + "-" + tc.Version,
			Signed: true,
		},
	}
}
