package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/render"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/synth"
	"go.trai.ch/forge/internal/engine/toolchain"
	"gopkg.in/yaml.v3"
)

func synthesize(t *testing.T, req domain.BuildRequest) *domain.EnvironmentDescriptor {
	t.Helper()
	desc, err := synth.New(toolchain.New()).Synthesize(req)
	require.NoError(t, err)
	return desc
}

func baseRequest() domain.BuildRequest {
	return domain.BuildRequest{TargetVersion: "25.11", ToolchainVersion: "13.4.0"}
}

// parse unmarshals rendered YAML back into a generic document for
// structural assertions.
func parse(t *testing.T, rendered []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(rendered, &doc))
	spack, ok := doc["spack"].(map[string]any)
	require.True(t, ok, "missing top-level spack key")
	return spack
}

func TestRenderDescriptor_Sections(t *testing.T) {
	rendered, err := render.New().RenderDescriptor(synthesize(t, baseRequest()))
	require.NoError(t, err)

	spack := parse(t, rendered)
	for _, section := range []string{"specs", "packages", "view", "mirrors", "compilers", "modules"} {
		assert.Contains(t, spack, section)
	}
	assert.NotContains(t, spack, "verification")

	// Section order in the document is fixed by construction.
	text := string(rendered)
	specsIdx := strings.Index(text, "\n  specs:")
	packagesIdx := strings.Index(text, "\n  packages:")
	viewIdx := strings.Index(text, "\n  view:")
	mirrorsIdx := strings.Index(text, "\n  mirrors:")
	compilersIdx := strings.Index(text, "\n  compilers:")
	modulesIdx := strings.Index(text, "\n  modules:")
	require.NotEqual(t, -1, specsIdx)
	assert.Less(t, specsIdx, packagesIdx)
	assert.Less(t, packagesIdx, viewIdx)
	assert.Less(t, viewIdx, mirrorsIdx)
	assert.Less(t, mirrorsIdx, compilersIdx)
	assert.Less(t, compilersIdx, modulesIdx)
}

func TestRenderDescriptor_SpecsVerbatim(t *testing.T) {
	desc := synthesize(t, baseRequest())
	rendered, err := render.New().RenderDescriptor(desc)
	require.NoError(t, err)

	spack := parse(t, rendered)
	specs, ok := spack["specs"].([]any)
	require.True(t, ok)
	require.Len(t, specs, len(desc.Specs))
	for i, spec := range desc.Specs {
		assert.Equal(t, spec, specs[i])
	}
}

func TestRenderDescriptor_CompilersEmptyList(t *testing.T) {
	rendered, err := render.New().RenderDescriptor(synthesize(t, baseRequest()))
	require.NoError(t, err)

	// The compilers section must serialize as an empty list, not null.
	spack := parse(t, rendered)
	compilers, ok := spack["compilers"].([]any)
	require.True(t, ok, "compilers must be a list, got %T", spack["compilers"])
	assert.Empty(t, compilers)
}

func TestRenderDescriptor_PackagesAndView(t *testing.T) {
	rendered, err := render.New().RenderDescriptor(synthesize(t, baseRequest()))
	require.NoError(t, err)
	spack := parse(t, rendered)

	packages := spack["packages"].(map[string]any)
	cmake := packages["cmake"].(map[string]any)
	assert.Equal(t, false, cmake["buildable"])
	externals := cmake["externals"].([]any)
	require.Len(t, externals, 1)
	assert.Equal(t, "cmake@3.26.5", externals[0].(map[string]any)["spec"])

	view := spack["view"].(map[string]any)["default"].(map[string]any)
	assert.Equal(t, "/opt/slurm/view", view["root"])
	projections := view["projections"].(map[string]any)
	assert.Equal(t, "{name}-{hash:7}", projections["all"])
}

func TestRenderDescriptor_MirrorsAndModules(t *testing.T) {
	req := baseRequest()
	req.ModuleHierarchy = true
	rendered, err := render.New().RenderDescriptor(synthesize(t, req))
	require.NoError(t, err)
	spack := parse(t, rendered)

	mirrors := spack["mirrors"].(map[string]any)
	buildcache := mirrors[domain.MirrorBuildcacheName].(map[string]any)
	assert.Equal(t, "https://buildcache.trai.ch/gcc-13.4.0", buildcache["url"])
	assert.Equal(t, true, buildcache["signed"])

	lmod := spack["modules"].(map[string]any)["default"].(map[string]any)["lmod"].(map[string]any)
	assert.Equal(t, []any{"gcc@13.4.0"}, lmod["core_compilers"])
	assert.Equal(t, []any{"mpi"}, lmod["hierarchy"])

	openmpi := lmod[domain.MPIPackage].(map[string]any)
	assert.Equal(t, "direct", openmpi["autoload"])

	slurm := lmod["slurm"].(map[string]any)
	env := slurm["environment"].(map[string]any)["set"].(map[string]any)
	assert.Equal(t, "{prefix}", env["SLURM_ROOT"])
	assert.Equal(t, "{^gcc-runtime.prefix}", env["GCC_RUNTIME_ROOT"])
}

func TestRenderDescriptor_VerificationBlock(t *testing.T) {
	req := baseRequest()
	req.Verify = true
	rendered, err := render.New().RenderDescriptor(synthesize(t, req))
	require.NoError(t, err)

	spack := parse(t, rendered)
	verification, ok := spack["verification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, verification["relocatability"])
	assert.Equal(t, true, verification["dependency_completeness"])
	assert.Equal(t, true, verification["shared_library_deps"])
}

func TestRenderDescriptor_Deterministic(t *testing.T) {
	req := baseRequest()
	req.GPU = true
	req.ModuleHierarchy = true
	req.Verify = true

	renderer := render.New()
	first, err := renderer.RenderDescriptor(synthesize(t, req))
	require.NoError(t, err)
	second, err := renderer.RenderDescriptor(synthesize(t, req))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "descriptor rendering must be byte-identical")
}
