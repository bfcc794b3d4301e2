// Package script implements the build script generator: the pure function
// from a build request and its descriptor to the ordered container build
// stages. Nothing here executes anything; stages are structured values
// rendered to text at the serialization boundary.
package script

import (
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/syntax"
)

// Container-internal paths shared by the stages. The view root is not here:
// it is read out of the descriptor so the two artifacts cannot drift.
const (
	// BootstrapEnvDir is the isolated sub-environment used only to restore
	// the compiler from the binary cache.
	BootstrapEnvDir = "/opt/slurm/compiler-env"

	// TargetEnvDir is where the serialized descriptor is materialized as
	// the target environment.
	TargetEnvDir = "/opt/slurm/env"

	// ModulesOutDir receives the target application's generated module
	// files.
	ModulesOutDir = "/opt/slurm/modules"

	// AssetsDir is where the embedded asset tree is reconstructed.
	AssetsDir = "/opt/slurm/assets"

	// OutputDir receives the final archive.
	OutputDir = "/opt/slurm"
)

// Generator implements ports.ScriptGenerator.
type Generator struct{}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// Generate produces the full stage sequence for one request. The descriptor
// must be the one synthesized from the same request; compiler identity,
// buildcache URL and view root are copied from it verbatim. The stage order
// is re-asserted as a post-condition before returning.
func (g *Generator) Generate(req domain.BuildRequest, desc *domain.EnvironmentDescriptor) (*domain.BuildScript, error) {
	buildcache, ok := desc.Mirror(domain.MirrorBuildcacheName)
	if !ok {
		return nil, zerr.Wrap(domain.ErrDescriptorInvariant,
			fmt.Sprintf("descriptor has no %q mirror", domain.MirrorBuildcacheName))
	}

	compiler := domain.CompilerPackage + "@" + req.ToolchainVersion

	script := &domain.BuildScript{
		Stages: []domain.BuildStage{
			stageBootstrapCompiler(compiler, buildcache),
			stageRegisterCompiler(compiler),
			stageHideHostCompiler(),
			stageVerifyCompiler(compiler),
			stageActivateEnvironment(desc),
			stageConcretize(),
			stageInstall(desc),
			stageGenerateModules(),
			stageVerifyRuntimeView(desc),
			stageAssembleTarball(req, desc),
		},
	}

	if err := verifyStageOrder(script); err != nil {
		return nil, err
	}
	return script, nil
}

// verifyStageOrder asserts that the generated stages match the canonical
// sequence exactly. A mismatch is an internal defect.
func verifyStageOrder(script *domain.BuildScript) error {
	if len(script.Stages) != len(domain.StageOrder) {
		return zerr.Wrap(domain.ErrStageOrder,
			fmt.Sprintf("expected %d stages, generated %d", len(domain.StageOrder), len(script.Stages)))
	}
	for i, stage := range script.Stages {
		if stage.Name != domain.StageOrder[i] {
			return zerr.Wrap(domain.ErrStageOrder,
				fmt.Sprintf("stage %d is %q, expected %q", i, stage.Name, domain.StageOrder[i]))
		}
	}
	return nil
}

// quote shell-quotes a value for safe embedding in a generated command.
// Values are generated from closed tables so quoting failures cannot
// happen at runtime; the fallback keeps the generator total.
func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "'" + s + "'"
	}
	return q
}
