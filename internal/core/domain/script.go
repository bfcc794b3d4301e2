package domain

// FailureMode controls what happens when a command inside a stage fails.
type FailureMode int

const (
	// FailAbort propagates the failure immediately and aborts the build.
	FailAbort FailureMode = iota

	// FailWarnAndContinue downgrades failures to a warning. Only used for
	// conditions known to be environment-dependent, such as host compiler
	// binaries that may not exist.
	FailWarnAndContinue
)

// Stage names, in the only order the generator may emit them. The compiler
// must be registered at site scope before any target-environment stage runs;
// the package manager's compiler registry has no transactional isolation
// between stages, so ordering is the only safety mechanism.
const (
	StageBootstrapCompiler   = "bootstrap-compiler"
	StageRegisterCompiler    = "register-compiler-globally"
	StageHideHostCompiler    = "hide-host-compiler-binaries"
	StageVerifyCompiler      = "verify-compiler-functional"
	StageActivateEnvironment = "activate-target-environment"
	StageConcretize          = "concretize"
	StageInstall             = "install"
	StageGenerateModules     = "generate-modules"
	StageVerifyRuntimeView   = "verify-runtime-view"
	StageAssembleTarball     = "assemble-tarball"
)

// StageOrder is the canonical stage sequence. No backward transitions and no
// omissions are permitted.
var StageOrder = []string{
	StageBootstrapCompiler,
	StageRegisterCompiler,
	StageHideHostCompiler,
	StageVerifyCompiler,
	StageActivateEnvironment,
	StageConcretize,
	StageInstall,
	StageGenerateModules,
	StageVerifyRuntimeView,
	StageAssembleTarball,
}

// BuildStage is one ordered shell operation of the build script.
type BuildStage struct {
	Name        string
	Commands    []string
	FailureMode FailureMode
}

// BuildScript is the ordered stage sequence for one build request. It is
// generated once, rendered to text, and discarded.
type BuildScript struct {
	Stages []BuildStage
}

// Stage returns the stage with the given name, or false when the script has
// no such stage.
func (s *BuildScript) Stage(name string) (BuildStage, bool) {
	for _, st := range s.Stages {
		if st.Name == name {
			return st, true
		}
	}
	return BuildStage{}, false
}
