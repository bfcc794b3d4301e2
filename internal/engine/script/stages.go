package script

import (
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
)

// stageBootstrapCompiler creates an isolated sub-environment that requests
// only the compiler and restores it from the binary cache. The cache listing
// is queried first: if the exact compiler version is absent we abort with a
// specific diagnostic instead of silently falling back to a source build,
// which would defeat the cache entirely.
func stageBootstrapCompiler(compiler string, buildcache domain.MirrorEntry) domain.BuildStage {
	signedFlag := "--unsigned"
	if buildcache.Signed {
		signedFlag = "--signed"
	}

	return domain.BuildStage{
		Name:        domain.StageBootstrapCompiler,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf("spack env create --dir %s", quote(BootstrapEnvDir)),
			fmt.Sprintf("spack -e %s add %s", quote(BootstrapEnvDir), quote(compiler)),
			fmt.Sprintf("spack -e %s mirror add %s %s %s",
				quote(BootstrapEnvDir), signedFlag, quote(buildcache.Name), quote(buildcache.URL)),
			fmt.Sprintf("spack -e %s buildcache list --allarch | grep -q %s || { echo %s >&2; exit 1; }",
				quote(BootstrapEnvDir),
				quote(compiler),
				quote(fmt.Sprintf("ERROR: %s not found in buildcache %s", compiler, buildcache.URL))),
			fmt.Sprintf("spack -e %s install --cache-only --fail-fast", quote(BootstrapEnvDir)),
		},
	}
}

// stageRegisterCompiler registers the freshly installed compiler at site
// scope, the one scope visible to every later sub-environment. Host
// compilers sharing the same major identity are removed so concretization
// can never pick them up by accident, and the registration is re-read as a
// post-condition before the stage is allowed to succeed.
func stageRegisterCompiler(compiler string) domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageRegisterCompiler,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf(`spack compiler add --scope site "$(spack -e %s location -i %s)"`,
				quote(BootstrapEnvDir), quote(compiler)),
			`if command -v /usr/bin/gcc >/dev/null 2>&1; then spack compiler remove --scope site "gcc@$(/usr/bin/gcc -dumpfullversion)" || true; fi`,
			fmt.Sprintf("spack compiler list --scope site | grep -q %s || { echo %s >&2; exit 1; }",
				quote(compiler),
				quote(fmt.Sprintf("ERROR: %s missing from site compiler scope after registration", compiler))),
		},
	}
}

// stageHideHostCompiler renames the host compiler executables so later
// auto-detection cannot rediscover them. Files may legitimately be absent,
// so this stage only warns.
func stageHideHostCompiler() domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageHideHostCompiler,
		FailureMode: domain.FailWarnAndContinue,
		Commands: []string{
			`for bin in gcc g++ cc c++ cpp gfortran; do if [ -e "/usr/bin/${bin}" ]; then mv "/usr/bin/${bin}" "/usr/bin/${bin}.masked" || true; fi; done`,
		},
	}
}

// stageVerifyCompiler compiles and runs a trivial program through the newly
// registered compiler. Any failure is fatal and dumps a verbose invocation
// plus a dynamic-loader trace first, because the usual cause (a libc newer
// than the toolchain's floor) is invisible in the plain error.
func stageVerifyCompiler(compiler string) domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageVerifyCompiler,
		FailureMode: domain.FailAbort,
		Commands: []string{
			`printf 'int main(void) { return 0; }\n' > /tmp/conftest.c`,
			fmt.Sprintf(`if ! (spack load %s && gcc /tmp/conftest.c -o /tmp/conftest && /tmp/conftest); then
  echo "ERROR: registered compiler failed its functional check" >&2
  gcc -v /tmp/conftest.c -o /tmp/conftest || true
  LD_DEBUG=libs /tmp/conftest || true
  exit 1
fi`, quote(compiler)),
		},
	}
}

// stageActivateEnvironment switches to the target environment described by
// the descriptor and removes any stale lock artifact from a previous
// concretization.
func stageActivateEnvironment(desc *domain.EnvironmentDescriptor) domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageActivateEnvironment,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf("test -f %s/spack.yaml || { echo %s >&2; ls -la %s >&2 || true; exit 1; }",
				quote(TargetEnvDir),
				quote(fmt.Sprintf("ERROR: no environment descriptor at %s/spack.yaml", TargetEnvDir)),
				quote(TargetEnvDir)),
			fmt.Sprintf("rm -f %s/spack.lock", quote(TargetEnvDir)),
			fmt.Sprintf("spack -e %s env status", quote(TargetEnvDir)),
			fmt.Sprintf("mkdir -p %s", quote(desc.View.Root)),
		},
	}
}

// stageConcretize resolves the abstract specs into a fully pinned dependency
// graph.
func stageConcretize() domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageConcretize,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf("spack -e %s concretize --force", quote(TargetEnvDir)),
		},
	}
}

// stageInstall builds and installs the concretized graph. On failure the
// view directory contents and the installed package list are dumped first:
// partial state must stay inspectable, not be discarded silently.
func stageInstall(desc *domain.EnvironmentDescriptor) domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageInstall,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf(`if ! spack -e %s install --fail-fast; then
  echo "ERROR: package installation failed, dumping partial state" >&2
  ls -la %s >&2 || true
  spack -e %s find >&2 || true
  exit 1
fi`, quote(TargetEnvDir), quote(desc.View.Root), quote(TargetEnvDir)),
		},
	}
}

// stageGenerateModules regenerates the module tree from scratch. Delete then
// regenerate, never incremental: stale module files from earlier runs would
// survive a refresh. Only target-application modules are copied out.
func stageGenerateModules() domain.BuildStage {
	return domain.BuildStage{
		Name:        domain.StageGenerateModules,
		FailureMode: domain.FailAbort,
		Commands: []string{
			fmt.Sprintf("spack -e %s module lmod refresh --delete-tree -y", quote(TargetEnvDir)),
			fmt.Sprintf("mkdir -p %s", quote(ModulesOutDir)),
			fmt.Sprintf(`find "$(spack location -r)/share/spack/lmod" -type f -path %s -exec cp -v {} %s/ \;`,
				quote("*/"+domain.TargetPackage+"/*"), quote(ModulesOutDir)),
		},
	}
}

// requiredRuntimeLibs must be present in the assembled view; their absence
// is fatal. optionalRuntimeLibs vary with the build configuration and only
// warn when missing.
var (
	requiredRuntimeLibs = []string{"libslurm.so", "libmunge.so.2"}
	optionalRuntimeLibs = []string{"libjwt.so", "libldap.so.2"}
)

// stageVerifyRuntimeView checks the assembled view. The view directory's
// existence is mandatory; its absence aborts with a full diagnostic dump of
// the working directory, environment status and raw descriptor text.
func stageVerifyRuntimeView(desc *domain.EnvironmentDescriptor) domain.BuildStage {
	commands := []string{
		fmt.Sprintf(`if [ ! -d %s ]; then
  echo %s >&2
  pwd >&2
  ls -la "$(dirname %s)" >&2 || true
  spack -e %s env status >&2 || true
  cat %s/spack.yaml >&2 || true
  exit 1
fi`,
			quote(desc.View.Root),
			quote(fmt.Sprintf("ERROR: runtime view %s was not created", desc.View.Root)),
			quote(desc.View.Root),
			quote(TargetEnvDir),
			quote(TargetEnvDir)),
	}

	for _, lib := range requiredRuntimeLibs {
		commands = append(commands, fmt.Sprintf(
			"find %s -name %s | grep -q . || { echo %s >&2; exit 1; }",
			quote(desc.View.Root), quote(lib+"*"),
			quote(fmt.Sprintf("ERROR: required runtime library %s missing from view", lib))))
	}
	for _, lib := range optionalRuntimeLibs {
		commands = append(commands, fmt.Sprintf(
			"find %s -name %s | grep -q . || echo %s >&2",
			quote(desc.View.Root), quote(lib+"*"),
			quote(fmt.Sprintf("WARNING: optional runtime library %s missing from view", lib))))
	}

	return domain.BuildStage{
		Name:        domain.StageVerifyRuntimeView,
		FailureMode: domain.FailAbort,
		Commands:    commands,
	}
}

// stageAssembleTarball strips build-only artifacts from the view, copies in
// the pre-positioned assets and the default-version marker, and produces the
// final archive. In GPU mode the management libraries are copied in by hand:
// they are deliberately excluded from the generic projection.
func stageAssembleTarball(req domain.BuildRequest, desc *domain.EnvironmentDescriptor) domain.BuildStage {
	tarball := fmt.Sprintf("%s-%s-%s-%s-software.tar.gz",
		domain.TargetPackage, req.TargetVersion, domain.CompilerPackage, req.ToolchainVersion)

	commands := []string{
		fmt.Sprintf("rm -rf %s/include %s/share/doc %s/share/man",
			quote(desc.View.Root), quote(desc.View.Root), quote(desc.View.Root)),
		fmt.Sprintf(`find %s -name '*.a' -type f -delete`, quote(desc.View.Root)),
		fmt.Sprintf(`find %s -name __pycache__ -type d -prune -exec rm -rf {} +`, quote(desc.View.Root)),
		fmt.Sprintf("cp -r %s/. %s/", quote(AssetsDir), quote(desc.View.Root)),
		fmt.Sprintf("printf '%%s\\n' %s > %s/.version", quote(req.TargetVersion), quote(desc.View.Root)),
	}

	if req.GPU {
		commands = append(commands,
			fmt.Sprintf(`mkdir -p %s/lib && find "$(spack -e %s location -i %s)" -name 'libnvidia-ml.so*' -exec cp -v {} %s/lib/ \;`,
				quote(desc.View.Root), quote(TargetEnvDir), quote(domain.GPUPackage), quote(desc.View.Root)))
	}

	commands = append(commands, fmt.Sprintf("tar -C %s -czf %s/%s %s %s",
		quote(OutputDir), quote(OutputDir), quote(tarball),
		quote(relPath(desc.View.Root)), quote(relPath(ModulesOutDir))))

	return domain.BuildStage{
		Name:        domain.StageAssembleTarball,
		FailureMode: domain.FailAbort,
		Commands:    commands,
	}
}

// relPath strips the output directory prefix so tar archives relative paths.
func relPath(p string) string {
	if len(p) > len(OutputDir)+1 && p[:len(OutputDir)+1] == OutputDir+"/" {
		return p[len(OutputDir)+1:]
	}
	return p
}
