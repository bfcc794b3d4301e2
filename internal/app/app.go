// Package app implements the application layer for forge.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/ui/output"
	"go.trai.ch/forge/internal/ui/style"
	"go.trai.ch/zerr"
)

// Artifact file names written by Synth.
const (
	DescriptorFileName = "spack.yaml"
	ScriptFileName     = "build-stages.sh"
	AssetsFileName     = "embed-assets.sh"
)

// App represents the main application logic.
type App struct {
	registry       ports.ToolchainRegistry
	synthesizer    ports.Synthesizer
	generator      ports.ScriptGenerator
	embedder       ports.AssetEmbedder
	descRenderer   ports.DescriptorRenderer
	scriptRenderer ports.ScriptRenderer
	logger         ports.Logger
}

// New creates a new App instance.
func New(
	registry ports.ToolchainRegistry,
	synthesizer ports.Synthesizer,
	generator ports.ScriptGenerator,
	embedder ports.AssetEmbedder,
	descRenderer ports.DescriptorRenderer,
	scriptRenderer ports.ScriptRenderer,
	log ports.Logger,
) *App {
	return &App{
		registry:       registry,
		synthesizer:    synthesizer,
		generator:      generator,
		embedder:       embedder,
		descRenderer:   descRenderer,
		scriptRenderer: scriptRenderer,
		logger:         log,
	}
}

// SynthOptions configuration for the Synth method.
type SynthOptions struct {
	Target    string
	Toolchain string
	GPU       bool
	Hierarchy bool
	Verify    bool

	// OutputDir receives the artifact files. Empty means write both
	// artifacts to Stdout separated by a marker comment.
	OutputDir string

	// AssetsDir, when set, is walked and converted into the asset
	// embedding command stream.
	AssetsDir string

	// Stdout is the destination used when OutputDir is empty.
	Stdout io.Writer
}

// Synth runs the full synthesis pipeline: request validation, descriptor
// synthesis, script generation, rendering and output.
func (a *App) Synth(ctx context.Context, opts SynthOptions) error {
	setupOTel()
	tracer := otel.Tracer("forge")

	ctx, span := tracer.Start(ctx, "synth")
	defer span.End()

	req := domain.BuildRequest{
		TargetVersion:    opts.Target,
		ToolchainVersion: opts.Toolchain,
		GPU:              opts.GPU,
		ModuleHierarchy:  opts.Hierarchy,
		Verify:           opts.Verify,
	}

	a.logger.InfoWith("synthesizing build configuration",
		"request", domain.RequestDigest(req),
		"target", req.TargetVersion,
		"toolchain", req.ToolchainVersion,
	)

	desc, err := a.traceSynthesize(ctx, tracer, req)
	if err != nil {
		return err
	}

	script, err := a.traceGenerate(ctx, tracer, req, desc)
	if err != nil {
		return err
	}

	_, renderSpan := tracer.Start(ctx, "render")
	descText, err := a.descRenderer.RenderDescriptor(desc)
	if err != nil {
		renderSpan.End()
		return err
	}
	scriptText, err := a.scriptRenderer.RenderScript(script)
	if err != nil {
		renderSpan.End()
		return err
	}
	renderSpan.End()

	var assetText []byte
	if opts.AssetsDir != "" {
		commands, err := a.embedder.Embed(opts.AssetsDir)
		if err != nil {
			return err
		}
		assetText = []byte("#!/usr/bin/env bash\nset -euo pipefail\n" + strings.Join(commands, "\n") + "\n")
	}

	return a.write(opts, descText, scriptText, assetText)
}

func (a *App) traceSynthesize(ctx context.Context, tracer trace.Tracer, req domain.BuildRequest) (*domain.EnvironmentDescriptor, error) {
	_, span := tracer.Start(ctx, "synthesize")
	defer span.End()

	desc, err := a.synthesizer.Synthesize(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return desc, nil
}

func (a *App) traceGenerate(ctx context.Context, tracer trace.Tracer, req domain.BuildRequest, desc *domain.EnvironmentDescriptor) (*domain.BuildScript, error) {
	_, span := tracer.Start(ctx, "generate-script")
	defer span.End()

	script, err := a.generator.Generate(req, desc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return script, nil
}

// write delivers the rendered artifacts to the output directory, or to
// stdout with marker comments when no directory was requested.
func (a *App) write(opts SynthOptions, descText, scriptText, assetText []byte) error {
	if opts.OutputDir == "" {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		for _, part := range [][]byte{descText, scriptText, assetText} {
			if part == nil {
				continue
			}
			if _, err := out.Write(part); err != nil {
				return zerr.Wrap(domain.ErrOutputWriteFailed, err.Error())
			}
		}
		return nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
		return zerr.Wrap(domain.ErrOutputWriteFailed, err.Error())
	}

	files := map[string][]byte{
		DescriptorFileName: descText,
		ScriptFileName:     scriptText,
	}
	if assetText != nil {
		files[AssetsFileName] = assetText
	}

	for name, content := range files {
		path := filepath.Join(opts.OutputDir, name)
		if err := os.WriteFile(path, content, 0o640); err != nil {
			return zerr.Wrap(domain.ErrOutputWriteFailed, path+": "+err.Error())
		}
		a.logger.InfoWith("wrote artifact", "path", path)
	}
	return nil
}

// Toolchains writes the registry listing with compatibility notes.
func (a *App) Toolchains(_ context.Context, w io.Writer) error {
	out := output.New(w)

	for _, tc := range a.registry.All() {
		line := fmt.Sprintf("%s  glibc >= %s  %s",
			style.VersionStyle.Render(fmt.Sprintf("%-8s", tc.Version)),
			tc.MinGlibc,
			style.NoteStyle.Render(tc.Description),
		)
		if _, err := out.WriteString(line + "\n"); err != nil {
			return zerr.Wrap(domain.ErrOutputWriteFailed, err.Error())
		}
	}
	return nil
}

// setupOTel installs a no-export TracerProvider so spans are cheap and local
// unless an exporter is configured by the environment.
func setupOTel() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
}
