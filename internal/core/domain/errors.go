package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedTarget is returned when a build request names a target
	// version outside the supported set.
	ErrUnsupportedTarget = zerr.New("unsupported target version")

	// ErrUnsupportedToolchain is returned when a build request names a
	// toolchain version that is not in the registry.
	ErrUnsupportedToolchain = zerr.New("unsupported toolchain version")

	// ErrDescriptorInvariant is returned when a synthesized descriptor
	// violates a cross-artifact consistency invariant. This indicates a
	// defect in the synthesizer itself, not bad user input.
	ErrDescriptorInvariant = zerr.New("environment descriptor violates a consistency invariant")

	// ErrStageOrder is returned when generated build stages are out of the
	// required order. Like ErrDescriptorInvariant this is an internal defect.
	ErrStageOrder = zerr.New("build stages violate the required stage order")

	// ErrMissingExternal is returned for a package marked non-buildable
	// without at least one external location.
	ErrMissingExternal = zerr.New("non-buildable package declares no external location")

	// ErrScriptSyntax is returned when a rendered build script does not
	// parse as valid shell.
	ErrScriptSyntax = zerr.New("rendered build script is not valid shell")

	// ErrDescriptorRenderFailed is returned when the descriptor cannot be
	// serialized to its textual form.
	ErrDescriptorRenderFailed = zerr.New("failed to render environment descriptor")

	// ErrAssetWalkFailed is returned when the asset tree cannot be read.
	ErrAssetWalkFailed = zerr.New("failed to walk asset tree")

	// ErrAssetReadFailed is returned when an asset file cannot be read.
	ErrAssetReadFailed = zerr.New("failed to read asset file")

	// ErrOutputWriteFailed is returned when a generated artifact cannot be
	// written to the output directory.
	ErrOutputWriteFailed = zerr.New("failed to write output artifact")
)
