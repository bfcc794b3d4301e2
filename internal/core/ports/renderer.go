package ports

import "go.trai.ch/forge/internal/core/domain"

// DescriptorRenderer serializes a descriptor to its textual form, the
// structured document consumed by the package manager inside the container.
type DescriptorRenderer interface {
	RenderDescriptor(desc *domain.EnvironmentDescriptor) ([]byte, error)
}

// ScriptRenderer serializes a build script to shell text.
type ScriptRenderer interface {
	RenderScript(script *domain.BuildScript) ([]byte, error)

	// ValidateScript parses rendered shell text and fails with
	// domain.ErrScriptSyntax when it is not valid bash.
	ValidateScript(rendered []byte) error
}
