package ports

import "go.trai.ch/forge/internal/core/domain"

// ToolchainRegistry is the closed table of supported compiler toolchains.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type ToolchainRegistry interface {
	// Lookup returns the toolchain spec for the given version. Unknown
	// versions fail with domain.ErrUnsupportedToolchain; the error message
	// names the offending value and the supported set.
	Lookup(version string) (domain.ToolchainSpec, error)

	// All returns every registered toolchain in ascending version order.
	All() []domain.ToolchainSpec
}
