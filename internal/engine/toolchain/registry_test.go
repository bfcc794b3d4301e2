package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/toolchain"
)

func TestRegistry_Lookup(t *testing.T) {
	registry := toolchain.New()

	tests := []struct {
		name      string
		version   string
		wantGlibc string
		wantErr   bool
	}{
		{name: "newest toolchain", version: "13.4.0", wantGlibc: "2.34"},
		{name: "oldest toolchain", version: "4.8.5", wantGlibc: "2.17"},
		{name: "el8 era", version: "8.5.0", wantGlibc: "2.28"},
		{name: "unknown version", version: "12.3.0", wantErr: true},
		{name: "empty version", version: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := registry.Lookup(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnsupportedToolchain)
				assert.Contains(t, err.Error(), tt.version)
				// The valid set must be enumerated in the message.
				assert.Contains(t, err.Error(), "13.4.0")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, spec.Version)
			assert.Equal(t, tt.wantGlibc, spec.MinGlibc)
			assert.NotEmpty(t, spec.Description)
		})
	}
}

func TestRegistry_All(t *testing.T) {
	all := toolchain.New().All()
	require.Len(t, all, 9)

	// Ascending numeric version order, not lexicographic: 4.x before 10.x.
	assert.Equal(t, "4.8.5", all[0].Version)
	assert.Equal(t, "10.5.0", all[6].Version)
	assert.Equal(t, "13.4.0", all[8].Version)
}

func TestRegistry_LookupDoesNotMutate(t *testing.T) {
	registry := toolchain.New()
	before := registry.All()
	_, _ = registry.Lookup("no-such-version")
	assert.Equal(t, before, registry.All())
}
