package render_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/render"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/script"
)

func fixtureScript() *domain.BuildScript {
	return &domain.BuildScript{
		Stages: []domain.BuildStage{
			{
				Name:        "activate-environment",
				FailureMode: domain.FailAbort,
				Commands: []string{
					"cd /opt/slurm/env",
					"spack env status",
				},
			},
			{
				Name:        "hide-host-compiler",
				FailureMode: domain.FailWarnAndContinue,
				Commands: []string{
					"mv /usr/bin/gcc /usr/bin/gcc.hidden",
				},
			},
		},
	}
}

func TestRenderScript_Fixture(t *testing.T) {
	rendered, err := render.New().RenderScript(fixtureScript())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "script_fixture", rendered)
}

func TestRenderScript_Header(t *testing.T) {
	rendered, err := render.New().RenderScript(fixtureScript())
	require.NoError(t, err)

	text := string(rendered)
	assert.True(t, strings.HasPrefix(text, "#!/usr/bin/env bash\n"))
	assert.Contains(t, text, "set -euo pipefail\n")
}

func TestRenderScript_WarnModeWrapsEveryCommand(t *testing.T) {
	tolerant := &domain.BuildScript{
		Stages: []domain.BuildStage{
			{
				Name:        "cleanup",
				FailureMode: domain.FailWarnAndContinue,
				Commands: []string{
					"rm -f /tmp/a",
					"rm -f /tmp/b",
				},
			},
		},
	}

	rendered, err := render.New().RenderScript(tolerant)
	require.NoError(t, err)

	suffix := "|| echo 'WARNING: stage cleanup continued after failure' >&2"
	assert.Equal(t, 2, strings.Count(string(rendered), suffix))
}

func TestRenderScript_FullPipeline(t *testing.T) {
	req := domain.BuildRequest{
		TargetVersion:    "25.11",
		ToolchainVersion: "13.4.0",
		GPU:              true,
		ModuleHierarchy:  true,
	}
	desc := synthesize(t, req)
	generated, err := script.New().Generate(req, desc)
	require.NoError(t, err)

	rendered, err := render.New().RenderScript(generated)
	require.NoError(t, err)

	// Every stage banner appears, in canonical order.
	text := string(rendered)
	last := -1
	for _, name := range domain.StageOrder {
		idx := strings.Index(text, "# --- stage: "+name+" ---")
		require.NotEqual(t, -1, idx, "missing banner for stage %s", name)
		assert.Greater(t, idx, last, "stage %s banner out of order", name)
		last = idx
	}
}

func TestValidateScript(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{
			name:   "well formed",
			script: "#!/usr/bin/env bash\nset -euo pipefail\necho ok\n",
		},
		{
			name:    "unterminated quote",
			script:  "echo 'unterminated\n",
			wantErr: true,
		},
		{
			name:    "dangling redirect",
			script:  "cat <\n",
			wantErr: true,
		},
		{
			name:   "empty input",
			script: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := render.New().ValidateScript([]byte(tt.script))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrScriptSyntax)
				return
			}
			require.NoError(t, err)
		})
	}
}
