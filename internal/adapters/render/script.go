package render

import (
	"bytes"
	"fmt"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/syntax"
)

// scriptHeader precedes the first stage. Every stage aborts the whole
// script on failure unless its commands tolerate it explicitly.
const scriptHeader = `#!/usr/bin/env bash
# Generated build stage sequence. Do not edit by hand.
set -euo pipefail
`

// RenderScript serializes the stage sequence to shell text. Each stage gets
// a banner so container build logs attribute failures to the right stage.
func (r *Renderer) RenderScript(script *domain.BuildScript) ([]byte, error) {
	var b strings.Builder
	b.WriteString(scriptHeader)

	for _, stage := range script.Stages {
		b.WriteString("\n")
		fmt.Fprintf(&b, "# --- stage: %s ---\n", stage.Name)
		fmt.Fprintf(&b, "echo '==> %s'\n", stage.Name)

		for _, cmd := range stage.Commands {
			if stage.FailureMode == domain.FailWarnAndContinue {
				fmt.Fprintf(&b, "%s || echo 'WARNING: stage %s continued after failure' >&2\n", cmd, stage.Name)
				continue
			}
			b.WriteString(cmd)
			b.WriteString("\n")
		}
	}

	rendered := []byte(b.String())
	if err := r.ValidateScript(rendered); err != nil {
		return nil, err
	}
	return rendered, nil
}

// ValidateScript parses rendered shell text as bash. Generation bugs that
// produce unparseable text must surface here, before the script is ever
// embedded into a container build.
func (r *Renderer) ValidateScript(rendered []byte) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(bytes.NewReader(rendered), "build-stages.sh"); err != nil {
		return zerr.Wrap(domain.ErrScriptSyntax, err.Error())
	}
	return nil
}
