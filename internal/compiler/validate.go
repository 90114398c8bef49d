package compiler

import (
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/parse"
)

// Validate checks that the rendered program is a well-formed Mangle
// unit: it must parse, and pass semantic analysis with the vocabulary
// declarations prepended. The compiler never calls this implicitly;
// evaluating the output remains the downstream consumer's business.
func Validate(p *Program) error {
	unit, err := parse.Unit(strings.NewReader(p.RenderWithDecls()))
	if err != nil {
		return fmt.Errorf("mangle parse failed: %w", err)
	}
	if _, err := analysis.AnalyzeOneUnit(unit, nil); err != nil {
		return fmt.Errorf("mangle analysis failed: %w", err)
	}
	return nil
}
