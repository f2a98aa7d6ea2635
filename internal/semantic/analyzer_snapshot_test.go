package semantic

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/go-cminus/cminus/internal/ast"
)

// TestAnalyzeDemoProgramSnapshot locks in the diagnostic-free result of
// running both passes over the sample program, the way the teacher
// compiler snapshots its fixture runs (internal/interp/fixture_test.go).
func TestAnalyzeDemoProgramSnapshot(t *testing.T) {
	program := ast.Demo()
	a, _ := Analyze(program)

	snaps.MatchSnapshot(t, "demo_diagnostics", a.Reporter.Format())
}

func TestAnalyzeBrokenProgramSnapshot(t *testing.T) {
	program := ast.Append(
		ast.Var(1, ast.Void, "v"),
		ast.Var(2, ast.Integer, "v"),
	)
	a, _ := Analyze(program)

	snaps.MatchSnapshot(t, "broken_diagnostics", a.Reporter.Format())
}
