package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/semantic"
)

// TestGenerateDemoProgramSnapshot locks in the deterministic instruction
// listing for the sample program, the way the teacher compiler snapshots
// its fixture output (internal/interp/fixture_test.go).
func TestGenerateDemoProgramSnapshot(t *testing.T) {
	program := ast.Demo()
	a, _ := semantic.Analyze(program)
	if a.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %s", a.Reporter.Format())
	}

	gen := NewGenerator(a.Root)
	if !gen.Generate(program) {
		t.Fatalf("Generate should succeed for the sample program")
	}

	snaps.MatchSnapshot(t, "demo_listing", gen.Emit.String())
}
