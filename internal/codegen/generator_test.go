package codegen

import (
	"strings"
	"testing"

	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/semantic"
)

func TestGenerateMissingMainFails(t *testing.T) {
	program := ast.Func(1, ast.Void, "notMain", nil, ast.CompoundOf(1, nil, nil))
	a, _ := semantic.Analyze(program)
	if a.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %s", a.Reporter.Format())
	}

	gen := NewGenerator(a.Root)
	if gen.Generate(program) {
		t.Fatalf("Generate must fail when no main function is declared")
	}
}

func TestGenerateDemoProgramProducesInstructions(t *testing.T) {
	program := ast.Demo()
	a, _ := semantic.Analyze(program)
	if a.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %s", a.Reporter.Format())
	}

	gen := NewGenerator(a.Root)
	if !gen.Generate(program) {
		t.Fatalf("Generate should succeed for a program with main")
	}

	listing := gen.Emit.String()
	if listing == "" {
		t.Fatalf("expected a non-empty instruction listing")
	}
	if !strings.Contains(listing, "HALT") {
		t.Fatalf("expected the listing to end with a HALT instruction:\n%s", listing)
	}
	if !strings.HasSuffix(strings.TrimRight(listing, "\n"), "HALT zero,zero,zero\t* halt") {
		t.Fatalf("expected HALT to be the final emitted instruction:\n%s", listing)
	}
}

func TestGenerateSimpleReturningFunction(t *testing.T) {
	body := ast.CompoundOf(1, nil, ast.ReturnExpr(2, ast.NewConst(2, 42)))
	program := ast.Func(1, ast.Integer, "main", nil, body)

	a, _ := semantic.Analyze(program)
	gen := NewGenerator(a.Root)
	if !gen.Generate(program) {
		t.Fatalf("Generate should succeed")
	}
	if len(gen.Emit.Code()) == 0 {
		t.Fatalf("expected emitted instructions")
	}
}

// TestGenerateNestedFunctionsResolveCorrectScopes guards the scope-replay
// bug class this generator is most fragile to: two functions, each with its
// own local and its own nested while loop, must each resolve identifier
// references against their OWN scope, not a sibling function's or a
// mismatched nested block's. A Generator out of lockstep with
// semantic.Analyzer's scope.Order numbering would silently drop the load
// for one of "x"/"y" (Lookup returns nil, genId emits nothing) without
// Generate itself failing.
func TestGenerateNestedFunctionsResolveCorrectScopes(t *testing.T) {
	f1Body := ast.CompoundOf(1,
		ast.Var(1, ast.Integer, "x"),
		ast.Append(
			ast.Assign(2, ast.IdUse(2, "x"), ast.NewConst(2, 1)),
			ast.Append(
				ast.While(3,
					ast.BinOp(3, "<", ast.IdUse(3, "x"), ast.NewConst(3, 5)),
					ast.CompoundOf(3, nil, ast.Assign(3, ast.IdUse(3, "x"), ast.BinOp(3, "+", ast.IdUse(3, "x"), ast.NewConst(3, 1)))),
				),
				ast.ReturnExpr(4, ast.IdUse(4, "x")),
			),
		),
	)
	f2Body := ast.CompoundOf(5,
		ast.Var(5, ast.Integer, "y"),
		ast.Append(
			ast.Assign(6, ast.IdUse(6, "y"), ast.NewConst(6, 2)),
			ast.Append(
				ast.While(7,
					ast.BinOp(7, "<", ast.IdUse(7, "y"), ast.NewConst(7, 9)),
					ast.CompoundOf(7, nil, ast.Assign(7, ast.IdUse(7, "y"), ast.BinOp(7, "+", ast.IdUse(7, "y"), ast.NewConst(7, 1)))),
				),
				ast.ReturnExpr(8, ast.IdUse(8, "y")),
			),
		),
	)

	program := ast.Append(
		ast.Func(1, ast.Integer, "f1", nil, f1Body),
		ast.Append(
			ast.Func(5, ast.Integer, "f2", nil, f2Body),
			ast.Func(9, ast.Void, "main", nil, ast.CompoundOf(9, nil, ast.ReturnVoid(9))),
		),
	)

	a, _ := semantic.Analyze(program)
	if a.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %s", a.Reporter.Format())
	}

	gen := NewGenerator(a.Root)
	if !gen.Generate(program) {
		t.Fatalf("Generate should succeed")
	}

	listing := gen.Emit.String()
	if strings.Count(listing, "load scalar") != 6 {
		t.Fatalf("expected 6 scalar loads (3 uses of x, 3 of y), got listing:\n%s", listing)
	}
}

func TestAllocateVariableGivesArraysTheirFullSize(t *testing.T) {
	program := ast.Append(
		ast.Array(1, ast.Integer, "a", 5),
		ast.Func(2, ast.Void, "main", nil, ast.CompoundOf(2, nil, nil)),
	)
	a, _ := semantic.Analyze(program)

	gen := NewGenerator(a.Root)
	gen.Generate(program)

	bucket := a.Root.LookupLocal("a")
	if bucket == nil {
		t.Fatalf("expected a to be declared")
	}
	if gen.globalOffset < 5 {
		t.Fatalf("a 5-element array must consume 5 slots of globalOffset, got %d", gen.globalOffset)
	}
}
