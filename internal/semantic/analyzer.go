// Package semantic implements the two traversals of spec.md §4.3/§4.4: the
// Analyzer builds the scope tree and symbol tables and annotates
// identifier uses with types; the TypeChecker (typecheck.go) re-enters the
// same scopes in the same order and validates returns, assignments, and
// call sites. Structuring — one file per concern, a single struct carrying
// all traversal state instead of package globals — follows the teacher
// compiler's internal/semantic/analyzer.go, generalized from DWScript's
// class/interface-aware analysis to this language's flat scalar/array
// model; the underlying scope-threading algorithm (order counters,
// function-site detection, the "compound that is a function body does not
// open its own scope" rule) is grounded on original_source/analyze.c's
// forwardProc/backtrackProc.
package semantic

import (
	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/errors"
	"github.com/go-cminus/cminus/internal/symtab"
)

// Analyzer threads the compilation context spec.md §9 calls for: the
// scope-order counter, the current scope, and the function-scope-active
// flag all live on this struct rather than as package-level globals.
type Analyzer struct {
	Root     *symtab.Scope
	Reporter *errors.Reporter

	current             *symtab.Scope
	nextOrder           int
	functionScopeActive bool
}

// NewAnalyzer creates the global scope, seeds the two builtin functions
// (spec.md §4.3), and returns an Analyzer ready to run Analyze.
func NewAnalyzer() *Analyzer {
	root := symtab.NewGlobal(0)
	a := &Analyzer{
		Root:      root,
		Reporter:  errors.NewReporter(),
		current:   root,
		nextOrder: 1,
	}
	a.registerBuiltins()
	return a
}

// registerBuiltins inserts `input` (Integer, no params) and `output` (Void,
// one Integer param named arg) into the global scope before traversal, per
// spec.md §4.3 and original_source/analyze.c's insertIONode.
func (a *Analyzer) registerBuiltins() {
	a.Root.Insert("input", 0, ast.Integer, true, true, false)

	output, _ := a.Root.Insert("output", 0, ast.Void, true, true, false)
	arg := &symtab.Bucket{Name: "arg", Type: ast.Integer, IsParam: true}
	output.AppendParam(arg)
}

// Analyze runs the pre/post-order traversal of spec.md §4.3 over the
// top-level declaration list rooted at program.
func (a *Analyzer) Analyze(program *ast.Node) {
	ast.Walk(program, a.pre, a.post)
}

func (a *Analyzer) pre(n *ast.Node) {
	switch n.Kind {
	case ast.Declaration:
		a.preDeclaration(n)
	case ast.Statement:
		if n.SubKind == ast.Compound {
			a.enterCompound(n)
		}
	case ast.Expression:
		a.preExpression(n)
	}
}

func (a *Analyzer) post(n *ast.Node) {
	if n.Kind == ast.Statement && n.SubKind == ast.Compound {
		a.leaveCompound()
	}
}

func (a *Analyzer) preDeclaration(n *ast.Node) {
	switch n.SubKind {
	case ast.IdDec:
		if n.IsFunctionSite() {
			a.enterFunctionSite(n)
			return
		}
		a.declareVariable(n)
	case ast.ParamDec:
		a.declareParam(n)
	case ast.SizeDec:
		// SizeDec carries no symbol of its own; codegen's allocateVariable
		// reads the array size from its IdDec's Child[0].
	}
}

// enterFunctionSite inserts the function bucket into the current scope,
// then creates and enters a child scope named after the function, setting
// functionScopeActive so the following Compound does not open a second
// scope for the body (spec.md §4.2).
func (a *Analyzer) enterFunctionSite(n *ast.Node) {
	_, ok := a.current.Insert(n.Name, n.Line, n.Type, true, a.current.Depth == 0, false)
	if !ok {
		a.Reporter.Report(errors.DuplicateDeclaration, n.Line, n.Name)
	}

	child := a.current.NewChild(n.Name, a.nextOrder)
	a.nextOrder++
	a.current = child
	a.functionScopeActive = true
}

func (a *Analyzer) declareVariable(n *ast.Node) {
	if n.Type == ast.Void || n.Type == ast.VoidArray {
		a.Reporter.Report(errors.VoidVariable, n.Line)
	}

	_, ok := a.current.Insert(n.Name, n.Line, n.Type, false, a.current.Depth == 0, false)
	if !ok {
		a.Reporter.Report(errors.DuplicateDeclaration, n.Line, n.Name)
	}
}

// declareParam inserts the parameter into the current (function-body)
// scope and appends it to the enclosing function's parameter chain, found
// by the current scope's FunctionName in the global scope.
func (a *Analyzer) declareParam(n *ast.Node) {
	bucket, ok := a.current.Insert(n.Name, n.Line, n.Type, false, false, true)
	if !ok {
		a.Reporter.Report(errors.DuplicateDeclaration, n.Line, n.Name)
		return
	}

	if fn := a.Root.LookupLocal(a.current.FunctionName); fn != nil {
		fn.AppendParam(bucket)
	}
}

// enterCompound implements spec.md §4.2: a Compound immediately following
// a function site consumes functionScopeActive instead of opening a new
// scope; any other Compound creates and enters a fresh nested scope.
func (a *Analyzer) enterCompound(n *ast.Node) {
	if a.functionScopeActive {
		a.functionScopeActive = false
		return
	}
	child := a.current.NewChild(a.current.FunctionName, a.nextOrder)
	a.nextOrder++
	a.current = child
}

func (a *Analyzer) leaveCompound() {
	if a.current.Parent != nil {
		a.current = a.current.Parent
	}
}

func (a *Analyzer) preExpression(n *ast.Node) {
	switch n.SubKind {
	case ast.Const:
		n.Type = ast.Integer
	case ast.Op:
		if n.Op != "=" {
			n.Type = ast.Integer
		}
	case ast.Id:
		a.resolveId(n)
	}
}

// resolveId implements spec.md §4.3's Id rule: look up the name in the
// current scope chain; report undeclared_function if this is a call site
// (n.Type was pre-set to Func by the parser) or undeclared_variable
// otherwise; on success, an indexed use of an IntegerArray has type
// Integer, everything else inherits the bucket's declared type.
func (a *Analyzer) resolveId(n *ast.Node) {
	wasCallSite := n.Type == ast.Func

	bucket := a.current.Lookup(n.Name)
	if bucket == nil {
		if wasCallSite {
			a.Reporter.Report(errors.UndeclaredFunction, n.Line, n.Name)
		} else {
			a.Reporter.Report(errors.UndeclaredVariable, n.Line, n.Name)
		}
		n.Type = ast.Integer // best-effort recovery type so traversal continues safely
		return
	}
	bucket.AddLine(n.Line)

	if bucket.Type == ast.IntegerArray && n.Child[0] != nil && !wasCallSite {
		n.Type = ast.Integer
	} else {
		n.Type = bucket.Type
	}
}
