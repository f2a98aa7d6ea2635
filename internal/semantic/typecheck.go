package semantic

import (
	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/errors"
	"github.com/go-cminus/cminus/internal/symtab"
)

// TypeChecker re-enters the analyzer's scopes in creation order (spec.md
// §4.2, §4.4) and validates returns, assignments, and call sites. It shares
// the Analyzer's scope tree but keeps its own traversal state, exactly as
// spec.md §4.4 describes ("its own counter initialized to zero").
type TypeChecker struct {
	Root     *symtab.Scope
	Reporter *errors.Reporter

	current             *symtab.Scope
	scopeCounter        int
	functionScopeActive bool
	currentFunctionName string
}

// NewTypeChecker builds a checker over the scope tree an Analyzer produced,
// reporting into the same Reporter so diagnostics from both passes merge
// into one ordered error list.
func NewTypeChecker(root *symtab.Scope, reporter *errors.Reporter) *TypeChecker {
	return &TypeChecker{Root: root, Reporter: reporter, current: root}
}

// Check runs the second traversal over program.
func (c *TypeChecker) Check(program *ast.Node) {
	ast.Walk(program, c.pre, c.post)
}

func (c *TypeChecker) pre(n *ast.Node) {
	if n.Kind == ast.Declaration && n.SubKind == ast.IdDec && n.IsFunctionSite() {
		c.enterFunctionSite(n)
		return
	}
	if n.Kind == ast.Statement && n.SubKind == ast.Compound {
		c.enterCompound()
	}
}

func (c *TypeChecker) post(n *ast.Node) {
	switch {
	case n.Kind == ast.Statement && n.SubKind == ast.Compound:
		c.leaveCompound()
	case n.Kind == ast.Statement && n.SubKind == ast.Return:
		c.checkReturn(n)
	case n.Kind == ast.Expression && n.SubKind == ast.Op && n.Op == "=":
		c.checkAssignment(n)
	case n.Kind == ast.Expression && n.SubKind == ast.Id && n.Type != ast.NoType:
		c.checkCallIfCallSite(n)
	}
}

// enterFunctionSite replicates the scope re-entry the generator also
// performs: a function site counts as one scope-order step, consumed by
// the following Compound exactly like in the analyzer.
func (c *TypeChecker) enterFunctionSite(n *ast.Node) {
	c.scopeCounter++
	c.current = symtab.FindByOrder(c.Root, c.scopeCounter)
	c.functionScopeActive = true
	c.currentFunctionName = n.Name
}

func (c *TypeChecker) enterCompound() {
	if c.functionScopeActive {
		c.functionScopeActive = false
		return
	}
	c.scopeCounter++
	if found := symtab.FindByOrder(c.Root, c.scopeCounter); found != nil {
		c.current = found
	}
}

func (c *TypeChecker) leaveCompound() {
	if c.current != nil && c.current.Parent != nil {
		c.current = c.current.Parent
	}
}

// checkReturn implements spec.md §4.4: the enclosing function is looked up
// by name in the global scope (functions are always declared globally);
// its declared return type must match the return expression's type, Void
// when no expression is present.
func (c *TypeChecker) checkReturn(n *ast.Node) {
	r := ast.Void
	if n.Child[0] != nil {
		r = n.Child[0].Type
	}

	fn := c.Root.LookupLocal(c.currentFunctionName)
	if fn == nil || r != fn.Type {
		c.Reporter.Report(errors.ReturnTypeMismatch, n.Line)
	}
}

// checkAssignment implements spec.md §4.4's '=' rule. Whole-array
// assignment (both sides IntegerArray with no index) is rejected per the
// Open Question resolution recorded in DESIGN.md and SPEC_FULL.md §12.
// A bare array identifier keeps its array Type (only an indexed use
// becomes Integer), so two bare arrays of the same element type carry
// equal Types and would pass the plain equality check; whole-array
// assignment is therefore flagged explicitly below.
func (c *TypeChecker) checkAssignment(n *ast.Node) {
	left, right := n.Child[0], n.Child[1]
	if left == nil || right == nil {
		return
	}

	if isBareArray(left) && isBareArray(right) {
		c.Reporter.Report(errors.AssignmentMismatch, n.Line)
		return
	}

	if left.Type != right.Type {
		c.Reporter.Report(errors.AssignmentMismatch, n.Line)
		return
	}
	n.Type = left.Type
}

func isBareArray(n *ast.Node) bool {
	return n.Kind == ast.Expression && n.SubKind == ast.Id &&
		(n.Type == ast.IntegerArray || n.Type == ast.VoidArray) && n.Child[0] == nil
}

// checkCallIfCallSite validates arity and per-parameter types for user
// function calls (spec.md §4.4). Builtins (input/output) are arity/type
// checked the same way since they are ordinary buckets in the global
// scope with a Params chain.
func (c *TypeChecker) checkCallIfCallSite(n *ast.Node) {
	fn := c.current.Lookup(n.Name)
	if fn == nil || !fn.IsFunction {
		return
	}

	var args []*ast.Node
	for a := n.Child[0]; a != nil; a = a.Sibling {
		args = append(args, a)
	}

	if len(args) != len(fn.Params) {
		c.Reporter.Report(errors.InvalidFunctionCall, n.Line)
		return
	}
	for i, param := range fn.Params {
		if args[i].Type != param.Type {
			c.Reporter.Report(errors.InvalidFunctionCall, n.Line)
			return
		}
	}
}
