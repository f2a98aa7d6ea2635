package semantic

import "github.com/go-cminus/cminus/internal/ast"

// Analyze runs both passes (spec.md §1: "two passes... analyzer must agree
// on traversal order") over program and returns the Analyzer and the
// TypeChecker, which both report into the Analyzer's Reporter. Code
// generation should only be attempted if the returned Analyzer's Reporter
// has no errors (spec.md §4.7, §7).
func Analyze(program *ast.Node) (*Analyzer, *TypeChecker) {
	a := NewAnalyzer()
	a.Analyze(program)

	tc := NewTypeChecker(a.Root, a.Reporter)
	tc.Check(program)

	return a, tc
}
