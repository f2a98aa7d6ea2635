package codegen

import (
	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/symtab"
)

// Generator walks the annotated AST a second time, in the scope order the
// semantic.Analyzer created (spec.md §4.2), assigning storage locations
// and emitting instructions through an Emitter. The per-node emission
// rules below are a direct structural translation of
// original_source/cgen.c's genDeclare/genStmt/genExp, generalized only
// where the spec explicitly asks for a cleaner representation: Location is
// always a non-negative offset subtracted from gp or fp (the first global,
// and the first parameter or local of each function, get 0) and function
// entries are keyed by the function bucket itself rather than by a C-style
// array indexed by location (spec.md §9 Design Notes flags the original's
// signed-offset reuse as a wart to clean up).
type Generator struct {
	Emit *Emitter
	Root *symtab.Scope

	current             *symtab.Scope
	scopeCounter        int
	functionScopeActive bool

	globalOffset int
	localOffset  int

	functionEntry map[*symtab.Bucket]int
	mainEntry     int
	mainBucket    *symtab.Bucket
}

// NewGenerator builds a Generator over the scope tree a completed analysis
// produced.
func NewGenerator(root *symtab.Scope) *Generator {
	return &Generator{
		Emit:          NewEmitter(),
		Root:          root,
		current:       root,
		functionEntry: make(map[*symtab.Bucket]int),
	}
}

// Generate emits the full program: prelude, every top-level declaration,
// and the backpatched startup sequence (spec.md §4.6). If "main" cannot be
// resolved after the declarations have been emitted, it returns false,
// leaving the startup gap unpatched and emitting no HALT, implementing the §12/SPEC_FULL policy that a missing main is a
// hard error rather than a silently-empty program.
func (g *Generator) Generate(program *ast.Node) bool {
	g.emitPreludeHead()
	gapLoc := g.Emit.EmitSkip(6)

	for d := program; d != nil; d = d.Sibling {
		g.genDeclaration(d)
	}

	g.mainBucket = g.Root.LookupLocal("main")
	if g.mainBucket == nil {
		return false
	}
	g.mainEntry = g.functionEntry[g.mainBucket]

	haltLoc := g.Emit.highWaterMark
	g.Emit.EmitBackup(gapLoc)
	g.emitStartupGap(haltLoc)
	g.Emit.EmitRestore()
	g.Emit.EmitRO(Halt, Zero, Zero, Zero, "halt")

	return true
}

// emitPreludeHead emits the fixed setup that runs before the startup gap
// (spec.md §4.6 prelude step 1): constant <- 1, mp <- memory[0], clear
// memory[0], fp <- mp, gp <- mp.
func (g *Generator) emitPreludeHead() {
	g.Emit.EmitComment("Standard prelude.")
	g.Emit.EmitRMAbs(Lda, Constant, 1, "constant = 1")
	g.Emit.EmitRM(Ld, Mp, 0, Zero, "mp = memory[0] (top address)")
	g.Emit.EmitRM(St, Zero, 0, Zero, "clear memory[0]")
	g.Emit.EmitRO(Add, Fp, Mp, Zero, "fp = mp")
	g.Emit.EmitRO(Add, Gp, Mp, Zero, "gp = mp")
	g.Emit.EmitComment("Standard prelude ends.")
}

// emitStartupGap fills the six reserved slots (spec.md §4.6 prelude step
// 3): ac <- globalOffset; mp <- mp - ac; fp <- fp - ac; store the halt
// location (so a function epilogue's "pc <- mem[mp-1] + 1" lands exactly
// on HALT) at mem[mp-1]; jump to main's entry.
func (g *Generator) emitStartupGap(haltLoc int) {
	g.Emit.EmitRMAbs(Lda, Ac, g.globalOffset, "ac = globalOffset")
	g.Emit.EmitRO(Sub, Mp, Mp, Ac, "mp = mp - globalOffset")
	g.Emit.EmitRO(Sub, Fp, Fp, Ac, "fp = fp - globalOffset")
	g.Emit.EmitRMAbs(Lda, Ac1, haltLoc-1, "ac1 = halt location - 1")
	g.Emit.EmitRM(St, Ac1, -1, Mp, "mem[mp - 1] = halt location - 1")
	g.Emit.EmitRMAbs(Lda, Pc, g.mainEntry, "jump to main")
}

// ---------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------

func (g *Generator) genDeclaration(n *ast.Node) {
	switch n.SubKind {
	case ast.IdDec:
		if n.IsFunctionSite() {
			g.genFunction(n)
		} else {
			g.allocateVariable(n)
		}
	case ast.ParamDec:
		g.allocateParam(n)
	}
}

// allocateVariable assigns Location from the appropriate counter: arrays
// consume their declared size, scalars consume 1 (spec.md §4.6).
func (g *Generator) allocateVariable(n *ast.Node) {
	bucket := g.current.LookupLocal(n.Name)
	if bucket == nil {
		return
	}
	size := 1
	if n.Type == ast.IntegerArray || n.Type == ast.VoidArray {
		size = n.Child[0].Value
	}
	if bucket.IsGlobal {
		bucket.Location = g.globalOffset
		g.globalOffset += size
	} else {
		bucket.Location = g.localOffset
		g.localOffset += size
	}
}

func (g *Generator) allocateParam(n *ast.Node) {
	bucket := g.current.LookupLocal(n.Name)
	if bucket == nil {
		return
	}
	bucket.Location = g.localOffset
	g.localOffset++
}

// genFunction emits a function's prologue, parameters, body, and epilogue
// (spec.md §4.6 "Function definition").
func (g *Generator) genFunction(n *ast.Node) {
	bucket := g.current.LookupLocal(n.Name)
	if bucket == nil {
		return
	}
	bucket.Location = g.globalOffset
	g.globalOffset++

	g.functionEntry[bucket] = g.Emit.EmitLoc

	g.Emit.EmitComment("function " + n.Name)
	g.Emit.EmitRM(St, Fp, -2, Mp, "save caller's frame pointer")
	g.Emit.EmitRMAbs(Lda, Ac1, 3, "ac1 = 3")
	g.Emit.EmitRO(Sub, Fp, Mp, Ac1, "fp = mp - 3")
	g.Emit.EmitRO(Sub, Mp, Mp, Ac1, "mp = mp - 3")

	prevScope := g.current
	g.scopeCounter++ // the function's own scope consumes one order slot, same as semantic.Analyzer/TypeChecker
	g.current = findFunctionScope(g.current, n.Name)
	g.localOffset = 0
	g.functionScopeActive = true

	for p := n.Child[0]; p != nil; p = p.Sibling {
		g.genDeclaration(p)
	}

	g.genCompound(n.Child[1])

	g.Emit.EmitComment("return")
	g.Emit.EmitRMAbs(Lda, Ac1, 3, "ac1 = 3")
	g.Emit.EmitRO(Add, Mp, Fp, Ac1, "mp = fp + 3")
	g.Emit.EmitRM(Ld, Fp, 1, Fp, "restore caller's frame pointer")
	g.Emit.EmitRM(Ld, Ac1, -1, Mp, "ac1 = saved return address")
	g.Emit.EmitRO(Add, Pc, Ac1, Constant, "pc = return address + 1")
	g.Emit.EmitComment("function " + n.Name + " ends")

	g.current = prevScope
}

// findFunctionScope resolves the child scope the analyzer created for a
// function declared directly in parent: the child whose FunctionName
// equals name, mirroring original_source/cgen.c's genDeclare scanning
// currentTable->child's sibling chain for a matching functionName.
func findFunctionScope(parent *symtab.Scope, name string) *symtab.Scope {
	for s := parent.FirstChild; s != nil; s = s.NextSibling {
		if s.FunctionName == name {
			return s
		}
	}
	return parent
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (g *Generator) genCompound(n *ast.Node) {
	if n == nil {
		return
	}

	before := g.localOffset
	if g.functionScopeActive {
		g.functionScopeActive = false
		// A function body's frame also covers the parameters genFunction
		// allocated from localOffset 0 just before it.
		before = 0
	} else {
		g.scopeCounter++
		if found := symtab.FindByOrder(g.Root, g.scopeCounter); found != nil {
			g.current = found
		}
	}

	for d := n.Child[0]; d != nil; d = d.Sibling {
		g.genDeclaration(d)
	}

	// Only reserve stack space for THIS compound's own new locals (plus the
	// parameters, for a function body): the running counter (params,
	// enclosing locals) is never reset, so every
	// declared name keeps a unique fp-relative Location for the rest of
	// the function, the same way symtab.Scope.Order numbers never repeat.
	added := g.localOffset - before
	g.Emit.EmitRMAbs(Lda, Ac, added, "ac = locals size")
	g.Emit.EmitRO(Sub, Mp, Mp, Ac, "mp = mp - locals size")

	for s := n.Child[1]; s != nil; s = s.Sibling {
		g.genStatement(s)
	}

	g.Emit.EmitRMAbs(Lda, Ac1, added, "ac1 = locals size")
	g.Emit.EmitRO(Add, Mp, Mp, Ac1, "mp = mp + locals size")

	if g.current.Parent != nil {
		g.current = g.current.Parent
	}
}

func (g *Generator) genStatement(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Statement:
		switch n.SubKind {
		case ast.Compound:
			g.genCompound(n)
		case ast.Selection:
			g.genSelection(n)
		case ast.Iteration:
			g.genIteration(n)
		case ast.Return:
			g.genReturn(n)
		}
	case ast.Expression:
		g.genExpr(n)
	}
}

// genSelection implements the if/else scheme of spec.md §4.6 exactly as
// original_source/cgen.c's SelectionStmt case does.
func (g *Generator) genSelection(n *ast.Node) {
	g.genExpr(n.Child[0])

	firstLoc := g.Emit.EmitSkip(2)

	firstBlock := g.Emit.EmitLoc
	g.genStatement(n.Child[1])

	secondBlock := g.Emit.EmitLoc
	if n.Child[2] != nil && n.Child[2].Kind != ast.Empty {
		secondLoc := g.Emit.EmitSkip(1)
		secondBlock = g.Emit.EmitLoc

		g.genStatement(n.Child[2])
		currentLoc := g.Emit.EmitLoc

		g.Emit.EmitBackup(secondLoc)
		g.Emit.EmitRMAbs(Jeq, Zero, currentLoc, "jump past else")
	}

	g.Emit.EmitBackup(firstLoc)
	g.Emit.EmitRMAbs(Jeq, Ac, firstBlock, "if true, take then-branch")
	g.Emit.EmitRMAbs(Jne, Ac, secondBlock, "if false, skip then-branch")

	g.Emit.EmitRestore()
}

// genIteration implements the while scheme of spec.md §4.6.
func (g *Generator) genIteration(n *ast.Node) {
	firstBlock := g.Emit.EmitLoc

	g.genExpr(n.Child[0])

	firstLoc := g.Emit.EmitSkip(1)

	g.genStatement(n.Child[1])

	g.Emit.EmitRMAbs(Jeq, Zero, firstBlock, "loop back to condition")

	secondBlock := g.Emit.EmitLoc
	g.Emit.EmitBackup(firstLoc)
	g.Emit.EmitRMAbs(Jne, Ac, secondBlock, "exit loop when condition is false")

	g.Emit.EmitRestore()
}

func (g *Generator) genReturn(n *ast.Node) {
	if n.Child[0] != nil {
		g.genExpr(n.Child[0])
	}
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (g *Generator) genExpr(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.SubKind {
	case ast.Const:
		g.Emit.EmitRMAbs(Lda, Ac, n.Value, "load constant")
	case ast.Op:
		g.genOp(n)
	case ast.Id:
		g.genId(n)
	}
}

var relJump = map[string]Op{
	"!=": Jne,
	"<":  Jlt,
	">":  Jgt,
	"<=": Jle,
	">=": Jge,
}

func (g *Generator) genOp(n *ast.Node) {
	if n.Op == "=" {
		g.genAssign(n)
		return
	}

	g.genExpr(n.Child[1])
	g.Emit.EmitRM(St, Ac, -1, Mp, "push right operand")
	g.Emit.EmitRO(Sub, Mp, Mp, Constant, "mp--")

	g.genExpr(n.Child[0])
	g.Emit.EmitRO(Add, Mp, Mp, Constant, "mp++")
	g.Emit.EmitRM(Ld, Ac1, -1, Mp, "pop right operand into ac1")

	switch n.Op {
	case "+":
		g.Emit.EmitRO(Add, Ac, Ac, Ac1, "ac = ac + ac1")
	case "-":
		g.Emit.EmitRO(Sub, Ac, Ac, Ac1, "ac = ac - ac1")
	case "*":
		g.Emit.EmitRO(Mul, Ac, Ac, Ac1, "ac = ac * ac1")
	case "/":
		g.Emit.EmitRO(Div, Ac, Ac, Ac1, "ac = ac / ac1")
	case "==":
		g.Emit.EmitRO(Sub, Ac, Ac, Ac1, "ac == 0 iff equal")
	default:
		jump := relJump[n.Op]
		g.Emit.EmitRO(Sub, Ac, Ac, Ac1, "ac = ac - ac1")
		g.Emit.EmitRM(jump, Ac, 2, Pc, "jump if true")
		g.Emit.EmitRO(Add, Ac, Constant, Zero, "ac = 1 (false)")
		g.Emit.EmitRM(Jeq, Zero, 1, Pc, "unconditional jump")
		g.Emit.EmitRO(Add, Ac, Zero, Zero, "ac = 0 (true)")
	}
}

// genAssign implements spec.md §4.6 "Assignment". The right-hand value is
// always evaluated and pushed first; the left-hand storage address is then
// computed (possibly clobbering ac/ac1 for index arithmetic) before the
// pushed value is popped and stored, leaving it in ac as the expression's
// value.
func (g *Generator) genAssign(n *ast.Node) {
	left, right := n.Child[0], n.Child[1]

	g.genExpr(right)
	g.Emit.EmitRM(St, Ac, -1, Mp, "push rhs")
	g.Emit.EmitRO(Sub, Mp, Mp, Constant, "mp--")

	bucket := g.current.Lookup(left.Name)
	if bucket == nil {
		return
	}
	base := Gp
	if !bucket.IsGlobal {
		base = Fp
	}
	disp := -bucket.Location

	var storeReg, storeBase Register
	var storeDisp int

	switch {
	case bucket.Type != ast.IntegerArray && bucket.Type != ast.VoidArray:
		// Scalar: address is base - location directly.
		storeBase, storeDisp = base, disp

	case left.Child[0] == nil:
		// Bare array identifier assigned as a whole — the type checker
		// already rejected array = array, so this path is unreachable for
		// well-typed programs; left for defensive completeness only.
		storeBase, storeDisp = base, disp

	case bucket.IsParam:
		g.genExpr(left.Child[0]) // ac = index
		g.Emit.EmitRM(Ld, Ac1, disp, Fp, "load array reference into ac1")
		g.Emit.EmitRO(Sub, Ac1, Ac1, Ac, "ac1 = reference - index")
		storeBase, storeDisp = Ac1, 0

	default:
		g.genExpr(left.Child[0]) // ac = index
		g.Emit.EmitRO(Sub, Ac1, base, Ac, "ac1 = base - index")
		storeBase, storeDisp = Ac1, disp
	}

	g.Emit.EmitRO(Add, Mp, Mp, Constant, "mp++")
	storeReg = Ac
	g.Emit.EmitRM(Ld, storeReg, -1, Mp, "pop rhs into ac")

	g.Emit.EmitRM(St, storeReg, storeDisp, storeBase, "store assigned value")
}

// genId implements spec.md §4.6 "Identifier use". Which of the five cases
// applies is decided purely from the resolved bucket, since a call site
// and an indexed array use share the same AST shape (a value under
// Child[0]) and can only be told apart by symbol-table lookup.
func (g *Generator) genId(n *ast.Node) {
	bucket := g.current.Lookup(n.Name)
	if bucket == nil {
		return
	}

	if bucket.IsFunction {
		g.genCall(n, bucket)
		return
	}

	base := Gp
	if !bucket.IsGlobal {
		base = Fp
	}
	disp := -bucket.Location

	if bucket.Type != ast.IntegerArray && bucket.Type != ast.VoidArray {
		g.Emit.EmitRM(Ld, Ac, disp, base, "load scalar")
		return
	}

	if n.Child[0] == nil {
		// Bare array identifier: produce its base address (a reference).
		if bucket.IsParam {
			g.Emit.EmitRM(Ld, Ac, disp, Fp, "load array reference")
		} else {
			g.Emit.EmitRMAbs(Lda, Ac, -bucket.Location, "ac = -location")
			g.Emit.EmitRO(Add, Ac, base, Ac, "ac = base - location")
		}
		return
	}

	g.genExpr(n.Child[0]) // ac = index
	if bucket.IsParam {
		g.Emit.EmitRM(Ld, Ac1, disp, Fp, "load array reference into ac1")
		g.Emit.EmitRO(Sub, Ac1, Ac1, Ac, "ac1 = reference - index")
		g.Emit.EmitRM(Ld, Ac, 0, Ac1, "load array element")
	} else {
		g.Emit.EmitRO(Sub, Ac1, base, Ac, "ac1 = base - index")
		g.Emit.EmitRM(Ld, Ac, disp, Ac1, "load array element")
	}
}

// genCall implements spec.md §4.6's builtin and user-function call cases.
func (g *Generator) genCall(n *ast.Node, bucket *symtab.Bucket) {
	switch n.Name {
	case "input":
		g.Emit.EmitRO(In, Ac, Zero, Zero, "read integer")
		return
	case "output":
		g.genExpr(n.Child[0])
		g.Emit.EmitRO(Out, Ac, Zero, Zero, "write integer")
		return
	}

	offset := -3
	g.Emit.EmitComment("push arguments")
	for arg := n.Child[0]; arg != nil; arg = arg.Sibling {
		g.genExpr(arg)
		g.Emit.EmitRM(St, Ac, offset, Mp, "store argument")
		offset--
	}

	g.Emit.EmitRM(St, Pc, -1, Mp, "save return address")
	g.Emit.EmitRMAbs(Lda, Pc, g.functionEntry[bucket], "call "+n.Name)
}
