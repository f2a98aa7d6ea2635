// Package ast defines the tagged-variant tree node produced by the parser
// and consumed by the semantic analyzer and code generator.
//
// Unlike an interface-per-node-kind AST, every node here is the same struct:
// a Kind/SubKind pair, up to three ordered children, a sibling pointer that
// chains same-level declarations and statements into a list, and an
// attribute union (Name / Value / Op) whose active field depends on SubKind.
// This mirrors the tree the parser builds for the source language and keeps
// the two downstream passes (semantic.Analyzer, codegen.Generator) walking
// exactly one node shape.
package ast

import "fmt"

// Kind is the top-level tag of a Node.
type Kind int

const (
	Declaration Kind = iota
	Statement
	Expression
	Empty
)

func (k Kind) String() string {
	switch k {
	case Declaration:
		return "Declaration"
	case Statement:
		return "Statement"
	case Expression:
		return "Expression"
	case Empty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// SubKind further tags a Node within its Kind.
type SubKind int

const (
	// Declaration sub-kinds.
	IdDec SubKind = iota
	ParamDec
	SizeDec

	// Statement sub-kinds.
	Compound
	Selection
	Iteration
	Return

	// Expression sub-kinds.
	Op
	Const
	Id
)

func (sk SubKind) String() string {
	switch sk {
	case IdDec:
		return "IdDec"
	case ParamDec:
		return "ParamDec"
	case SizeDec:
		return "SizeDec"
	case Compound:
		return "Compound"
	case Selection:
		return "Selection"
	case Iteration:
		return "Iteration"
	case Return:
		return "Return"
	case Op:
		return "Op"
	case Const:
		return "Const"
	case Id:
		return "Id"
	default:
		return "Unknown"
	}
}

// Type is the slot every node carries, filled in by the semantic analyzer.
type Type int

const (
	NoType Type = iota
	Integer
	Void
	IntegerArray
	VoidArray
	Func
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Void:
		return "Void"
	case IntegerArray:
		return "IntegerArray"
	case VoidArray:
		return "VoidArray"
	case Func:
		return "Func"
	default:
		return "NoType"
	}
}

// MaxChildren bounds the fixed-arity children array, matching the source
// grammar's richest node shape (a Selection with condition/then/else).
const MaxChildren = 3

// Node is the single tagged-variant AST node type.
type Node struct {
	Child   [MaxChildren]*Node
	Sibling *Node

	Kind    Kind
	SubKind SubKind
	Type    Type
	Line    int

	// Attribute union; which field is meaningful depends on SubKind.
	Name  string // IdDec, ParamDec, Id
	Value int    // Const, SizeDec
	Op    string // Op: one of = + - * / == != < <= > >=
}

// New allocates a bare node with the given tag and line.
func New(kind Kind, sub SubKind, line int) *Node {
	return &Node{Kind: kind, SubKind: sub, Line: line}
}

// NewDeclaration is a convenience constructor for declaration nodes.
func NewDeclaration(sub SubKind, line int, name string) *Node {
	n := New(Declaration, sub, line)
	n.Name = name
	return n
}

// NewStatement is a convenience constructor for statement nodes.
func NewStatement(sub SubKind, line int) *Node {
	return New(Statement, sub, line)
}

// NewOp builds an Op expression node.
func NewOp(line int, op string) *Node {
	n := New(Expression, Op, line)
	n.Op = op
	return n
}

// NewConst builds a Const expression node.
func NewConst(line int, value int) *Node {
	n := New(Expression, Const, line)
	n.Value = value
	return n
}

// NewId builds an Id expression node. callSite marks the identifier as a
// pre-resolved call site (the parser sets Type to Func for these so the
// analyzer can distinguish "undeclared function" from "undeclared variable").
func NewId(line int, name string, callSite bool) *Node {
	n := New(Expression, Id, line)
	n.Name = name
	if callSite {
		n.Type = Func
	}
	return n
}

// NewEmpty builds the Empty placeholder node used for absent else-branches
// and absent return expressions.
func NewEmpty(line int) *Node {
	return New(Empty, 0, line)
}

// IsFunctionSite reports whether an IdDec is a function definition: an
// IdDec whose second child is present and is itself a statement (its body).
func (n *Node) IsFunctionSite() bool {
	if n == nil || n.Kind != Declaration || n.SubKind != IdDec {
		return false
	}
	body := n.Child[1]
	return body != nil && body.Kind == Statement
}

// Append walks n's sibling chain to its end and attaches next, returning n
// (or next, if n is nil) so callers can build lists head-first.
func Append(n, next *Node) *Node {
	if n == nil {
		return next
	}
	cur := n
	for cur.Sibling != nil {
		cur = cur.Sibling
	}
	cur.Sibling = next
	return n
}

// Walk applies pre in pre-order and post in post-order across n's subtree
// and its sibling chain, in the fixed order both compiler passes depend on:
// self, then children left to right, then siblings. Either hook may be nil.
func Walk(n *Node, pre, post func(*Node)) {
	for cur := n; cur != nil; cur = cur.Sibling {
		if pre != nil {
			pre(cur)
		}
		for _, child := range cur.Child {
			Walk(child, pre, post)
		}
		if post != nil {
			post(cur)
		}
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Declaration:
		switch n.SubKind {
		case IdDec:
			return fmt.Sprintf("IdDec(%s: %s)", n.Name, n.Type)
		case ParamDec:
			return fmt.Sprintf("ParamDec(%s: %s)", n.Name, n.Type)
		case SizeDec:
			return fmt.Sprintf("SizeDec(%d)", n.Value)
		}
	case Statement:
		return fmt.Sprintf("%s", n.SubKind)
	case Expression:
		switch n.SubKind {
		case Op:
			return fmt.Sprintf("Op(%s)", n.Op)
		case Const:
			return fmt.Sprintf("Const(%d)", n.Value)
		case Id:
			return fmt.Sprintf("Id(%s: %s)", n.Name, n.Type)
		}
	case Empty:
		return "Empty"
	}
	return "?"
}
