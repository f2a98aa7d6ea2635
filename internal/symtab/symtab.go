// Package symtab implements the per-scope hashed symbol tables and the
// scope tree that the semantic analyzer builds and the code generator
// replays (spec.md §3, §4.1). Layout and naming follow the teacher
// compiler's SymbolTable (github.com/cwbudde/go-dws's
// internal/semantic/symbol_table.go: parent-linked scopes, a Define-family
// of constructors per symbol kind) generalized to the chained hash table
// and order-indexed scope tree the original TINY-derived symtab.c uses,
// since this language's scope walker (spec.md §4.2) needs to re-locate
// scopes by creation order rather than by a single current-scope pointer.
package symtab

import "github.com/go-cminus/cminus/internal/ast"

// Size is the fixed prime modulus for the chained hash table, matching the
// original compiler's SIZE constant.
const Size = 211

// hash reproduces symtab.c's hash(): h <- ((h << 4) + byte) mod Size.
func hash(name string) int {
	h := 0
	for i := 0; i < len(name); i++ {
		h = ((h << 4) + int(name[i])) % Size
	}
	return h
}

// Bucket is a symbol record: one declared name within one scope.
type Bucket struct {
	Name       string
	Line       int
	Lines      []int // every line this symbol was referenced at (§11)
	IsFunction bool
	Type       ast.Type
	Params     []*Bucket // parameter chain, declaration order
	IsGlobal   bool
	IsParam    bool
	Location   int // assigned during code generation; 0 until then

	next *Bucket // hash-chain link
}

// AddLine records an additional reference line for this symbol, the way
// the original's LineList accumulates reference sites (§11); the bucket's
// own Line field stays the declaration line used for diagnostics.
func (b *Bucket) AddLine(line int) {
	b.Lines = append(b.Lines, line)
}

// AppendParam appends to the end of the function bucket's parameter chain,
// preserving declaration order (spec.md §4.1 append_param).
func (b *Bucket) AppendParam(param *Bucket) {
	b.Params = append(b.Params, param)
}

// Scope is one lexical region: a chained hash table of buckets plus the
// tree links (parent/first child/next sibling) and the monotonic Order
// that totally sorts all scopes by creation time (spec.md §3).
type Scope struct {
	table [Size]*Bucket

	FunctionName string
	Depth        int
	Order        int
	Visited      bool

	Parent      *Scope
	FirstChild  *Scope
	NextSibling *Scope
	lastChild   *Scope
}

// GlobalFunctionName is the sentinel function name for the global scope.
const GlobalFunctionName = ""

// NewGlobal creates the single depth-0 scope with no parent.
func NewGlobal(order int) *Scope {
	return &Scope{FunctionName: GlobalFunctionName, Depth: 0, Order: order}
}

// NewChild creates and links a new scope below parent, named after the
// enclosing function, at order seq.
func (s *Scope) NewChild(functionName string, seq int) *Scope {
	child := &Scope{
		FunctionName: functionName,
		Depth:        s.Depth + 1,
		Order:        seq,
		Parent:       s,
	}
	if s.lastChild == nil {
		s.FirstChild = child
	} else {
		s.lastChild.NextSibling = child
	}
	s.lastChild = child
	return child
}

// Insert hashes node.Name and prepends a fresh bucket to this scope's
// table, matching symtab.c's st_insert prepend-on-collision behavior. It
// reports ok=false without modifying the table if the name is already
// declared in this scope (duplicate declarations never search parents).
func (s *Scope) Insert(name string, line int, typ ast.Type, isFunction, isGlobal, isParam bool) (*Bucket, bool) {
	if s.LookupLocal(name) != nil {
		return nil, false
	}
	h := hash(name)
	b := &Bucket{
		Name:       name,
		Line:       line,
		IsFunction: isFunction,
		Type:       typ,
		IsGlobal:   isGlobal,
		IsParam:    isParam,
		next:       s.table[h],
	}
	s.table[h] = b
	return b, true
}

// LookupLocal searches only this scope's hash table.
func (s *Scope) LookupLocal(name string) *Bucket {
	for b := s.table[hash(name)]; b != nil; b = b.next {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Lookup searches this scope, then its parent chain up to global,
// returning the first match or nil (spec.md §4.1 lookup).
func (s *Scope) Lookup(name string) *Bucket {
	for scope := s; scope != nil; scope = scope.Parent {
		if b := scope.LookupLocal(name); b != nil {
			return b
		}
	}
	return nil
}

// FindByOrder performs the self/children-in-sibling-order/siblings DFS
// described in spec.md §4.1, returning the scope whose Order == n. This is
// the mechanism the code generator uses to re-enter the analyzer's scopes
// in creation order (spec.md §4.2).
func FindByOrder(root *Scope, n int) *Scope {
	for cur := root; cur != nil; cur = cur.NextSibling {
		if cur.Order == n {
			return cur
		}
		if found := FindByOrder(cur.FirstChild, n); found != nil {
			return found
		}
	}
	return nil
}

// Buckets returns every bucket declared in this scope, in chain order per
// hash slot (slot-index order, newest insertion first within a slot) —
// used by listing/debugging code, not by the analyzer or generator.
func (s *Scope) Buckets() []*Bucket {
	var out []*Bucket
	for _, head := range s.table {
		for b := head; b != nil; b = b.next {
			out = append(out, b)
		}
	}
	return out
}
