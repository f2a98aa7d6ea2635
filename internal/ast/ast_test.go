package ast

import "testing"

func TestAppendChainsInOrder(t *testing.T) {
	a := NewConst(1, 1)
	b := NewConst(2, 2)
	c := NewConst(3, 3)

	head := Append(Append(a, b), c)
	if head != a {
		t.Fatalf("Append should return the original head, got %v", head)
	}

	var names []int
	for n := head; n != nil; n = n.Sibling {
		names = append(names, n.Value)
	}
	if len(names) != 3 || names[0] != 1 || names[1] != 2 || names[2] != 3 {
		t.Fatalf("unexpected sibling chain: %v", names)
	}
}

func TestAppendToNilReturnsNext(t *testing.T) {
	next := NewConst(1, 1)
	if Append(nil, next) != next {
		t.Fatalf("Append(nil, next) should return next")
	}
}

func TestIsFunctionSite(t *testing.T) {
	body := NewStatement(Compound, 1)
	fn := NewDeclaration(IdDec, 1, "f")
	fn.Child[1] = body
	if !fn.IsFunctionSite() {
		t.Fatalf("expected IdDec with a Compound second child to be a function site")
	}

	variable := NewDeclaration(IdDec, 1, "v")
	if variable.IsFunctionSite() {
		t.Fatalf("plain variable IdDec must not be a function site")
	}
}

func TestWalkVisitsSelfChildrenThenSiblings(t *testing.T) {
	leaf1 := NewConst(1, 1)
	leaf2 := NewConst(2, 2)
	op := NewOp(3, "+")
	op.Child[0] = leaf1
	op.Child[1] = leaf2

	sibling := NewConst(4, 4)
	op.Sibling = sibling

	var visited []int
	Walk(op, func(n *Node) {
		if n.SubKind == Const {
			visited = append(visited, n.Value)
		}
	}, nil)

	if len(visited) != 3 || visited[0] != 1 || visited[1] != 2 || visited[2] != 4 {
		t.Fatalf("unexpected visit order: %v", visited)
	}
}

func TestNewIdCallSiteMarksFuncType(t *testing.T) {
	call := NewId(1, "f", true)
	if call.Type != Func {
		t.Fatalf("call-site Id should be pre-marked Func, got %v", call.Type)
	}

	use := NewId(1, "x", false)
	if use.Type == Func {
		t.Fatalf("non-call-site Id must not be pre-marked Func")
	}
}
