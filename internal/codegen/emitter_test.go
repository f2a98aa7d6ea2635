package codegen

import "testing"

func TestEmitRODoesNotAdvanceHighWaterMarkTwice(t *testing.T) {
	e := NewEmitter()
	e.EmitRO(Add, Ac, Ac1, Zero, "")
	e.EmitRO(Sub, Ac, Ac1, Zero, "")

	if e.EmitLoc != 2 {
		t.Fatalf("expected EmitLoc == 2 after two instructions, got %d", e.EmitLoc)
	}
	if len(e.Code()) != 2 {
		t.Fatalf("expected 2 instructions in the buffer, got %d", len(e.Code()))
	}
	if e.highWaterMark != 2 {
		t.Fatalf("expected highWaterMark == 2 after two instructions, got %d", e.highWaterMark)
	}
}

func TestEmitSkipReservesAndBackpatches(t *testing.T) {
	e := NewEmitter()
	gap := e.EmitSkip(2)
	e.EmitRO(Add, Ac, Ac1, Zero, "filler")

	if e.EmitLoc != 3 {
		t.Fatalf("expected EmitLoc == 3 after skipping 2 and emitting 1, got %d", e.EmitLoc)
	}

	e.EmitBackup(gap)
	e.EmitRO(Sub, Ac, Ac1, Zero, "patch 1")
	e.EmitRO(Sub, Ac1, Ac, Zero, "patch 2")
	e.EmitRestore()

	if e.EmitLoc != 3 {
		t.Fatalf("EmitRestore should return EmitLoc to the high-water mark, got %d", e.EmitLoc)
	}
	code := e.Code()
	if code[0].Op != Sub || code[1].Op != Sub {
		t.Fatalf("backpatched slots were not overwritten correctly: %+v", code[:2])
	}
	if code[2].Op != Add {
		t.Fatalf("the instruction emitted at the frontier before backpatching must survive, got %+v", code[2])
	}
}

func TestEmitRMAbsComputesPCRelativeDisplacement(t *testing.T) {
	e := NewEmitter()
	e.EmitSkip(5) // advance EmitLoc to 5 without touching the buffer contents
	e.EmitRMAbs(Lda, Ac, 10, "")

	inst := e.Code()[5]
	wantD := 10 - (5 + 1)
	if inst.D != wantD {
		t.Fatalf("expected displacement %d, got %d", wantD, inst.D)
	}
	if inst.S != Pc {
		t.Fatalf("EmitRMAbs must always address relative to pc, got base %v", inst.S)
	}
}

func TestEmitCommentOccupiesOneInstructionSlot(t *testing.T) {
	e := NewEmitter()
	e.EmitComment("a note")
	if e.EmitLoc != 1 {
		t.Fatalf("a comment still occupies one listing line, got EmitLoc=%d", e.EmitLoc)
	}
	if e.Code()[0].Form != FormComment {
		t.Fatalf("expected a FormComment instruction")
	}
}

func TestInstructionStringForms(t *testing.T) {
	ro := Instruction{Form: FormRO, Op: Add, R: Ac, S: Ac1, T: Zero}
	if got, want := ro.String(), "ADD ac,ac1,zero"; got != want {
		t.Fatalf("RO rendering: got %q want %q", got, want)
	}

	rm := Instruction{Form: FormRM, Op: Ld, R: Ac, D: -2, S: Fp}
	if got, want := rm.String(), "LD ac,-2(fp)"; got != want {
		t.Fatalf("RM rendering: got %q want %q", got, want)
	}

	c := Instruction{Form: FormComment, Comment: "hi"}
	if got, want := c.String(), "* hi"; got != want {
		t.Fatalf("comment rendering: got %q want %q", got, want)
	}
}
