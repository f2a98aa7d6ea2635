package codegen

// Emitter owns the growing instruction buffer and the forward-patch
// bookkeeping spec.md §4.5 describes: EmitLoc is the next instruction
// index, highWaterMark is the frontier so a skipped region can be
// revisited and backfilled without losing later emissions. Grounded on
// original_source/cgen.c's emitRO/emitRM/emitSkip/emitBackup/emitRestore,
// which this is a direct structural translation of.
type Emitter struct {
	code          []Instruction
	EmitLoc       int
	highWaterMark int
}

// NewEmitter returns an empty instruction buffer.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// write places inst at EmitLoc, growing the buffer if EmitLoc is at the
// frontier, or overwriting an already-reserved slot when backpatching.
func (e *Emitter) write(inst Instruction) {
	if e.EmitLoc < len(e.code) {
		e.code[e.EmitLoc] = inst
	} else {
		for len(e.code) < e.EmitLoc {
			e.code = append(e.code, Instruction{Form: FormComment, Comment: "(reserved)"})
		}
		e.code = append(e.code, inst)
	}
	e.EmitLoc++
	if e.EmitLoc > e.highWaterMark {
		e.highWaterMark = e.EmitLoc
	}
}

// EmitRO emits a three-register instruction.
func (e *Emitter) EmitRO(op Op, r, s, t Register, comment string) {
	e.write(Instruction{Form: FormRO, Op: op, R: r, S: s, T: t, Comment: comment})
}

// EmitRM emits a register-memory instruction with an explicit displacement.
func (e *Emitter) EmitRM(op Op, r Register, d int, s Register, comment string) {
	e.write(Instruction{Form: FormRM, Op: op, R: r, D: d, S: s, Comment: comment})
}

// EmitRMAbs computes a PC-relative displacement (abs - (EmitLoc + 1)) and
// emits it, per spec.md §4.5.
func (e *Emitter) EmitRMAbs(op Op, r Register, abs int, comment string) {
	d := abs - (e.EmitLoc + 1)
	e.EmitRM(op, r, d, Pc, comment)
}

// EmitSkip reserves n instruction slots, returning the location of the
// first one so the caller can come back and backpatch it later.
func (e *Emitter) EmitSkip(n int) int {
	saved := e.EmitLoc
	e.EmitLoc += n
	if e.EmitLoc > e.highWaterMark {
		e.highWaterMark = e.EmitLoc
	}
	return saved
}

// EmitBackup repositions EmitLoc to loc for patching a previously reserved
// slot.
func (e *Emitter) EmitBackup(loc int) {
	e.EmitLoc = loc
}

// EmitRestore resets EmitLoc to the high-water mark, returning to the
// frontier after a round of backpatching.
func (e *Emitter) EmitRestore() {
	e.EmitLoc = e.highWaterMark
}

// EmitComment appends a standalone comment line at the frontier.
func (e *Emitter) EmitComment(text string) {
	e.write(Instruction{Form: FormComment, Comment: text})
}

// Code returns the full instruction buffer in emission order.
func (e *Emitter) Code() []Instruction {
	return e.code
}

// String renders every instruction, one per line, in buffer order — the
// deterministic textual listing spec.md §6/§8 calls for.
func (e *Emitter) String() string {
	var out string
	for i, inst := range e.code {
		if i > 0 {
			out += "\n"
		}
		out += inst.String()
	}
	return out
}
