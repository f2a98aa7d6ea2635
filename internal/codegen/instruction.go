// Package codegen assigns storage locations and emits linear instructions
// for the target register/memory VM (spec.md §4.5, §4.6). The emitter/
// instruction split follows the teacher compiler's internal/bytecode
// package shape (instruction.go defines the wire format and String(),
// compiler_core.go/compiler.go own per-node emission) generalized from a
// 32-bit stack-machine encoding to the three textual instruction forms
// spec.md §6 specifies, and grounded directly on original_source/cgen.c's
// emitRO/emitRM/emitRM_Abs for the emission algorithm itself.
package codegen

import "fmt"

// Register is one of the target VM's eight distinguished registers
// (spec.md §6).
type Register int

const (
	Ac Register = iota
	Ac1
	Constant
	Zero
	Gp
	Mp
	Fp
	Pc
)

func (r Register) String() string {
	switch r {
	case Ac:
		return "ac"
	case Ac1:
		return "ac1"
	case Constant:
		return "constant"
	case Zero:
		return "zero"
	case Gp:
		return "gp"
	case Mp:
		return "mp"
	case Fp:
		return "fp"
	case Pc:
		return "pc"
	default:
		return fmt.Sprintf("reg%d", int(r))
	}
}

// Form distinguishes the two instruction encodings plus a comment-only
// line, per spec.md §6.
type Form int

const (
	FormRO Form = iota // OP r, s, t
	FormRM             // OP r, d(s)
	FormComment
)

// Op is the VM opcode mnemonic. The RO/RM split mirrors spec.md §6 exactly.
type Op string

const (
	Halt Op = "HALT"
	In   Op = "IN"
	Out  Op = "OUT"
	Add  Op = "ADD"
	Sub  Op = "SUB"
	Mul  Op = "MUL"
	Div  Op = "DIV"

	Ld  Op = "LD"
	St  Op = "ST"
	Jlt Op = "JLT"
	Jle Op = "JLE"
	Jgt Op = "JGT"
	Jge Op = "JGE"
	Jeq Op = "JEQ"
	Jne Op = "JNE"
	Lda Op = "LDA"
	Ldc Op = "LDC"
)

// roOps lists the opcodes of the three-register form; every other opcode
// is register-memory (see IsRO).
var roOps = map[Op]bool{Halt: true, In: true, Out: true, Add: true, Sub: true, Mul: true, Div: true}

// Instruction is one emitted line: either a three-register RO instruction,
// a register+displacement RM instruction, or a standalone comment.
type Instruction struct {
	Form    Form
	Op      Op
	R       Register
	S       Register // RO: second operand register. RM: base register.
	T       Register // RO only: third operand register.
	D       int      // RM only: displacement.
	Comment string
}

// String renders the instruction the way spec.md §6 describes: a fixed
// instruction form, or a `*`-prefixed comment line.
func (i Instruction) String() string {
	var body string
	switch i.Form {
	case FormComment:
		return "* " + i.Comment
	case FormRO:
		body = fmt.Sprintf("%s %s,%s,%s", i.Op, i.R, i.S, i.T)
	case FormRM:
		body = fmt.Sprintf("%s %s,%d(%s)", i.Op, i.R, i.D, i.S)
	}
	if i.Comment != "" {
		body += "\t* " + i.Comment
	}
	return body
}

// IsRO reports whether op belongs to the three-register form.
func IsRO(op Op) bool {
	return roOps[op]
}
