package gaccmd

import "fmt"

// Instr is a single disassembled condition-script instruction: either a
// PUSH carrying a 16-bit immediate, or a bare opcode. Using one tagged
// struct instead of a string-tagged tuple (as the original interpreter
// does) lets every instruction be built and compared the same way. An
// opcode id outside the table still arrives as an Op (see OpByID), and the
// VM's default case logs it.
type Instr struct {
	// Op is the decoded opcode. For a PUSH, Op is nil and Imm carries the
	// pushed value.
	Op *Op

	// Imm is the 16-bit immediate value of a PUSH instruction.
	Imm uint16

	// IsPush tells whether this instruction is a PUSH (Op is nil) or a
	// regular opcode (Op is non-nil).
	IsPush bool
}

// Push constructs a PUSH instruction with the given immediate.
func Push(v uint16) Instr {
	return Instr{Imm: v, IsPush: true}
}

// Instruction constructs a plain opcode instruction.
func Instruction(op *Op) Instr {
	return Instr{Op: op}
}

// String renders the instruction the way the original tuple-tagged form
// printed, for debug traces.
func (i Instr) String() string {
	if i.IsPush {
		return fmt.Sprintf("PUSH %d", i.Imm)
	}
	return i.Op.String()
}
