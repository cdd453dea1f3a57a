package cpu

import (
	"fmt"
	"iter"
	"slices"
)

// Program is an ordered instruction array, addressed by the instruction
// pointer, plus the register the instruction pointer is bound to.
type Program struct {
	IpRegister int           // Register bound to the instruction pointer.
	Code       []Instruction // Instructions, indexed by address.
	LineNo     []int         // Source line of each instruction, if known.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Code)
}

// Clone returns a deep copy, so that toggles do not alter the original.
func (prog *Program) Clone() *Program {
	return &Program{
		IpRegister: prog.IpRegister,
		Code:       slices.Clone(prog.Code),
		LineNo:     slices.Clone(prog.LineNo),
	}
}

// Contains returns true if ip addresses an instruction.
func (prog *Program) Contains(ip int) bool {
	return ip >= 0 && ip < len(prog.Code)
}

// Debug returns the source line number of the instruction at ip, or 0.
func (prog *Program) Debug(ip int) (lineno int) {
	if ip >= 0 && ip < len(prog.LineNo) {
		lineno = prog.LineNo[ip]
	}
	return
}

// Validate checks the instruction pointer binding and every instruction
// against a register file of the given width.
func (prog *Program) Validate(width int) (err error) {
	if width <= 0 {
		return ErrRegisterWidth
	}

	if prog.IpRegister < 0 || prog.IpRegister >= width {
		return ErrIpRegister
	}

	for ip, ins := range prog.Codes() {
		err = ins.Check(width)
		if err != nil {
			return &ErrInstruction{Ip: ip, Err: err}
		}
	}

	return
}

// Binary returns the encoding of the program instructions.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, 0, len(prog.Code)*INSTRUCTION_SIZE)
	for _, ins := range prog.Code {
		bins = ins.Encode(bins)
	}

	return
}

// Codes iterates over the instructions and their addresses.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		for ip, ins := range prog.Code {
			if !yield(ip, ins) {
				return
			}
		}
	}
}

// String returns the program listing.
func (prog *Program) String() (text string) {
	text = fmt.Sprintf("#ip %d\n", prog.IpRegister)
	for _, ins := range prog.Code {
		text += ins.String() + "\n"
	}
	return
}
