package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// INSTRUCTION_SIZE is the encoded size of an Instruction, in bytes.
const INSTRUCTION_SIZE = 2 + 3*8

// Instruction is a single decoded operation. C is always a destination
// register for ALU opcodes.
type Instruction struct {
	Op      Opcode
	A, B, C int
}

// Make creates an instruction.
func Make(op Opcode, a, b, c int) Instruction {
	return Instruction{Op: op, A: a, B: b, C: c}
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	return fmt.Sprintf("%v %d %d %d", ins.Op, ins.A, ins.B, ins.C)
}

// ParseInstruction parses a single line of the form 'op a b c'.
// Missing operands are zero.
func ParseInstruction(line string) (ins Instruction, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrInstructionInvalid
		return
	}

	op, ok := ParseOpcode(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	var args [3]int
	for n, word := range words[1:] {
		args[n], err = strconv.Atoi(word)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
	}

	ins = Make(op, args[0], args[1], args[2])

	return
}

// Check verifies that every register operand is within a register file
// of the given width.
func (ins Instruction) Check(width int) (err error) {
	if !ins.Op.Valid() {
		return ErrOpcodeDecode
	}

	a, b, c := ins.Op.Addressing()

	checks := [3]struct {
		arg   Arg
		value int
		err   error
	}{
		{a, ins.A, ErrOpcodeArg1},
		{b, ins.B, ErrOpcodeArg2},
		{c, ins.C, ErrOpcodeArg3},
	}

	for _, check := range checks {
		if check.arg != ARG_REG {
			continue
		}
		if check.value < 0 || check.value >= width {
			return errors.Join(ErrRegisterInvalid, check.err)
		}
	}

	return
}

// Encode appends the fixed size big-endian encoding of the instruction.
func (ins Instruction) Encode(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint16(buf, uint16(ins.Op))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(ins.A)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(ins.B)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(ins.C)))
	return buf
}

// DecodeInstruction decodes one instruction, returning the remaining bytes.
func DecodeInstruction(buf []byte) (ins Instruction, rest []byte, err error) {
	if len(buf) < INSTRUCTION_SIZE {
		err = ErrOpcodeDecode
		return
	}

	ins.Op = Opcode(binary.BigEndian.Uint16(buf[0:]))
	if !ins.Op.Valid() {
		err = ErrOpcodeDecode
		return
	}
	ins.A = int(int64(binary.BigEndian.Uint64(buf[2:])))
	ins.B = int(int64(binary.BigEndian.Uint64(buf[10:])))
	ins.C = int(int64(binary.BigEndian.Uint64(buf[18:])))

	rest = buf[INSTRUCTION_SIZE:]

	return
}
