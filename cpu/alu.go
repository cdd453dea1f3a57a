package cpu

// getValue gets the value of an operand, based on its addressing.
func getValue(registers []int, arg Arg, value int) int {
	switch arg {
	case ARG_REG:
		return registers[value]
	case ARG_IMM:
		return value
	}
	return 0
}

// boolValue converts a test result to 1 or 0.
func boolValue(test bool) int {
	if test {
		return 1
	}
	return 0
}

// Apply executes an ALU instruction, writing only registers[ins.C].
//
// Register operands outside of the register file panic; use
// Instruction.Check to validate untrusted instructions first.
func Apply(registers []int, ins Instruction) (err error) {
	if !ins.Op.Alu() {
		return ErrOpcodeAlu
	}

	arg_a, arg_b, _ := ins.Op.Addressing()
	a := getValue(registers, arg_a, ins.A)
	b := getValue(registers, arg_b, ins.B)

	var output int
	switch ins.Op {
	case OP_ADDR, OP_ADDI:
		output = a + b
	case OP_MULR, OP_MULI:
		output = a * b
	case OP_BANR, OP_BANI:
		output = a & b
	case OP_BORR, OP_BORI:
		output = a | b
	case OP_SETR, OP_SETI:
		output = a
	case OP_GTIR, OP_GTRI, OP_GTRR:
		output = boolValue(a > b)
	case OP_EQIR, OP_EQRI, OP_EQRR:
		output = boolValue(a == b)
	case OP_DIVR, OP_DIVI:
		if b == 0 {
			return ErrDivideByZero
		}
		output = a / b
	default:
		return ErrOpcodeAlu
	}

	registers[ins.C] = output

	return
}
