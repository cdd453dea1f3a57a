package cpu

// Opcode is an instruction operation.
type Opcode int

const (
	OP_ADDR = Opcode(iota) // addr
	OP_ADDI                // addi
	OP_MULR                // mulr
	OP_MULI                // muli
	OP_BANR                // banr
	OP_BANI                // bani
	OP_BORR                // borr
	OP_BORI                // bori
	OP_SETR                // setr
	OP_SETI                // seti
	OP_GTIR                // gtir
	OP_GTRI                // gtri
	OP_GTRR                // gtrr
	OP_EQIR                // eqir
	OP_EQRI                // eqri
	OP_EQRR                // eqrr
	OP_TGL                 // tgl
	OP_DIVR                // divr
	OP_DIVI                // divi

	opcodeCount
)

// Arg is the addressing of a single operand.
type Arg int

const (
	ARG_NONE = Arg(0) // ignored
	ARG_REG  = Arg(1) // register index
	ARG_IMM  = Arg(2) // literal value
)

var argName = [...]string{
	ARG_NONE: "none",
	ARG_REG:  "reg",
	ARG_IMM:  "imm",
}

func (arg Arg) String() string {
	if arg < 0 || int(arg) >= len(argName) {
		return "Arg(?)"
	}
	return argName[arg]
}

// opcodeInfo is the fixed name and addressing of an opcode.
type opcodeInfo struct {
	name    string
	a, b, c Arg
}

var opcodeTable = [opcodeCount]opcodeInfo{
	OP_ADDR: {"addr", ARG_REG, ARG_REG, ARG_REG},
	OP_ADDI: {"addi", ARG_REG, ARG_IMM, ARG_REG},
	OP_MULR: {"mulr", ARG_REG, ARG_REG, ARG_REG},
	OP_MULI: {"muli", ARG_REG, ARG_IMM, ARG_REG},
	OP_BANR: {"banr", ARG_REG, ARG_REG, ARG_REG},
	OP_BANI: {"bani", ARG_REG, ARG_IMM, ARG_REG},
	OP_BORR: {"borr", ARG_REG, ARG_REG, ARG_REG},
	OP_BORI: {"bori", ARG_REG, ARG_IMM, ARG_REG},
	OP_SETR: {"setr", ARG_REG, ARG_NONE, ARG_REG},
	OP_SETI: {"seti", ARG_IMM, ARG_NONE, ARG_REG},
	OP_GTIR: {"gtir", ARG_IMM, ARG_REG, ARG_REG},
	OP_GTRI: {"gtri", ARG_REG, ARG_IMM, ARG_REG},
	OP_GTRR: {"gtrr", ARG_REG, ARG_REG, ARG_REG},
	OP_EQIR: {"eqir", ARG_IMM, ARG_REG, ARG_REG},
	OP_EQRI: {"eqri", ARG_REG, ARG_IMM, ARG_REG},
	OP_EQRR: {"eqrr", ARG_REG, ARG_REG, ARG_REG},
	OP_TGL:  {"tgl", ARG_REG, ARG_NONE, ARG_NONE},
	OP_DIVR: {"divr", ARG_REG, ARG_REG, ARG_REG},
	OP_DIVI: {"divi", ARG_REG, ARG_IMM, ARG_REG},
}

// opcodeMap maps opcode mnemonics.
var opcodeMap = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		m[info.name] = Opcode(op)
	}
	return m
}()

// Opcodes returns every opcode of the instruction set, in encoding order.
func Opcodes() []Opcode {
	ops := make([]Opcode, opcodeCount)
	for n := range ops {
		ops[n] = Opcode(n)
	}
	return ops
}

// ParseOpcode returns the opcode for a mnemonic.
func ParseOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeMap[name]
	return
}

// Valid returns true if the opcode is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && op < opcodeCount
}

// String returns the assembly mnemonic.
func (op Opcode) String() string {
	if !op.Valid() {
		return "Opcode(?)"
	}
	return opcodeTable[op].name
}

// Addressing returns how the A, B and C operands are interpreted.
func (op Opcode) Addressing() (a, b, c Arg) {
	if !op.Valid() {
		return
	}
	info := opcodeTable[op]
	return info.a, info.b, info.c
}

// Alu returns true if the opcode is executed by the ALU.
func (op Opcode) Alu() bool {
	return op.Valid() && op != OP_TGL
}
