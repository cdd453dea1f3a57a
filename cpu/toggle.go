package cpu

// ToggleTable maps an opcode to its toggled sibling. Opcodes missing from
// the table are left unchanged by a toggle.
type ToggleTable map[Opcode]Opcode

// NewToggleTable creates a symmetric table from opcode pairs. An opcode may
// appear in at most one pair, so toggling twice always restores the
// original opcode.
func NewToggleTable(pairs ...[2]Opcode) (table ToggleTable, err error) {
	table = make(ToggleTable, len(pairs)*2)

	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		if !from.Valid() || !to.Valid() {
			err = ErrOpcodeInvalid
			return
		}
		_, seen_from := table[from]
		_, seen_to := table[to]
		if seen_from || seen_to {
			err = ErrToggleTable
			return
		}
		table[from] = to
		table[to] = from
	}

	return
}

// DefaultToggleTable swaps register and immediate siblings, the two copy
// opcodes, and the greater-than and equality tests of the same typing.
var DefaultToggleTable = func() ToggleTable {
	table, err := NewToggleTable(
		[2]Opcode{OP_ADDR, OP_ADDI},
		[2]Opcode{OP_MULR, OP_MULI},
		[2]Opcode{OP_BANR, OP_BANI},
		[2]Opcode{OP_BORR, OP_BORI},
		[2]Opcode{OP_DIVR, OP_DIVI},
		[2]Opcode{OP_SETR, OP_SETI},
		[2]Opcode{OP_GTIR, OP_EQIR},
		[2]Opcode{OP_GTRI, OP_EQRI},
		[2]Opcode{OP_GTRR, OP_EQRR},
	)
	if err != nil {
		panic(err)
	}
	return table
}()

// Toggled returns the sibling of op.
func (table ToggleTable) Toggled(op Opcode) Opcode {
	to, ok := table[op]
	if !ok {
		return op
	}
	return to
}

// Involution returns true if toggling any opcode twice restores it.
func (table ToggleTable) Involution() bool {
	for from, to := range table {
		if table.Toggled(to) != from {
			return false
		}
	}
	return true
}

// Toggle rewrites the opcode of the instruction at ip. Operands are left
// untouched. Addresses outside of the program are ignored.
func (prog *Program) Toggle(table ToggleTable, ip int) (ok bool) {
	if !prog.Contains(ip) {
		return
	}

	ins := &prog.Code[ip]
	ins.Op = table.Toggled(ins.Op)

	return true
}
