package cpu

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		ins   Instruction
		value int
	}){
		{Make(OP_ADDR, 0, 1, 2), 8},
		{Make(OP_ADDI, 0, 7, 2), 10},
		{Make(OP_MULR, 0, 1, 2), 15},
		{Make(OP_MULI, 0, 7, 2), 21},
		{Make(OP_BANR, 0, 1, 2), 1},
		{Make(OP_BANI, 0, 6, 2), 2},
		{Make(OP_BORR, 0, 1, 2), 7},
		{Make(OP_BORI, 0, 8, 2), 11},
		{Make(OP_SETR, 1, 9, 2), 5},
		{Make(OP_SETI, 9, 9, 2), 9},
		{Make(OP_GTIR, 4, 0, 2), 1},
		{Make(OP_GTRI, 0, 4, 2), 0},
		{Make(OP_GTRR, 1, 0, 2), 1},
		{Make(OP_EQIR, 3, 0, 2), 1},
		{Make(OP_EQRI, 1, 4, 2), 0},
		{Make(OP_EQRR, 0, 0, 2), 1},
		{Make(OP_DIVR, 2, 0, 1), 2},
		{Make(OP_DIVI, 2, 2, 3), 3},
		{Make(OP_ADDI, 0, -10, 0), -7},
	}

	for _, entry := range table {
		registers := []int{3, 5, 7, 2}

		expected := slices.Clone(registers)
		expected[entry.ins.C] = entry.value

		err := Apply(registers, entry.ins)
		assert.NoError(err, entry.ins.String())
		assert.Equal(expected, registers, entry.ins.String())
	}
}

func TestApply_AddImmediate(t *testing.T) {
	assert := assert.New(t)

	registers := []int{3, 0, 0, 0}
	err := Apply(registers, Make(OP_ADDI, 0, 1, 0))
	assert.NoError(err)
	assert.Equal([]int{4, 0, 0, 0}, registers)
}

func TestApply_Errors(t *testing.T) {
	assert := assert.New(t)

	registers := []int{3, 0, 0, 0}

	err := Apply(registers, Make(OP_DIVI, 0, 0, 1))
	assert.ErrorIs(err, ErrDivideByZero)
	assert.Equal([]int{3, 0, 0, 0}, registers)

	err = Apply(registers, Make(OP_TGL, 0, 0, 0))
	assert.ErrorIs(err, ErrOpcodeAlu)

	err = Apply(registers, Make(Opcode(99), 0, 0, 0))
	assert.ErrorIs(err, ErrOpcodeAlu)
}

func TestApply_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	registers := []int{0, 0}
	assert.Panics(func() { _ = Apply(registers, Make(OP_SETI, 1, 0, 2)) })
	assert.Panics(func() { _ = Apply(registers, Make(OP_ADDR, 5, 0, 0)) })
}

func FuzzApply(f *testing.F) {
	for op := range opcodeCount {
		f.Add(uint8(op), 0, 1, uint8(2), 3, -4, 5, 6)
		f.Add(uint8(op), 3, 0, uint8(0), 0, 0, 0, 0)
	}

	f.Fuzz(func(t *testing.T, sel uint8, a int, b int, c uint8, r0, r1, r2, r3 int) {
		assert := assert.New(t)

		ops := Opcodes()
		op := ops[int(sel)%len(ops)]
		if !op.Alu() {
			return
		}

		arg_a, arg_b, _ := op.Addressing()
		if arg_a == ARG_REG {
			a = ((a % 4) + 4) % 4
		}
		if arg_b == ARG_REG {
			b = ((b % 4) + 4) % 4
		}
		ins := Make(op, a, b, int(c%4))
		if !assert.NoError(ins.Check(4)) {
			return
		}

		registers := []int{r0, r1, r2, r3}
		before := slices.Clone(registers)

		err := Apply(registers, ins)
		if err != nil {
			assert.ErrorIs(err, ErrDivideByZero)
			assert.Equal(before, registers)
			return
		}

		for n := range registers {
			if n == ins.C {
				continue
			}
			assert.Equal(before[n], registers[n], "%v changed r%d", ins, n)
		}
	})
}
