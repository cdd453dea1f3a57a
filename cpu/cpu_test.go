package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// exampleProgram is the worked example with the ip bound to r0.
func exampleProgram() *Program {
	return &Program{
		IpRegister: 0,
		Code: []Instruction{
			Make(OP_SETI, 5, 0, 1),
			Make(OP_SETI, 6, 0, 2),
			Make(OP_ADDI, 0, 1, 0),
			Make(OP_ADDR, 1, 2, 3),
			Make(OP_SETR, 1, 0, 0),
			Make(OP_SETI, 8, 0, 4),
			Make(OP_SETI, 9, 0, 5),
		},
	}
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	registers := make([]int, 6)
	err := Execute(exampleProgram(), registers)
	assert.NoError(err)
	assert.Equal(6, registers[0])
	assert.Equal([]int{6, 5, 6, 0, 0, 9}, registers)
}

func TestCpu_Tick(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(exampleProgram(), make([]int, 6))
	assert.NoError(err)

	table := []struct {
		pc        int
		registers []int
	}{
		{1, []int{0, 5, 0, 0, 0, 0}},
		{2, []int{1, 5, 6, 0, 0, 0}},
		{4, []int{3, 5, 6, 0, 0, 0}},
		{6, []int{5, 5, 6, 0, 0, 0}},
		{7, []int{6, 5, 6, 0, 0, 9}},
	}

	for n, entry := range table {
		done, err := cpu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(table)-1, done)
		assert.Equal(entry.pc, cpu.Pc)
		assert.Equal(entry.registers, cpu.Register)
	}

	assert.Equal(len(table), cpu.Ticks)
	assert.True(cpu.Halted())
}

func TestCpu_RunHalted(t *testing.T) {
	assert := assert.New(t)

	registers := []int{1, 2, 3, 4, 5, 6}
	cpu, err := NewCpu(exampleProgram(), registers)
	assert.NoError(err)

	for _, pc := range []int{7, 100, -1} {
		cpu.Pc = pc
		assert.NoError(cpu.Run())
		assert.Equal([]int{1, 2, 3, 4, 5, 6}, registers)
		assert.Equal(0, cpu.Ticks)

		done, err := cpu.Tick()
		assert.NoError(err)
		assert.True(done)
		assert.Equal(pc, cpu.Pc)
	}
}

func TestCpu_Toggle(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		IpRegister: 1,
		Code: []Instruction{
			Make(OP_SETI, 2, 0, 0),
			Make(OP_TGL, 0, 0, 0),
			Make(OP_MULI, 0, 1, 0),
			Make(OP_ADDI, 0, 1, 0),
		},
	}

	registers := make([]int, 2)
	cpu, err := NewCpu(prog.Clone(), registers)
	assert.NoError(err)
	assert.NoError(cpu.Run())

	// addi 0 1 0 became addr 0 1 0, adding the ip register (3).
	assert.Equal(5, registers[0])
	assert.Equal(Make(OP_ADDR, 0, 1, 0), cpu.Program.Code[3])
	assert.Equal(Make(OP_ADDI, 0, 1, 0), prog.Code[3])

	// Execute leaves the program as it was, so every run is the same.
	for range 2 {
		registers = make([]int, 2)
		assert.NoError(Execute(prog, registers))
		assert.Equal(5, registers[0])
		assert.Equal(Make(OP_ADDI, 0, 1, 0), prog.Code[3])
	}
}

func TestCpu_ToggleTableCopy(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Code: []Instruction{Make(OP_SETI, 1, 0, 0)}}

	first, err := NewCpu(prog, make([]int, 1))
	assert.NoError(err)
	first.Toggle[OP_ADDR] = OP_MULI

	second, err := NewCpu(prog, make([]int, 1))
	assert.NoError(err)
	assert.Equal(OP_ADDI, second.Toggle[OP_ADDR])
	assert.Equal(OP_ADDI, DefaultToggleTable[OP_ADDR])
}

func TestCpu_ToggleInvalid(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		IpRegister: 1,
		Code: []Instruction{
			Make(OP_TGL, 0, 0, 0),
			Make(OP_SETI, 9, 0, 0),
		},
	}

	registers := []int{1, 0}
	cpu, err := NewCpu(prog, registers)
	assert.NoError(err)
	assert.NoError(cpu.Run())

	// setr 9 0 0 reads a register that does not exist, so it is skipped.
	assert.Equal(OP_SETR, prog.Code[1].Op)
	assert.Equal(1, registers[0])
	assert.Equal(2, cpu.Ticks)
	assert.Equal(-1, cpu.Wrote)
}

func TestCpu_ToggleOutside(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		IpRegister: 2,
		Code: []Instruction{
			Make(OP_TGL, 0, 0, 0),
			Make(OP_ADDI, 1, 1, 1),
		},
	}
	original := prog.Binary()

	registers := []int{-5, 0, 0}
	assert.NoError(Execute(prog, registers))
	assert.Equal(original, prog.Binary())
	assert.Equal(1, registers[1])
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	// Count r0 down to zero, accumulating into r1.
	prog := &Program{
		IpRegister: 3,
		Code: []Instruction{
			Make(OP_ADDR, 1, 0, 1), // r1 += r0
			Make(OP_ADDI, 0, -1, 0),
			Make(OP_GTRI, 0, 0, 2), // r2 = r0 > 0
			Make(OP_MULI, 2, -5, 2),
			Make(OP_ADDR, 2, 3, 3), // jump to 0 while r0 > 0
		},
	}

	registers := []int{4, 0, 0, 0}
	cpu, err := NewCpu(prog, registers)
	assert.NoError(err)
	assert.NoError(cpu.Run())
	assert.Equal(10, registers[1])
	assert.Equal(0, registers[0])
	assert.Equal(20, cpu.Ticks)
}

func TestCpu_Force(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		IpRegister: 3,
		Code: []Instruction{
			Make(OP_EQRR, 1, 0, 2),
		},
	}

	registers := []int{5, 5, 7, 0}
	cpu, err := NewCpu(prog, registers)
	assert.NoError(err)

	done, err := cpu.Force(0)
	assert.NoError(err)
	assert.True(done)
	assert.Equal([]int{5, 5, 0, 0}, registers)
	assert.Equal(2, cpu.Wrote)
	assert.Equal(1, cpu.Ticks)
}

func TestCpu_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewCpu(exampleProgram(), nil)
	assert.ErrorIs(err, ErrRegisterWidth)

	prog := exampleProgram()
	prog.IpRegister = 6
	_, err = NewCpu(prog, make([]int, 6))
	assert.ErrorIs(err, ErrIpRegister)

	_, err = NewCpu(exampleProgram(), make([]int, 5))
	assert.ErrorIs(err, ErrRegisterInvalid)
	var ins_err *ErrInstruction
	assert.True(errors.As(err, &ins_err))
	assert.Equal(6, ins_err.Ip)

	prog = &Program{
		IpRegister: 1,
		Code:       []Instruction{Make(OP_DIVI, 0, 0, 0)},
	}
	err = Execute(prog, make([]int, 2))
	assert.ErrorIs(err, ErrDivideByZero)
	assert.ErrorIs(err, ErrOpcodeAlu)
	assert.True(errors.As(err, &ins_err))
	assert.Equal(0, ins_err.Ip)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(exampleProgram(), []int{0, 1, 2, 3, 4, 5})
	assert.NoError(err)
	assert.Equal("ip=0 [*r0=0 r1=1 r2=2 r3=3 r4=4 r5=5]", cpu.String())

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("1", defines["TRUE"])
	assert.Equal("0", defines["FALSE"])
}
