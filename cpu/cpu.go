package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"strings"

	log "github.com/sirupsen/logrus"
)

var _cpu_defines = map[string]string{
	"TRUE":  "1",
	"FALSE": "0",
}

// Cpu is the execution context: a program, a register file, and the
// instruction pointer, which is mirrored into Program.IpRegister around
// every instruction.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program  *Program    // Program being executed. Modified by toggles.
	Register []int       // Register bank.
	Pc       int         // Current instruction pointer.
	Toggle   ToggleTable // Opcode pairing used by tgl.

	Ticks int // Instructions executed.
	Wrote int // Register written by the last tick, or -1.
}

// NewCpu creates a CPU for a program. The CPU takes ownership of both the
// program and the register bank; clone them first to keep the originals.
// The CPU gets its own copy of DefaultToggleTable.
func NewCpu(prog *Program, registers []int) (cpu *Cpu, err error) {
	err = prog.Validate(len(registers))
	if err != nil {
		return
	}

	cpu = &Cpu{
		Program:  prog,
		Register: registers,
		Toggle:   maps.Clone(DefaultToggleTable),
		Wrote:    -1,
	}

	return
}

// Execute runs a copy of a program to completion, updating registers in
// place. Toggles do not modify prog.
func Execute(prog *Program, registers []int) (err error) {
	cpu, err := NewCpu(prog.Clone(), registers)
	if err != nil {
		return
	}

	return cpu.Run()
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := make([]string, len(cpu.Register))
	for n, val := range cpu.Register {
		mark := ""
		if n == cpu.Program.IpRegister {
			mark = "*"
		}
		regs[n] = fmt.Sprintf("%sr%d=%d", mark, n, val)
	}

	text = fmt.Sprintf("ip=%d [%v]", cpu.Pc, strings.Join(regs, " "))

	return
}

// Halted returns true if the instruction pointer is outside of the program.
func (cpu *Cpu) Halted() bool {
	return !cpu.Program.Contains(cpu.Pc)
}

// Fetch returns the instruction at the instruction pointer.
func (cpu *Cpu) Fetch() (ins Instruction, ok bool) {
	if cpu.Halted() {
		return
	}

	return cpu.Program.Code[cpu.Pc], true
}

// step wraps an instruction action with the instruction pointer protocol:
// the pc is written to the bound register before the action, and read back
// afterwards so that any write to that register acts as a jump.
func (cpu *Cpu) step(action func(ins Instruction) error) (done bool, err error) {
	ins, ok := cpu.Fetch()
	if !ok {
		done = true
		return
	}

	ipreg := cpu.Program.IpRegister

	cpu.Register[ipreg] = cpu.Pc
	cpu.Wrote = -1

	if cpu.Verbose {
		log.Debugf("%03d: %-16v %v", cpu.Pc, ins, cpu)
	}

	err = action(ins)
	if err != nil {
		err = &ErrInstruction{Ip: cpu.Pc, Err: err}
		return
	}

	cpu.Pc = cpu.Register[ipreg] + 1
	cpu.Ticks++

	done = cpu.Halted()

	return
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick() (done bool, err error) {
	return cpu.step(cpu.execute)
}

// Force completes the current instruction by storing value into its
// destination register instead of executing it.
func (cpu *Cpu) Force(value int) (done bool, err error) {
	return cpu.step(func(ins Instruction) (err error) {
		if !ins.Op.Alu() || ins.Check(len(cpu.Register)) != nil {
			return
		}
		cpu.Register[ins.C] = value
		cpu.Wrote = ins.C
		return
	})
}

// execute executes a single decoded instruction.
func (cpu *Cpu) execute(ins Instruction) (err error) {
	// Instructions that a toggle made invalid are skipped.
	if ins.Check(len(cpu.Register)) != nil {
		if cpu.Verbose {
			log.Debugf("%03d: skip invalid %v", cpu.Pc, ins)
		}
		return
	}

	if ins.Op == OP_TGL {
		target := cpu.Pc + cpu.Register[ins.A]
		ok := cpu.Program.Toggle(cpu.Toggle, target)
		if cpu.Verbose && ok {
			log.Debugf("%03d: toggled %03d to %v", cpu.Pc, target, cpu.Program.Code[target])
		}
		return
	}

	err = Apply(cpu.Register, ins)
	if err != nil {
		err = errors.Join(ErrOpcodeAlu, err)
		return
	}
	cpu.Wrote = ins.C

	return
}

// Run executes instructions until the instruction pointer leaves the
// program.
func (cpu *Cpu) Run() (err error) {
	for done := cpu.Halted(); !done; {
		done, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}
