// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/regvm/cpu"
	"github.com/ezrec/regvm/internal"
)

const (
	REGISTERS_DEFAULT = 6 // Register count used when none is requested.
)

var _emulator_defines = map[string]string{
	"REGISTERS_DEFAULT": fmt.Sprintf("%v", REGISTERS_DEFAULT),
}

// Emulator state. CPU + source listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the loaded program listing.

	Width  int               // Number of registers.
	Equate map[string]string // Additional defines, overriding the built in ones.
}

// NewEmulator creates a new emulator with width registers. A width below
// one is rejected by Reset.
func NewEmulator(width int) (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Width:   width,
	}

	emu.Cpu = &cpu.Cpu{
		Program:  emu.Program.Clone(),
		Register: make([]int, max(width, 0)),
		Toggle:   maps.Clone(cpu.DefaultToggleTable),
		Wrote:    -1,
	}

	return
}

// Defines returns an iterator over all of the defines, sorted by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	width := map[string]string{
		"REGISTERS": fmt.Sprintf("%v", emu.Width),
	}

	return internal.IterSeq2Sorted(internal.IterSeq2Concat(
		maps.All(_emulator_defines),
		maps.All(width),
		emu.Cpu.Defines(),
		maps.All(emu.Equate),
	))
}

// Assemble parses a listing into the emulator's program. All of the
// emulator's defines are available to the listing as equates.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the CPU to the start of the program, with a fresh copy of the
// program and the given registers. A nil register set is all zeros.
func (emu *Emulator) Reset(registers []int) (err error) {
	if emu.Width <= 0 {
		err = cpu.ErrRegisterWidth
		return
	}

	if registers == nil {
		registers = make([]int, emu.Width)
	}

	if len(registers) != emu.Width {
		err = ErrRegisters
		return
	}

	toggle := emu.Cpu.Toggle

	c, err := cpu.NewCpu(emu.Program.Clone(), slices.Clone(registers))
	if err != nil {
		return
	}

	c.Toggle = toggle
	c.Verbose = emu.Verbose
	emu.Cpu = c

	if emu.Verbose {
		log.Debugf("emulator: reset %v", emu.Cpu)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Pc
}

// Code returns the instruction at the instruction pointer, as it is
// now after any toggles.
func (emu *Emulator) Code() cpu.Instruction {
	ins, _ := emu.Cpu.Fetch()
	return ins
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.Debug(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	return emu.Cpu.Tick()
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for done := emu.Cpu.Halted(); !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
