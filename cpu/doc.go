// Package cpu implements a small register machine and its assembler.
//
// The machine has a caller sized register file of signed integers, an
// ordered instruction array, and an instruction pointer bound to one of the
// registers. Before each instruction the instruction pointer is written to
// the bound register, and afterwards it is read back and incremented, so an
// ordinary register write acts as a jump.
//
// The instruction set is closed: add, multiply, bitwise and, bitwise or,
// copy, greater-than and equality tests, each in register and immediate
// forms, a truncating divide, and tgl, which rewrites the opcode of another
// instruction through a ToggleTable.
//
// The assembler reads one instruction per line, with a '#ip N' directive,
// labels, equates, and compile-time expressions.
package cpu
