// Package analyze runs register machine programs under observation.
//
// Run records a snapshot of the program, registers and instruction pointer
// before every step, and stops at the first repeated snapshot: a program
// that returns to an earlier state loops forever. Writes to an output
// register are recorded along the way.
//
// Extract instead watches the single eqrr instruction that compares r0
// with another register. Each time it is about to execute, the compared
// value is recorded and the test is forced to fail, so execution continues
// through every value that could have halted the program.
package analyze
