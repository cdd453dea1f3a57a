package analyze

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/regvm/cpu"
)

// Gate is the equality test against r0 that decides whether a program
// halts.
type Gate struct {
	Ip       int // Address of the eqrr instruction.
	Register int // Register compared against r0.
}

// FindGate locates the first eqrr instruction comparing r0 with another
// register.
func FindGate(prog *cpu.Program) (gate Gate, err error) {
	for ip, ins := range prog.Codes() {
		if ins.Op != cpu.OP_EQRR {
			continue
		}
		switch {
		case ins.A == 0 && ins.B != 0:
			return Gate{Ip: ip, Register: ins.B}, nil
		case ins.B == 0 && ins.A != 0:
			return Gate{Ip: ip, Register: ins.A}, nil
		}
	}

	err = ErrNoGate
	return
}

// Trace is the sequence of values seen at a gate.
type Trace struct {
	Gate   Gate
	Values []int // Distinct values, in the order they reached the gate.
	Steps  int   // Instructions executed.

	Repeated  bool // Stopped because a value reached the gate twice.
	Halted    bool // Stopped because the program halted.
	Exhausted bool // Stopped because the step budget was spent.
}

// First returns the first value to reach the gate: the r0 that halts the
// program in the fewest steps.
func (trace *Trace) First() (value int, ok bool) {
	if len(trace.Values) == 0 {
		return
	}
	return trace.Values[0], true
}

// Last returns the last new value before the first repeat: the r0 that
// halts the program in the most steps.
func (trace *Trace) Last() (value int, ok bool) {
	if len(trace.Values) == 0 {
		return
	}
	return trace.Values[len(trace.Values)-1], true
}

// Extract runs the program, and each time the gate is about to execute
// records the compared value and forces the test to fail. It stops at the
// first repeated value.
func (a *Analyzer) Extract(prog *cpu.Program, registers []int) (trace *Trace, err error) {
	gate, err := FindGate(prog)
	if err != nil {
		return
	}

	c, err := a.newCpu(prog, registers)
	if err != nil {
		return
	}

	trace = &Trace{Gate: gate}
	seen := make(map[int]struct{})

	defer func() {
		trace.Steps = c.Ticks
		if a.Verbose {
			log.Debugf("analyze: gate %03d saw %d values in %d steps", gate.Ip, len(trace.Values), trace.Steps)
		}
	}()

	for step := 0; ; step++ {
		ins, ok := c.Fetch()
		if !ok {
			trace.Halted = true
			return
		}

		if a.MaxSteps > 0 && step >= a.MaxSteps {
			trace.Exhausted = true
			return
		}

		if c.Pc != gate.Ip || ins.Op != cpu.OP_EQRR {
			_, err = c.Tick()
			if err != nil {
				return
			}
			continue
		}

		value := c.Register[gate.Register]
		if _, dup := seen[value]; dup {
			trace.Repeated = true
			return
		}
		seen[value] = struct{}{}
		trace.Values = append(trace.Values, value)

		if a.Verbose {
			log.Debugf("analyze: step %d gate value %d", step, value)
		}

		_, err = c.Force(0)
		if err != nil {
			return
		}
	}
}
