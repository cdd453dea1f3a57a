package analyze

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/regvm/cpu"
)

// Outcome is how an analysis ended.
type Outcome int

const (
	OUTCOME_HALTED    = Outcome(0) // halted
	OUTCOME_CYCLE     = Outcome(1) // cycle
	OUTCOME_EXHAUSTED = Outcome(2) // exhausted
)

func (outcome Outcome) String() string {
	switch outcome {
	case OUTCOME_HALTED:
		return "halted"
	case OUTCOME_CYCLE:
		return "cycle"
	case OUTCOME_EXHAUSTED:
		return "exhausted"
	}
	return "Outcome(?)"
}

// Analyzer runs programs while watching for repeated machine states.
type Analyzer struct {
	Verbose        bool            // If set, logs analysis progress.
	MaxSteps       int             // Step budget, or 0 for no limit.
	OutputRegister int             // Register whose writes are recorded, or -1.
	Toggle         cpu.ToggleTable // Toggle pairing, or nil for the default.
}

// NewAnalyzer creates an analyzer with no step limit and no output register.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		OutputRegister: -1,
	}
}

// Result of a cycle detection run.
type Result struct {
	Outcome  Outcome
	Steps    int   // Instructions executed.
	Register []int // Registers when the run ended.

	CycleStart  int // Step of the first occurrence of the repeated state.
	CycleLength int // Steps between the first occurrence and the repeat.

	Outputs     []int // Every value written to the output register.
	OutputSteps []int // Step of each output.
}

// CycleOutputs returns the outputs produced between the first occurrence
// of the repeated state and the repeat.
func (res *Result) CycleOutputs() (outputs []int) {
	if res.Outcome != OUTCOME_CYCLE {
		return
	}

	for n, step := range res.OutputSteps {
		if step >= res.CycleStart {
			outputs = append(outputs, res.Outputs[n])
		}
	}

	return
}

// LastOutput returns the last output produced inside the cycle.
func (res *Result) LastOutput() (value int, ok bool) {
	outputs := res.CycleOutputs()
	if len(outputs) == 0 {
		return
	}

	return outputs[len(outputs)-1], true
}

// newCpu creates a CPU over private copies of the program and registers.
func (a *Analyzer) newCpu(prog *cpu.Program, registers []int) (c *cpu.Cpu, err error) {
	c, err = cpu.NewCpu(prog.Clone(), slices.Clone(registers))
	if err != nil {
		return
	}

	c.Verbose = a.Verbose
	if a.Toggle != nil {
		c.Toggle = a.Toggle
	}

	return
}

// Run executes the program until it halts, a machine state repeats, or the
// step budget is spent. The program and registers are not modified.
func (a *Analyzer) Run(prog *cpu.Program, registers []int) (res *Result, err error) {
	c, err := a.newCpu(prog, registers)
	if err != nil {
		return
	}

	out := a.OutputRegister
	if out >= len(registers) {
		err = ErrOutputRegister
		return
	}

	res = &Result{}
	seen := NewSnapshotSet()

	defer func() {
		res.Steps = c.Ticks
		res.Register = c.Register
		if a.Verbose {
			log.Debugf("analyze: %v after %d steps, %d states", res.Outcome, res.Steps, seen.Len())
		}
	}()

	for step := 0; ; step++ {
		if c.Halted() {
			res.Outcome = OUTCOME_HALTED
			return
		}

		if a.MaxSteps > 0 && step >= a.MaxSteps {
			res.Outcome = OUTCOME_EXHAUSTED
			return
		}

		first, repeated := seen.Insert(Capture(c), step)
		if repeated {
			res.Outcome = OUTCOME_CYCLE
			res.CycleStart = first
			res.CycleLength = step - first
			return
		}

		_, err = c.Tick()
		if err != nil {
			return
		}

		if out >= 0 && c.Wrote == out {
			value := c.Register[out]
			if a.Verbose {
				log.Debugf("analyze: step %d output %d", step, value)
			}
			res.Outputs = append(res.Outputs, value)
			res.OutputSteps = append(res.OutputSteps, step)
		}
	}
}
