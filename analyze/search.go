package analyze

import (
	"iter"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/regvm/cpu"
)

// Range iterates over [from, to).
func Range(from, to int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := from; n < to; n++ {
			if !yield(n) {
				return
			}
		}
	}
}

// Count iterates upwards from 'from' without end.
func Count(from int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := from; ; n++ {
			if !yield(n) {
				return
			}
		}
	}
}

// Search seeds register reg with each candidate in turn, and returns the
// first candidate whose cycle detection result is accepted. Every attempt
// runs on its own copy of the program and registers.
func (a *Analyzer) Search(prog *cpu.Program, registers []int, reg int, candidates iter.Seq[int], accept func(res *Result) bool) (value int, res *Result, err error) {
	if reg < 0 || reg >= len(registers) {
		err = ErrSearchRegister
		return
	}

	for candidate := range candidates {
		seeded := slices.Clone(registers)
		seeded[reg] = candidate

		res, err = a.Run(prog, seeded)
		if err != nil {
			return
		}

		if a.Verbose {
			log.Debugf("analyze: r%d=%d %v outputs %v", reg, candidate, res.Outcome, res.CycleOutputs())
		}

		if accept(res) {
			value = candidate
			return
		}
	}

	res = nil
	err = ErrSearchExhausted

	return
}

// Alternating accepts a result whose program emits 0, 1, 0, 1, ... forever:
// every output alternates starting from 0, and the repeating part of the
// output is a whole number of 0, 1 pairs.
func Alternating(res *Result) bool {
	if res.Outcome != OUTCOME_CYCLE || len(res.Outputs) == 0 {
		return false
	}

	for n, value := range res.Outputs {
		if value != n%2 {
			return false
		}
	}

	cycle := res.CycleOutputs()

	return len(cycle) > 0 && len(cycle)%2 == 0
}
