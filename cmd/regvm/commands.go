package main

import (
	"fmt"
	"iter"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/ezrec/regvm/analyze"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] listing",
	Short: "Run a listing until it halts.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, registers, err := loadEmulator(cmd, args[0])
		if err != nil {
			return
		}

		err = emu.Reset(registers)
		if err != nil {
			return
		}

		err = emu.Run()
		if err != nil {
			return
		}

		tree := treeprint.NewWithRoot(args[0])
		tree.AddMetaNode("ticks", emu.Ticks())
		addRegisters(tree, emu.Cpu.Register)

		fmt.Fprint(cmd.OutOrStdout(), tree.String())

		return
	},
}

var cycleCmd = &cobra.Command{
	Use:   "cycle [flags] listing",
	Short: "Run a listing until it halts or repeats a state.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, registers, err := loadEmulator(cmd, args[0])
		if err != nil {
			return
		}

		res, err := analyzerOf(cmd).Run(emu.Program, registers)
		if err != nil {
			return
		}

		tree := treeprint.NewWithRoot(args[0])
		addResult(tree, res)

		fmt.Fprint(cmd.OutOrStdout(), tree.String())

		return
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [flags] listing",
	Short: "List the r0 values that would halt a listing, in halting order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, registers, err := loadEmulator(cmd, args[0])
		if err != nil {
			return
		}

		trace, err := analyzerOf(cmd).Extract(emu.Program, registers)
		if err != nil {
			return
		}

		tree := treeprint.NewWithRoot(args[0])
		gate := tree.AddBranch("gate")
		gate.AddMetaNode("ip", trace.Gate.Ip)
		gate.AddMetaNode("register", fmt.Sprintf("r%d", trace.Gate.Register))

		switch {
		case trace.Repeated:
			tree.AddMetaNode("stop", "repeated")
		case trace.Halted:
			tree.AddMetaNode("stop", "halted")
		case trace.Exhausted:
			tree.AddMetaNode("stop", "exhausted")
		}
		tree.AddMetaNode("steps", trace.Steps)
		tree.AddMetaNode("values", len(trace.Values))

		if first, ok := trace.First(); ok {
			tree.AddMetaNode("fewest", first)
		}
		if last, ok := trace.Last(); ok {
			tree.AddMetaNode("most", last)
		}

		fmt.Fprint(cmd.OutOrStdout(), tree.String())

		return
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [flags] listing",
	Short: "Find the smallest seed whose output alternates 0, 1 forever.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, registers, err := loadEmulator(cmd, args[0])
		if err != nil {
			return
		}

		from := getInt(cmd, "from")
		to := getInt(cmd, "to")

		var candidates iter.Seq[int]
		if to > 0 {
			candidates = analyze.Range(from, to)
		} else {
			candidates = analyze.Count(from)
		}

		reg := getInt(cmd, "register")
		value, res, err := analyzerOf(cmd).Search(emu.Program, registers, reg, candidates, analyze.Alternating)
		if err != nil {
			return
		}

		tree := treeprint.NewWithRoot(args[0])
		tree.AddMetaNode(fmt.Sprintf("r%d", reg), value)
		addResult(tree, res)

		fmt.Fprint(cmd.OutOrStdout(), tree.String())

		return
	},
}

var definesCmd = &cobra.Command{
	Use:   "defines",
	Short: "List the equates available to listings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, err := newEmulator(cmd)
		if err != nil {
			return
		}

		for key, value := range emu.Defines() {
			fmt.Fprintf(cmd.OutOrStdout(), "%v=%v\n", key, value)
		}

		return
	},
}

// addRegisters adds a branch listing a register file.
func addRegisters(tree treeprint.Tree, registers []int) {
	branch := tree.AddBranch("registers")
	for n, value := range registers {
		branch.AddMetaNode(fmt.Sprintf("r%d", n), value)
	}
}

// addResult adds the details of an analysis result.
func addResult(tree treeprint.Tree, res *analyze.Result) {
	tree.AddMetaNode("outcome", res.Outcome)
	tree.AddMetaNode("steps", res.Steps)

	if res.Outcome == analyze.OUTCOME_CYCLE {
		cycle := tree.AddBranch("cycle")
		cycle.AddMetaNode("start", res.CycleStart)
		cycle.AddMetaNode("length", res.CycleLength)
		if outputs := res.CycleOutputs(); len(outputs) > 0 {
			cycle.AddMetaNode("outputs", fmt.Sprint(outputs))
		}
	}

	if len(res.Outputs) > 0 {
		tree.AddMetaNode("outputs", fmt.Sprint(res.Outputs))
	}

	addRegisters(tree, res.Register)
}
