// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/regvm/emulator"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("registers", emulator.REGISTERS_DEFAULT, "Number of registers")
	flags.StringArray("set", nil, "Initial register value, as R=V (repeatable)")
	flags.StringArrayP("define", "D", nil, "Assembler equate, as NAME=VALUE (repeatable)")
	flags.Int("max-steps", 0, "Step budget for analysis, 0 for none")
	flags.Int("output", -1, "Register whose writes are recorded as output")
	flags.BoolP("verbose", "v", false, "Verbose mode")

	searchCmd.Flags().Int("register", 0, "Register to seed with each candidate")
	searchCmd.Flags().Int("from", 0, "First candidate")
	searchCmd.Flags().Int("to", 0, "Candidate limit (exclusive), 0 for none")

	rootCmd.AddCommand(runCmd, cycleCmd, extractCmd, searchCmd, definesCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "regvm",
	Short:         "Register machine interpreter and analyzer.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getBool(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}
