package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/regvm/analyze"
	"github.com/ezrec/regvm/emulator"
)

// Get an expected flag, or exit if an error arises.
func getBool(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected flag, or exit if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected flag, or exit if an error arises.
func getStrings(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// splitAssignment splits 'NAME=VALUE'.
func splitAssignment(text string) (name string, value string, err error) {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !ok || len(name) == 0 || len(value) == 0 {
		err = fmt.Errorf("%w: %q", ErrAssignment, text)
	}
	return
}

// registersOf builds the initial register file from the --set flags.
func registersOf(cmd *cobra.Command, width int) (registers []int, err error) {
	registers = make([]int, width)

	for _, set := range getStrings(cmd, "set") {
		var name, value string
		name, value, err = splitAssignment(set)
		if err != nil {
			return
		}

		var reg, val int64
		reg, err = strconv.ParseInt(strings.TrimPrefix(name, "r"), 0, 64)
		if err != nil {
			return
		}
		if reg < 0 || reg >= int64(width) {
			err = fmt.Errorf("%w: %v", ErrSetRegister, name)
			return
		}

		val, err = strconv.ParseInt(value, 0, 64)
		if err != nil {
			return
		}

		registers[reg] = int(val)
	}

	return
}

var (
	stdin      = os.Stdin
	isTerminal = term.IsTerminal
)

// openInput opens a listing, where '-' is standard input.
func openInput(name string) (input io.ReadCloser, err error) {
	if name != "-" {
		return os.Open(name)
	}

	if isTerminal(int(stdin.Fd())) {
		err = ErrStdinTerminal
		return
	}

	return io.NopCloser(stdin), nil
}

// newEmulator creates an emulator with the command line defines.
func newEmulator(cmd *cobra.Command) (emu *emulator.Emulator, err error) {
	width := getInt(cmd, "registers")
	if width < 1 {
		err = fmt.Errorf("%w: %d", ErrRegisterCount, width)
		return
	}

	emu = emulator.NewEmulator(width)
	emu.Verbose = getBool(cmd, "verbose")

	emu.Equate = map[string]string{}
	for _, define := range getStrings(cmd, "define") {
		var key, value string
		key, value, err = splitAssignment(define)
		if err != nil {
			return
		}
		emu.Equate[key] = value
	}

	return
}

// loadEmulator assembles the listing named on the command line, and
// returns it with the initial registers.
func loadEmulator(cmd *cobra.Command, name string) (emu *emulator.Emulator, registers []int, err error) {
	emu, err = newEmulator(cmd)
	if err != nil {
		return
	}

	input, err := openInput(name)
	if err != nil {
		return
	}
	defer input.Close()

	err = emu.Assemble(input)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
		return
	}

	registers, err = registersOf(cmd, emu.Width)

	return
}

// analyzerOf configures an analyzer from the command line.
func analyzerOf(cmd *cobra.Command) (a *analyze.Analyzer) {
	a = analyze.NewAnalyzer()
	a.Verbose = getBool(cmd, "verbose")
	a.MaxSteps = getInt(cmd, "max-steps")
	a.OutputRegister = getInt(cmd, "output")
	return
}
