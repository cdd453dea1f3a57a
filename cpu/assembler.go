// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var parenExpr = regexp.MustCompile(`\$\([^\$]*\)`)

// asmLine is an instruction line awaiting label resolution.
type asmLine struct {
	LineNo int
	Line   string
	Words  []string
}

// Assembler is a two pass assembler for register machine listings.
//
// Each line holds one instruction, 'op a b c', where missing operands are
// zero. A '#ip N' line binds the instruction pointer to register N. Text
// after ';' is a comment. '.equ NAME VALUE' defines an equate, 'name:'
// defines a label holding the address of the next instruction, and
// '$(expr)' is evaluated at assembly time.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction addresses.
	Equate    map[string]string // Map of equates.

	ipRegister int
	ipLineNo   int
	lines      []asmLine
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// operandOf returns the value of an operand, which may be a label.
func (asm *Assembler) operandOf(word string) (value int, err error) {
	ip, ok := asm.Label[word]
	if ok {
		value = ip
		return
	}

	return asm.valueOf(word)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands a single line into instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = parenExpr.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.lines)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// #ip REGISTER
	if words[0] == "#ip" {
		if len(words) != 2 {
			err = ErrDirectiveSyntax
			return
		}
		if asm.ipLineNo != 0 {
			err = ErrDirectiveDuplicate
			return
		}
		asm.ipRegister, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		asm.ipLineNo = lineno
		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.ipRegister = 0
	asm.ipLineNo = 0
	asm.lines = asm.lines[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Debugf("%v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		asm.lines = append(asm.lines, asmLine{LineNo: lineno, Line: line, Words: words})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		IpRegister: asm.ipRegister,
		Code:       make([]Instruction, 0, len(asm.lines)),
		LineNo:     make([]int, 0, len(asm.lines)),
	}

	// Final linking of jump labels.
	for _, pending := range asm.lines {
		lineno = pending.LineNo
		line = pending.Line

		var ins Instruction
		ins, err = asm.link(pending.Words)
		if err != nil {
			prog = nil
			return
		}

		prog.Code = append(prog.Code, ins)
		prog.LineNo = append(prog.LineNo, pending.LineNo)
	}

	if asm.Verbose {
		log.Debugf("assembled %d instructions, ip bound to r%d", prog.Len(), prog.IpRegister)
	}

	return
}

// link resolves the words of an instruction line.
func (asm *Assembler) link(words []string) (ins Instruction, err error) {
	op, ok := ParseOpcode(words[0])
	if !ok {
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, words[0])
		return
	}

	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	var args [3]int
	for n, word := range words[1:] {
		args[n], err = asm.operandOf(word)
		if err != nil {
			return
		}
	}

	ins = Make(op, args[0], args[1], args[2])

	return
}
