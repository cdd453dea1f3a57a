package cpu

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpRegister      = errors.New(f("ip register invalid"))
	ErrRegisterWidth   = errors.New(f("register file empty"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrToggleTable     = errors.New(f("toggle table not an involution"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeAlu    = errors.New(f("alu"))
	ErrOpcodeArg1   = errors.New(f("arg1"))
	ErrOpcodeArg2   = errors.New(f("arg2"))
	ErrOpcodeArg3   = errors.New(f("arg3"))

	// Assembler errors
	ErrDirectiveSyntax    = errors.New(f("#ip syntax"))
	ErrDirectiveDuplicate = errors.New(f("#ip duplicated"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrInstruction locates a fault in a program.
type ErrInstruction struct {
	Ip  int
	Err error
}

func (err *ErrInstruction) Error() string {
	return f("ip %d %v", err.Ip, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
