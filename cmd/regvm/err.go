package main

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	ErrAssignment    = errors.New(f("expected NAME=VALUE"))
	ErrRegisterCount = errors.New(f("register count must be at least one"))
	ErrSetRegister   = errors.New(f("register out of range"))
	ErrStdinTerminal = errors.New(f("refusing to read a listing from a terminal"))
)
