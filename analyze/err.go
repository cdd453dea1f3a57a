package analyze

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	ErrOutputRegister  = errors.New(f("output register invalid"))
	ErrSearchRegister  = errors.New(f("search register invalid"))
	ErrSearchExhausted = errors.New(f("no candidate accepted"))
	ErrNoGate          = errors.New(f("no eqrr instruction compares against r0"))
)
