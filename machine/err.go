package machine

import (
	"errors"

	"github.com/ezrec/fractran/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrProgramInvalid     = errors.New(f("program invalid"))
	ErrStartInvalid       = errors.New(f("starting value invalid"))
	ErrNumeratorInvalid   = errors.New(f("numerator invalid"))
	ErrDenominatorInvalid = errors.New(f("denominator invalid"))

	// Parser errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))

	// Register derivation errors
	ErrRegisterRange = errors.New(f("register prime out of range"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
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
