package object

import (
	"errors"

	"github.com/ezrec/asm14/translate"
)

var f = translate.From

var (
	ErrSymbolInvalid = errors.New(f("object symbol invalid"))
	ErrWidthInvalid  = errors.New(f("object width invalid"))
	ErrHeaderInvalid = errors.New(f("object header invalid"))
)

type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrLine) Unwrap() error {
	return err.Err
}
