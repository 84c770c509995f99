package preproc

import (
	"errors"

	"github.com/ezrec/asm14/translate"
)

var f = translate.From

var (
	ErrMacroSyntax    = errors.New(f("mcr syntax"))
	ErrMacroNesting   = errors.New(f("mcr in mcr prohibited"))
	ErrMacroDuplicate = errors.New(f("mcr duplicated"))
	ErrMacroReserved  = errors.New(f("mcr name is a reserved word"))
	ErrMacroLonely    = errors.New(f("mcr without endmcr"))
	ErrMacroLonelyEnd = errors.New(f("endmcr without mcr"))
)

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
