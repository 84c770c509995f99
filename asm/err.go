package asm

import (
	"errors"

	"github.com/ezrec/asm14/translate"
)

var f = translate.From

var (
	// Line errors
	ErrLineLength         = errors.New(f("line too long"))
	ErrLabelLonely        = errors.New(f("label without statement"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))

	// Symbol name errors
	ErrNameLength    = errors.New(f("name too long"))
	ErrNameSyntax    = errors.New(f("name syntax"))
	ErrNameReserved  = errors.New(f("name is a reserved word"))
	ErrNameDuplicate = errors.New(f("name duplicated"))
	ErrNameExtern    = errors.New(f("name declared .extern"))

	// List errors
	ErrCommaLeading  = errors.New(f("leading comma"))
	ErrCommaTrailing = errors.New(f("trailing comma"))
	ErrCommaDouble   = errors.New(f("consecutive commas"))
	ErrCommaMissing  = errors.New(f("missing comma"))

	// Directive errors
	ErrDataEmpty       = errors.New(f(".data without values"))
	ErrStringEmpty     = errors.New(f(".string without value"))
	ErrStringQuotes    = errors.New(f(".string requires one quoted string"))
	ErrStringCharacter = errors.New(f(".string character not printable"))
	ErrDefineLabel     = errors.New(f(".define cannot be labelled"))
	ErrDefineSyntax    = errors.New(f(".define syntax"))
	ErrLinkEmpty       = errors.New(f("linkage without a name"))
	ErrLinkExtraArgs   = errors.New(f("linkage with excessive arguments"))
	ErrLinkLabel       = errors.New(f("label before linkage ignored"))
	ErrLinkConflict    = errors.New(f("name declared both .entry and .extern"))
	ErrEntryConstant   = errors.New(f(".entry of a constant"))
	ErrExternLocal     = errors.New(f(".extern of a local name"))

	// Instruction errors
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrOperandExtraArgs  = errors.New(f("excessive operands"))
	ErrAddressingInvalid = errors.New(f("addressing mode undefined"))

	// Program errors
	ErrProgramSize = errors.New(f("program exceeds addressable memory"))
)

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

type ErrConstantMissing string

func (err ErrConstantMissing) Error() string {
	return f("constant %v missing", string(err))
}

type ErrEntryMissing string

func (err ErrEntryMissing) Error() string {
	return f(".entry %v has no definition", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrWordWidth int

func (err ErrWordWidth) Error() string {
	return f("word width %d invalid", int(err))
}

type ErrValueRange struct {
	Value int
	Bits  int
}

func (err ErrValueRange) Error() string {
	return f("value %d does not fit in %d bits", err.Value, err.Bits)
}

type ErrIndexOverflow struct {
	Name  string
	Index int
	Size  int
}

func (err ErrIndexOverflow) Error() string {
	return f("index %d out of bounds for %v[%d]", err.Index, err.Name, err.Size)
}

type ErrModeIllegal struct {
	Opcode string
	Mode   Mode
	Source bool
}

func (err ErrModeIllegal) Error() string {
	if err.Source {
		return f("%v does not accept %v source operand", err.Opcode, err.Mode)
	}
	return f("%v does not accept %v destination operand", err.Opcode, err.Mode)
}

// Severity is the severity of a diagnostic.
type Severity int

//go:generate go tool stringer -linecomment -type=Severity
const (
	SEVERITY_ERROR   = Severity(0) // error
	SEVERITY_WARNING = Severity(1) // warning
)

// Diagnostic is a problem found on one source line.
type Diagnostic struct {
	File     string
	LineNo   int
	Line     string
	Severity Severity
	Err      error
}

func (diag Diagnostic) Error() string {
	return f("%v:%d: %v: %v", diag.File, diag.LineNo, diag.Severity, diag.Err)
}

func (diag Diagnostic) Unwrap() error {
	return diag.Err
}

// ErrDiagnostics is the set of error diagnostics that stopped an assembly.
type ErrDiagnostics []Diagnostic

func (err ErrDiagnostics) Error() string {
	switch len(err) {
	case 0:
		return f("no diagnostics")
	case 1:
		return err[0].Error()
	}
	return f("%v (and %d more errors)", err[0].Error(), len(err)-1)
}

func (err ErrDiagnostics) Unwrap() (errs []error) {
	for _, diag := range err {
		errs = append(errs, diag)
	}
	return
}
