package main

import (
	"fmt"
	"io"

	"github.com/ezrec/asm14/asm"
	"github.com/ezrec/asm14/driver"
	"github.com/ezrec/asm14/translate"
)

// ErrFailed is the number of source files that did not assemble.
type ErrFailed int

func (err ErrFailed) Error() string {
	return translate.From("%d file(s) failed", int(err))
}

const (
	colorReset   = "\033[0m"
	colorError   = "\033[1;31m"
	colorWarning = "\033[1;33m"
	colorLine    = "\033[1;35m"
)

// reporter prints driver results.
type reporter struct {
	Output  io.Writer // Diagnostics.
	Symbols io.Writer // Symbol table dumps.
	Color   bool      // Use ANSI colors.
	Dump    bool      // Dump symbol tables of assembled files.

	Failed int // Results with an error.
}

func (rep *reporter) paint(color, text string) string {
	if !rep.Color {
		return text
	}
	return color + text + colorReset
}

// Diagnostic prints one diagnostic and its source line.
func (rep *reporter) Diagnostic(diag asm.Diagnostic) {
	color := colorError
	if diag.Severity == asm.SEVERITY_WARNING {
		color = colorWarning
	}
	fmt.Fprintf(rep.Output, "%v:%d: %s %v\n", diag.File, diag.LineNo, rep.paint(color, diag.Severity.String()+":"), diag.Err)
	if len(diag.Line) != 0 {
		fmt.Fprintf(rep.Output, "\t%s %s\n", rep.paint(colorLine, ">"), diag.Line)
	}
}

// Report prints the diagnostics of a result, and its symbol table when requested.
// A failure without error diagnostics is printed as its error.
func (rep *reporter) Report(res *driver.Result) {
	diagnosed := false
	for _, diag := range res.Diagnostics {
		rep.Diagnostic(diag)
		if diag.Severity == asm.SEVERITY_ERROR {
			diagnosed = true
		}
	}

	if res.Err != nil {
		rep.Failed++
		if !diagnosed {
			fmt.Fprintf(rep.Output, "%s %v\n", rep.paint(colorError, asm.SEVERITY_ERROR.String()+":"), res.Err)
		}
	}

	if rep.Dump && res.Program != nil && res.Symbols != nil {
		fmt.Fprintf(rep.Symbols, "%v:\n", res.Name)
		err := res.Symbols.Dump(rep.Symbols, rep.Color)
		if err != nil {
			fmt.Fprintf(rep.Output, "%v: %v\n", res.Name, err)
		}
	}
}
