// Package preproc expands the mcr/endmcr text macros of an assembly source.
package preproc

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/ezrec/asm14/asm"
)

const (
	KEYWORD_MACRO = "mcr"
	KEYWORD_END   = "endmcr"
)

// Macro is a macro definition.
type Macro struct {
	LineNo int      // Line number of the definition.
	Lines  []string // Lines of macro text to expand.
}

// Expander replaces macro invocations with the macro text.
type Expander struct {
	Verbose bool              // If set, verbosely logs the expansions.
	Macro   map[string]*Macro // Macros of the last expansion.
}

// validName returns true if name starts with a letter, and continues with
// letters, digits or underscores.
func validName(name string) bool {
	for n, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case n > 0 && (r == '_' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return len(name) > 0
}

// Expand reads an input stream, and returns the lines with every macro
// definition removed and every invocation replaced by the macro text.
func (exp *Expander) Expand(input io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int
	var name string
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	exp.Macro = make(map[string]*Macro)

	for scanner.Scan() {
		text = scanner.Text()
		lineno++

		words := strings.Fields(text)
		keyword := ""
		if len(words) > 0 {
			keyword = words[0]
		}

		switch keyword {
		case KEYWORD_MACRO:
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) != 2 || !validName(words[1]) {
				err = ErrMacroSyntax
				return
			}
			name = words[1]
			if asm.Reserved(name) {
				err = ErrMacroReserved
				return
			}
			if _, ok := exp.Macro[name]; ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{LineNo: lineno + 1}
			exp.Macro[name] = macro
			continue
		case KEYWORD_END:
			if macro == nil {
				err = ErrMacroLonelyEnd
				return
			}
			if len(words) != 1 {
				err = ErrMacroSyntax
				return
			}
			if exp.Verbose {
				log.Printf("preproc: %d: mcr %v, %d lines", macro.LineNo-1, name, len(macro.Lines))
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, text)
			continue
		}

		if len(words) == 1 {
			if body, ok := exp.Macro[keyword]; ok {
				if exp.Verbose {
					log.Printf("preproc: %d: expand %v", lineno, keyword)
				}
				lines = append(lines, body.Lines...)
				continue
			}
		}

		lines = append(lines, text)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		text = KEYWORD_MACRO + " " + name
		lineno = macro.LineNo - 1
		err = ErrMacroLonely
		return
	}

	return
}
