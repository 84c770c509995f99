// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"slices"
)

const (
	BASE_ADDRESS    = 100                 // Default address of the first instruction.
	LINE_LENGTH_MAX = 80                  // Default maximum significant characters per line.
	ADDRESS_LIMIT   = int(FIELD_MASK) + 1 // Addressable memory cells.
)

// Assembler is a two pass assembler for the 14-bit teaching CPU.
type Assembler struct {
	Verbose       bool   // If set, verbosely logs the assembler actions.
	File          string // File name used in diagnostics.
	BaseAddress   int    // Address of the first instruction; zero selects BASE_ADDRESS.
	LineLengthMax int    // Maximum line length; zero selects LINE_LENGTH_MAX.

	Symbols     *SymbolTable // Symbol table of the last assembly.
	Diagnostics []Diagnostic // Diagnostics of the last assembly, in pass order.

	predefine map[string]int // Predefined constants.
}

// Predefine defines a constant visible to the whole compilation unit.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse assembles the lines of an input stream.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var texts []string
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err = asm.Assemble(texts)
	return
}

// Assemble validates, allocates and encodes a macro expanded source.
// If any error is found, the returned error is an ErrDiagnostics of every
// error found, and no program is returned.
func (asm *Assembler) Assemble(texts []string) (prog *Program, err error) {
	base := asm.BaseAddress
	if base == 0 {
		base = BASE_ADDRESS
	}
	lineMax := asm.LineLengthMax
	if lineMax == 0 {
		lineMax = LINE_LENGTH_MAX
	}

	lines := NewLines(texts)
	if asm.Verbose {
		for _, line := range lines {
			log.Printf("asm: %v:%d: %v: %v", asm.File, line.LineNo, line.Command, line.Text)
		}
	}

	asm.Symbols = NewSymbolTable()
	v := newValidator(asm.File, lineMax, asm.Symbols)
	v.Verbose = asm.Verbose

	for _, name := range slices.Sorted(maps.Keys(asm.predefine)) {
		perr := v.predefine(name, asm.predefine[name])
		if perr != nil {
			v.report(&Line{Text: name}, perr)
		}
	}

	v.checkDirectives(lines)
	v.checkLinkage(lines)
	v.checkInstructions(lines)

	asm.Diagnostics = v.diags
	if v.foundError {
		err = v.errors()
		return
	}

	al := &allocator{symbols: asm.Symbols, current: base}
	al.allocateInstructions(lines)
	al.allocateDirectives(lines)

	if al.current > ADDRESS_LIMIT {
		err = ErrProgramSize
		return
	}

	prog = &Program{}
	enc := &encoder{symbols: asm.Symbols, prog: prog}
	enc.encode(lines)

	if asm.Verbose {
		log.Printf("asm: %v: %d instruction cells, %d data cells", asm.File, len(prog.Code), len(prog.Data))
	}

	return
}
