package asm

import (
	"iter"
	"slices"

	"github.com/ezrec/asm14/internal"
)

// Cell is one encoded memory cell.
type Cell struct {
	Address int
	Word    Word
	LineNo  int // Source line that produced the cell.
}

// Reference is an entry definition or an extern usage.
type Reference struct {
	Name    string
	Link    Link
	Address int
}

// Program is an assembled compilation unit.
type Program struct {
	Code    []Cell      // Instruction cells, in address order.
	Data    []Cell      // Directive cells, in address order.
	Entries []Reference // Entry definitions.
	Externs []Reference // Extern usages.

	DeclaresEntry  bool // Unit has at least one .entry.
	DeclaresExtern bool // Unit has at least one .extern.
}

// Cells returns every memory cell, instructions first then data.
func (prog *Program) Cells() iter.Seq2[int, Word] {
	cells := func(list []Cell) iter.Seq2[int, Word] {
		return func(yield func(address int, word Word) bool) {
			for _, cell := range list {
				if !yield(cell.Address, cell.Word) {
					return
				}
			}
		}
	}
	return internal.IterSeq2Concat(cells(prog.Code), cells(prog.Data))
}

// Lookup finds the cell at an address.
func (prog *Program) Lookup(address int) (cell Cell, ok bool) {
	for _, list := range [][]Cell{prog.Code, prog.Data} {
		n, found := slices.BinarySearchFunc(list, address, func(c Cell, a int) int {
			return c.Address - a
		})
		if found {
			cell = list[n]
			ok = true
			return
		}
	}
	return
}
