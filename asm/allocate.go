package asm

import (
	"log"
)

// allocator assigns memory addresses to validated lines.
type allocator struct {
	symbols *SymbolTable
	current int // Next free memory address.
	order   int
}

// instructionSize returns the memory cells used by an instruction.
func instructionSize(operands []Operand) (size int) {
	size = 1
	for _, op := range operands {
		size += op.Mode.Words()
	}
	if len(operands) == 2 && operands[0].Mode == MODE_REGISTER && operands[1].Mode == MODE_REGISTER {
		size--
	}
	return
}

// resolveAll resolves the operands of a validated instruction.
func resolveAll(line *Line, symbols *SymbolTable) (operands []Operand) {
	operands = make([]Operand, len(line.Args))
	for n, arg := range line.Args {
		var err error
		operands[n], err = Resolve(arg, symbols)
		if err != nil {
			log.Panicf("asm: line %d: validated operand %q: %v", line.LineNo, arg, err)
		}
	}
	return
}

// allocateInstructions places every instruction, starting at the current address.
func (al *allocator) allocateInstructions(lines []Line) {
	for n := range lines {
		line := &lines[n]
		if line.Command != COMMAND_INSTRUCTION {
			continue
		}

		line.Address = al.current
		line.Words = instructionSize(resolveAll(line, al.symbols))

		if line.HasLabel {
			sym, ok := al.symbols.Lookup(line.Label)
			if !ok {
				log.Panicf("asm: line %d: label %v not registered", line.LineNo, line.Label)
			}
			sym.Kind = KIND_INSTRUCTION
			sym.Size = 0
			sym.Place(al.current)
		}

		al.current += line.Words
	}
}

// allocateDirectives places every data and string directive after the instructions.
func (al *allocator) allocateDirectives(lines []Line) {
	al.order = 0

	for n := range lines {
		line := &lines[n]
		if line.Command != COMMAND_DATA && line.Command != COMMAND_STRING {
			continue
		}

		line.Address = al.current
		line.Words = len(line.Data)

		if line.HasLabel {
			sym, ok := al.symbols.Lookup(line.Label)
			if !ok {
				log.Panicf("asm: line %d: label %v not registered", line.LineNo, line.Label)
			}
			sym.Place(al.current)
			sym.SetOrder(al.order)
		}

		al.order++
		al.current += line.Words
	}
}
