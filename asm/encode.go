package asm

import (
	"log"
)

// encoder emits the memory cells of allocated lines.
type encoder struct {
	symbols *SymbolTable
	prog    *Program
}

// must panics on an encoding error of validated input.
func must(line *Line, word Word, err error) Word {
	if err != nil {
		log.Panicf("asm: line %d: encode: %v", line.LineNo, err)
	}
	return word
}

// encode emits every line.
func (enc *encoder) encode(lines []Line) {
	enc.prog.DeclaresEntry = enc.symbols.HasLink(LINK_ENTRY)
	enc.prog.DeclaresExtern = enc.symbols.HasLink(LINK_EXTERN)

	for n := range lines {
		line := &lines[n]
		switch line.Command {
		case COMMAND_INSTRUCTION:
			enc.encodeInstruction(line)
		case COMMAND_DATA, COMMAND_STRING:
			enc.encodeDirective(line)
		default:
			continue
		}

		if line.HasLabel {
			if link, ok := enc.symbols.Link(line.Label); ok && link == LINK_ENTRY {
				enc.prog.Entries = append(enc.prog.Entries, Reference{
					Name:    line.Label,
					Link:    LINK_ENTRY,
					Address: line.Address,
				})
			}
		}
	}
}

// encodeDirective emits one cell per data value.
func (enc *encoder) encodeDirective(line *Line) {
	for n, value := range line.Data {
		word, err := MakeWord(value, WORD_BITS)
		enc.prog.Data = append(enc.prog.Data, Cell{
			Address: line.Address + n,
			Word:    must(line, word, err),
			LineNo:  line.LineNo,
		})
	}
}

// encodeInstruction emits the first word and the operand words of an instruction.
func (enc *encoder) encodeInstruction(line *Line) {
	operands := resolveAll(line, enc.symbols)

	var src, dst Mode
	switch len(operands) {
	case 1:
		dst = operands[0].Mode
	case 2:
		src = operands[0].Mode
		dst = operands[1].Mode
	}

	words := []Word{MakeFirst(line.Opcode, src, dst)}
	if len(operands) == 2 && src == MODE_REGISTER && dst == MODE_REGISTER {
		words = append(words, MakeRegisters(operands[0].Register, operands[1].Register))
	} else {
		for n, operand := range operands {
			source := len(operands) == 2 && n == 0
			words = append(words, enc.operandWords(line, operand, source, line.Address+len(words))...)
		}
	}

	if len(words) != line.Words {
		log.Panicf("asm: line %d: encoded %d words, allocated %d", line.LineNo, len(words), line.Words)
	}

	for n, word := range words {
		enc.prog.Code = append(enc.prog.Code, Cell{
			Address: line.Address + n,
			Word:    word,
			LineNo:  line.LineNo,
		})
	}
}

// operandWords encodes one operand, placed at address.
func (enc *encoder) operandWords(line *Line, operand Operand, source bool, address int) (words []Word) {
	switch operand.Mode {
	case MODE_IMMEDIATE:
		word, err := MakeField(operand.Value, ARE_ABSOLUTE)
		words = append(words, must(line, word, err))
	case MODE_DIRECT:
		words = append(words, enc.reference(line, operand, address))
	case MODE_INDEXED:
		words = append(words, enc.reference(line, operand, address))
		word, err := MakeField(operand.Index, ARE_ABSOLUTE)
		words = append(words, must(line, word, err))
	case MODE_REGISTER:
		if source {
			words = append(words, MakeRegisters(operand.Register, 0))
		} else {
			words = append(words, MakeRegisters(0, operand.Register))
		}
	}
	return
}

// reference encodes the address word of a direct or indexed operand.
func (enc *encoder) reference(line *Line, operand Operand, address int) Word {
	if operand.External {
		enc.prog.Externs = append(enc.prog.Externs, Reference{
			Name:    operand.Symbol,
			Link:    LINK_EXTERN,
			Address: address,
		})
		word, err := MakeAddress(0, ARE_EXTERNAL)
		return must(line, word, err)
	}

	word, err := MakeAddress(operand.Address, ARE_RELOCATABLE)
	return must(line, word, err)
}
