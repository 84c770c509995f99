package asm

import (
	"strings"
)

// Word is a single memory cell.
type Word uint16

const (
	WORD_BITS  = 14 // Bits per memory cell.
	FIELD_BITS = 12 // Bits of an operand value or address field.

	WORD_MASK  = Word(1<<WORD_BITS - 1)
	FIELD_MASK = Word(1<<FIELD_BITS - 1)
)

// Relocation is the A/R/E field in bits 1-0 of every word.
type Relocation int

const (
	ARE_ABSOLUTE    = Relocation(0) // A
	ARE_EXTERNAL    = Relocation(1) // E
	ARE_RELOCATABLE = Relocation(2) // R
)

// MakeWord encodes value in the low bits of a word as a two's complement integer.
// Values that do not fit in bits are an error.
func MakeWord(value int, bits int) (word Word, err error) {
	if bits < 1 || bits > WORD_BITS {
		err = ErrWordWidth(bits)
		return
	}

	lo := -(1 << (bits - 1))
	hi := 1<<(bits-1) - 1
	if value < lo || value > hi {
		err = ErrValueRange{Value: value, Bits: bits}
		return
	}

	modulus := uint32(1) << bits
	if value < 0 {
		word = Word(modulus - uint32(-value))
	} else {
		word = Word(uint32(value))
	}

	return
}

// Signed decodes the low bits of a word as a two's complement integer.
func (w Word) Signed(bits int) (value int) {
	mask := uint32(1)<<bits - 1
	value = int(uint32(w) & mask)
	if value >= 1<<(bits-1) {
		value -= 1 << bits
	}
	return
}

// Bits renders the low width bits of a word, most significant bit first.
func (w Word) Bits(width int) string {
	var sb strings.Builder
	for bit := width - 1; bit >= 0; bit-- {
		if (w>>bit)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Opcode returns the opcode field of a first instruction word.
func (w Word) Opcode() int {
	return int((w >> 6) & 0xf)
}

// SourceMode returns the source addressing mode of a first instruction word.
func (w Word) SourceMode() Mode {
	return Mode((w >> 4) & 0x3)
}

// TargetMode returns the destination addressing mode of a first instruction word.
func (w Word) TargetMode() Mode {
	return Mode((w >> 2) & 0x3)
}

// Relocation returns the A/R/E field.
func (w Word) Relocation() Relocation {
	return Relocation(w & 0x3)
}

// Field returns the signed value of bits 13-2.
func (w Word) Field() int {
	return (w >> 2).Signed(FIELD_BITS)
}

// Registers returns the source and destination register numbers of a register word.
func (w Word) Registers() (src, dst int) {
	src = int((w >> 5) & 0x7)
	dst = int((w >> 2) & 0x7)
	return
}

// MakeFirst encodes the first word of an instruction.
func MakeFirst(op Opcode, src, dst Mode) Word {
	return Word(op.Code)<<6 | Word(src)<<4 | Word(dst)<<2 | Word(ARE_ABSOLUTE)
}

// MakeField encodes a signed value or address in bits 13-2.
func MakeField(value int, are Relocation) (word Word, err error) {
	field, err := MakeWord(value, FIELD_BITS)
	if err != nil {
		return
	}
	word = field<<2 | Word(are)
	return
}

// MakeAddress encodes an unsigned address in bits 13-2.
func MakeAddress(address int, are Relocation) (word Word, err error) {
	if address < 0 || address > int(FIELD_MASK) {
		err = ErrValueRange{Value: address, Bits: FIELD_BITS}
		return
	}
	word = Word(address)<<2 | Word(are)
	return
}

// MakeRegisters encodes a register operand word.
func MakeRegisters(src, dst int) Word {
	return Word(src&0x7)<<5 | Word(dst&0x7)<<2 | Word(ARE_ABSOLUTE)
}
