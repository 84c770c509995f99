package asm

import (
	"strings"
)

// Mode is an operand addressing mode, numbered as it is encoded.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE = Mode(0) // immediate
	MODE_DIRECT    = Mode(1) // direct
	MODE_INDEXED   = Mode(2) // indexed
	MODE_REGISTER  = Mode(3) // register
)

// Words returns the number of extra memory cells an operand in this mode uses.
func (mode Mode) Words() int {
	if mode == MODE_INDEXED {
		return 2
	}
	return 1
}

// ModeSet is a set of addressing modes.
type ModeSet uint8

const (
	MODES_NONE     = ModeSet(0)
	MODES_ALL      = ModeSet(1<<MODE_IMMEDIATE | 1<<MODE_DIRECT | 1<<MODE_INDEXED | 1<<MODE_REGISTER)
	MODES_WRITABLE = ModeSet(1<<MODE_DIRECT | 1<<MODE_INDEXED | 1<<MODE_REGISTER)
	MODES_MEMORY   = ModeSet(1<<MODE_DIRECT | 1<<MODE_INDEXED)
	MODES_JUMP     = ModeSet(1<<MODE_DIRECT | 1<<MODE_REGISTER)
)

// Has returns true if mode is in the set.
func (ms ModeSet) Has(mode Mode) bool {
	return ms&(1<<mode) != 0
}

// Opcode describes the encoding and operand rules of one mnemonic.
type Opcode struct {
	Name   string  // Mnemonic.
	Code   int     // Opcode number, bits 9-6 of the first word.
	Source ModeSet // Legal source modes; empty if there is no source operand.
	Target ModeSet // Legal destination modes; empty if there are no operands.
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	switch {
	case op.Source != MODES_NONE:
		return 2
	case op.Target != MODES_NONE:
		return 1
	default:
		return 0
	}
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"mov": {"mov", 0, MODES_ALL, MODES_WRITABLE},
	"cmp": {"cmp", 1, MODES_ALL, MODES_ALL},
	"add": {"add", 2, MODES_ALL, MODES_WRITABLE},
	"sub": {"sub", 3, MODES_ALL, MODES_WRITABLE},
	"not": {"not", 4, MODES_NONE, MODES_WRITABLE},
	"clr": {"clr", 5, MODES_NONE, MODES_WRITABLE},
	"lea": {"lea", 6, MODES_MEMORY, MODES_WRITABLE},
	"inc": {"inc", 7, MODES_NONE, MODES_WRITABLE},
	"dec": {"dec", 8, MODES_NONE, MODES_WRITABLE},
	"jmp": {"jmp", 9, MODES_NONE, MODES_JUMP},
	"bne": {"bne", 10, MODES_NONE, MODES_JUMP},
	"red": {"red", 11, MODES_NONE, MODES_WRITABLE},
	"prn": {"prn", 12, MODES_NONE, MODES_ALL},
	"jsr": {"jsr", 13, MODES_NONE, MODES_JUMP},
	"rts": {"rts", 14, MODES_NONE, MODES_NONE},
	"hlt": {"hlt", 15, MODES_NONE, MODES_NONE},
}

// LookupOpcode finds an opcode by mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodeMap[strings.ToLower(mnemonic)]
	return
}

// registerMap maps register names to register numbers.
var registerMap = map[string]int{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
}

// keywordMap is the set of directive and macro keywords.
var keywordMap = map[string]bool{
	"data":   true,
	"string": true,
	"entry":  true,
	"extern": true,
	"define": true,
	"mcr":    true,
	"endmcr": true,
}

// Reserved returns true if word is an opcode, register, directive
// or macro keyword, and so cannot name a symbol or macro.
func Reserved(word string) bool {
	if _, ok := LookupOpcode(word); ok {
		return true
	}
	if _, ok := registerMap[word]; ok {
		return true
	}
	return keywordMap[strings.TrimPrefix(word, ".")]
}
