package asm

import (
	"strconv"
	"strings"
)

// Operand is a resolved instruction operand.
type Operand struct {
	Mode     Mode
	Text     string // Cleaned operand text.
	Symbol   string // Label of a direct or indexed operand.
	External bool   // Symbol is declared .extern.
	Value    int    // Immediate value.
	Index    int    // Index of an indexed operand.
	Address  int    // Address of a local direct or indexed operand.
	Register int    // Register number.
}

// ParseInteger parses a signed decimal integer literal.
func ParseInteger(text string) (value int, err error) {
	digits := strings.TrimLeft(text, "+-")
	if len(text)-len(digits) > 1 || len(digits) == 0 || strings.Trim(digits, "0123456789") != "" {
		err = ErrParseNumber(text)
		return
	}

	value, err = strconv.Atoi(text)
	if err != nil {
		err = ErrParseNumber(text)
	}

	return
}

// ValueOf parses an integer literal or the name of a constant.
func (st *SymbolTable) ValueOf(text string) (value int, err error) {
	value, err = ParseInteger(text)
	if err == nil {
		return
	}

	sym, ok := st.Lookup(text)
	if !ok || sym.Kind != KIND_CONSTANT {
		err = ErrConstantMissing(text)
		return
	}

	value = sym.Value
	err = nil
	return
}

// Resolve determines the addressing mode of an operand.
func Resolve(text string, symbols *SymbolTable) (op Operand, err error) {
	text = Clean(text)
	op.Text = text

	if value, ok := strings.CutPrefix(text, "#"); ok {
		op.Mode = MODE_IMMEDIATE
		op.Value, err = symbols.ValueOf(value)
		return
	}

	if sym, ok := symbols.Lookup(text); ok && sym.Kind.Label() {
		op.Mode = MODE_DIRECT
		op.Symbol = text
		op.Address = sym.Address
		return
	}

	if link, ok := symbols.Link(text); ok {
		op.Mode = MODE_DIRECT
		op.Symbol = text
		op.External = link == LINK_EXTERN
		return
	}

	open := strings.IndexByte(text, '[')
	if open >= 0 && strings.IndexByte(text, ']') > open {
		if !strings.HasSuffix(text, "]") {
			err = ErrAddressingInvalid
			return
		}
		base := strings.TrimSpace(text[:open])
		index := strings.TrimSpace(text[open+1 : len(text)-1])

		op.Mode = MODE_INDEXED
		op.Symbol = base
		op.Index, err = symbols.ValueOf(index)
		if err != nil {
			return
		}

		if sym, ok := symbols.Lookup(base); ok && sym.Kind.Directive() {
			if op.Index < 0 || op.Index >= sym.Size {
				err = ErrIndexOverflow{Name: base, Index: op.Index, Size: sym.Size}
				return
			}
			op.Address = sym.Address
			return
		}

		if link, ok := symbols.Link(base); ok && link == LINK_EXTERN {
			op.External = true
			return
		}

		err = ErrLabelMissing(base)
		return
	}

	if reg, ok := registerMap[text]; ok {
		op.Mode = MODE_REGISTER
		op.Register = reg
		return
	}

	err = ErrAddressingInvalid
	return
}
