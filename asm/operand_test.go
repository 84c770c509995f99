package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func operandTable() (st *SymbolTable) {
	st = NewSymbolTable()

	st.Insert(&Symbol{Name: "sz", Kind: KIND_CONSTANT, Value: 2})
	st.Insert(&Symbol{Name: "big", Kind: KIND_CONSTANT, Value: 3})
	st.Insert(&Symbol{Name: "neg", Kind: KIND_CONSTANT, Value: -1})

	list := &Symbol{Name: "LIST", Kind: KIND_DATA, Size: 3}
	list.Place(123)
	st.Insert(list)

	str := &Symbol{Name: "STR", Kind: KIND_STRING, Size: 3}
	str.Place(120)
	st.Insert(str)

	loop := &Symbol{Name: "LOOP", Kind: KIND_INSTRUCTION}
	loop.Place(104)
	st.Insert(loop)

	st.SetLink("W", LINK_EXTERN, 1)
	return
}

func TestParseInteger(t *testing.T) {
	assert := assert.New(t)

	good := map[string]int{"0": 0, "5": 5, "+5": 5, "-5": -5, "007": 7}
	for text, value := range good {
		v, err := ParseInteger(text)
		assert.NoError(err, text)
		assert.Equal(value, v, text)
	}

	for _, text := range []string{"", "+", "-", "--1", "+-1", "1x", "0x10", " 1", "1.5"} {
		_, err := ParseInteger(text)
		assert.ErrorIs(err, ErrParseNumber(text), "%q", text)
	}
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)

	st := operandTable()

	table := []struct {
		text    string
		operand Operand
	}{
		{"#5", Operand{Mode: MODE_IMMEDIATE, Text: "#5", Value: 5}},
		{"#-5", Operand{Mode: MODE_IMMEDIATE, Text: "#-5", Value: -5}},
		{"#sz", Operand{Mode: MODE_IMMEDIATE, Text: "#sz", Value: 2}},
		{"LIST", Operand{Mode: MODE_DIRECT, Text: "LIST", Symbol: "LIST", Address: 123}},
		{"LOOP", Operand{Mode: MODE_DIRECT, Text: "LOOP", Symbol: "LOOP", Address: 104}},
		{"W", Operand{Mode: MODE_DIRECT, Text: "W", Symbol: "W", External: true}},
		{"LIST[sz]", Operand{Mode: MODE_INDEXED, Text: "LIST[sz]", Symbol: "LIST", Index: 2, Address: 123}},
		{"LIST[0]", Operand{Mode: MODE_INDEXED, Text: "LIST[0]", Symbol: "LIST", Index: 0, Address: 123}},
		{"STR[2]", Operand{Mode: MODE_INDEXED, Text: "STR[2]", Symbol: "STR", Index: 2, Address: 120}},
		{"W[40]", Operand{Mode: MODE_INDEXED, Text: "W[40]", Symbol: "W", Index: 40, External: true}},
		{"r0", Operand{Mode: MODE_REGISTER, Text: "r0", Register: 0}},
		{" r7 ", Operand{Mode: MODE_REGISTER, Text: "r7", Register: 7}},
	}

	for _, entry := range table {
		operand, err := Resolve(entry.text, st)
		assert.NoError(err, entry.text)
		assert.Equal(entry.operand, operand, entry.text)
	}
}

func TestResolveErrors(t *testing.T) {
	assert := assert.New(t)

	st := operandTable()

	table := map[string]error{
		"#nope":     ErrConstantMissing("nope"),
		"#":         ErrConstantMissing(""),
		"#LIST":     ErrConstantMissing("LIST"),
		"LIST[big]": ErrIndexOverflow{Name: "LIST", Index: 3, Size: 3},
		"LIST[neg]": ErrIndexOverflow{Name: "LIST", Index: -1, Size: 3},
		"STR[3]":    ErrIndexOverflow{Name: "STR", Index: 3, Size: 3},
		"LIST[x]":   ErrConstantMissing("x"),
		"LOOP[1]":   ErrLabelMissing("LOOP"),
		"NONE[1]":   ErrLabelMissing("NONE"),
		"LIST[1]x":  ErrAddressingInvalid,
		"r8":        ErrAddressingInvalid,
		"sz":        ErrAddressingInvalid,
		"NONE":      ErrAddressingInvalid,
	}

	for text, expected := range table {
		_, err := Resolve(text, st)
		assert.ErrorIs(err, expected, text)
	}
}
