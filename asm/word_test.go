package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeWord(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		value int
		bits  int
		word  Word
		err   error
	}{
		{0, 14, 0, nil},
		{1, 14, 1, nil},
		{-1, 14, 0x3fff, nil},
		{-9, 14, 16375, nil},
		{8191, 14, 0x1fff, nil},
		{-8192, 14, 0x2000, nil},
		{8192, 14, 0, ErrValueRange{Value: 8192, Bits: 14}},
		{-8193, 14, 0, ErrValueRange{Value: -8193, Bits: 14}},
		{-5, 12, 4091, nil},
		{2047, 12, 0x7ff, nil},
		{2048, 12, 0, ErrValueRange{Value: 2048, Bits: 12}},
		{0, 0, 0, ErrWordWidth(0)},
		{0, 15, 0, ErrWordWidth(15)},
	}

	for _, entry := range table {
		word, err := MakeWord(entry.value, entry.bits)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, "%d/%d", entry.value, entry.bits)
			continue
		}
		assert.NoError(err)
		assert.Equal(entry.word, word, "%d/%d", entry.value, entry.bits)
	}
}

func FuzzWord(f *testing.F) {
	f.Add(0, 14)
	f.Add(-1, 12)
	f.Add(8191, 14)
	f.Add(-8192, 14)
	f.Add(1, 1)

	f.Fuzz(func(t *testing.T, value int, bits int) {
		assert := assert.New(t)

		word, err := MakeWord(value, bits)
		if err != nil {
			var erange ErrValueRange
			var ewidth ErrWordWidth
			assert.True(errors.As(err, &erange) || errors.As(err, &ewidth))
			return
		}

		assert.Equal(value, word.Signed(bits))
		assert.Equal(Word(0), word>>bits)
		assert.Len(word.Bits(bits), bits)
	})
}

func TestWordBits(t *testing.T) {
	assert := assert.New(t)

	word, err := MakeWord(-5, 12)
	assert.NoError(err)
	assert.Equal("111111111011", word.Bits(12))
	assert.Equal("00000000000110", Word(6).Bits(WORD_BITS))
}

func TestWordFields(t *testing.T) {
	assert := assert.New(t)

	op, _ := LookupOpcode("lea")
	first := MakeFirst(op, MODE_INDEXED, MODE_REGISTER)
	assert.Equal(6, first.Opcode())
	assert.Equal(MODE_INDEXED, first.SourceMode())
	assert.Equal(MODE_REGISTER, first.TargetMode())
	assert.Equal(ARE_ABSOLUTE, first.Relocation())
	assert.Equal(Word(0), first>>10)

	word, err := MakeField(-5, ARE_ABSOLUTE)
	assert.NoError(err)
	assert.Equal(-5, word.Field())
	assert.Equal(Word(16364), word)

	word, err = MakeAddress(123, ARE_RELOCATABLE)
	assert.NoError(err)
	assert.Equal(Word(494), word)
	assert.Equal(ARE_RELOCATABLE, word.Relocation())

	_, err = MakeAddress(4096, ARE_RELOCATABLE)
	assert.Error(err)

	src, dst := MakeRegisters(1, 4).Registers()
	assert.Equal(1, src)
	assert.Equal(4, dst)
	assert.Equal(Word(48), MakeRegisters(1, 4))
}
