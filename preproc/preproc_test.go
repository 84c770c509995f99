package preproc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func expand(source ...string) (lines []string, err error) {
	exp := &Expander{}
	lines, err = exp.Expand(strings.NewReader(strings.Join(source, "\n")))
	return
}

func TestExpand(t *testing.T) {
	assert := assert.New(t)

	lines, err := expand(
		"MAIN: mov r1, r2",
		"mcr m_init",
		"  clr r3",
		"  inc r3",
		"endmcr",
		" m_init ",
		"hlt",
		"m_init",
	)
	assert.NoError(err)
	assert.Equal([]string{
		"MAIN: mov r1, r2",
		"  clr r3",
		"  inc r3",
		"hlt",
		"  clr r3",
		"  inc r3",
	}, lines)
}

func TestExpandPassThrough(t *testing.T) {
	assert := assert.New(t)

	lines, err := expand("m_init", "; m_init", "X: m_init")
	assert.NoError(err)
	assert.Equal([]string{"m_init", "; m_init", "X: m_init"}, lines)

	lines, err = expand()
	assert.NoError(err)
	assert.Empty(lines)
}

func TestExpanderMacros(t *testing.T) {
	assert := assert.New(t)

	exp := &Expander{}
	_, err := exp.Expand(strings.NewReader("\nmcr a1\nprn #1\nendmcr\n"))
	assert.NoError(err)
	if assert.Contains(exp.Macro, "a1") {
		assert.Equal(&Macro{LineNo: 3, Lines: []string{"prn #1"}}, exp.Macro["a1"])
	}
}

func TestExpandErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		source []string
		err    error
		lineno int
	}{
		{[]string{"mcr a", "mcr b", "endmcr", "endmcr"}, ErrMacroNesting, 2},
		{[]string{"mcr a", "endmcr", "mcr a", "endmcr"}, ErrMacroDuplicate, 3},
		{[]string{"mcr"}, ErrMacroSyntax, 1},
		{[]string{"mcr a b"}, ErrMacroSyntax, 1},
		{[]string{"mcr 1a"}, ErrMacroSyntax, 1},
		{[]string{"mcr mov"}, ErrMacroReserved, 1},
		{[]string{"mcr r1"}, ErrMacroReserved, 1},
		{[]string{"mcr a", "endmcr x"}, ErrMacroSyntax, 2},
		{[]string{"hlt", "endmcr"}, ErrMacroLonelyEnd, 2},
		{[]string{"hlt", "mcr a", "inc r1"}, ErrMacroLonely, 2},
	}

	for _, entry := range table {
		_, err := expand(entry.source...)
		assert.ErrorIs(err, entry.err, "%v", entry.source)
		var esyntax *ErrSyntax
		if assert.True(errors.As(err, &esyntax), "%v", entry.source) {
			assert.Equal(entry.lineno, esyntax.LineNo, "%v", entry.source)
		}
	}
}
