package asm

import (
	"strings"
	"unicode"
)

// Command is the classification of one source line.
type Command int

//go:generate go tool stringer -linecomment -type=Command
const (
	COMMAND_UNDEFINED         = Command(0) // undefined
	COMMAND_EMPTY             = Command(1) // empty
	COMMAND_COMMENT           = Command(2) // comment
	COMMAND_DATA              = Command(3) // .data
	COMMAND_STRING            = Command(4) // .string
	COMMAND_ENTRY             = Command(5) // .entry
	COMMAND_EXTERN            = Command(6) // .extern
	COMMAND_DIRECTIVE_INVALID = Command(7) // directive
	COMMAND_INSTRUCTION       = Command(8) // instruction
	COMMAND_CONSTANT          = Command(9) // .define
)

// directiveMap maps directive names to commands.
var directiveMap = map[string]Command{
	"data":   COMMAND_DATA,
	"string": COMMAND_STRING,
	"entry":  COMMAND_ENTRY,
	"extern": COMMAND_EXTERN,
	"define": COMMAND_CONSTANT,
}

// Clean trims a line, and collapses each run of whitespace outside
// of double quotes into a single space.
func Clean(line string) string {
	var sb strings.Builder

	quoted := false
	space := false
	for _, r := range strings.TrimSpace(line) {
		if !quoted && unicode.IsSpace(r) {
			space = true
			continue
		}
		if r == '"' {
			quoted = !quoted
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// SplitLabel separates a leading 'label:' from a cleaned line.
// A line has a label if a colon appears before any whitespace.
func SplitLabel(line string) (label string, rest string, ok bool) {
	for n, r := range line {
		if r == ':' {
			label = line[:n]
			rest = strings.TrimSpace(line[n+1:])
			ok = true
			return
		}
		if unicode.IsSpace(r) {
			break
		}
	}

	rest = line
	return
}

// Classify determines the command of a cleaned line.
func Classify(line string) (cmd Command) {
	if len(line) == 0 {
		return COMMAND_EMPTY
	}

	if line[0] == ';' {
		return COMMAND_COMMENT
	}

	_, rest, _ := SplitLabel(line)
	word, _, _ := strings.Cut(rest, " ")

	if name, ok := strings.CutPrefix(word, "."); ok {
		cmd, ok = directiveMap[name]
		if !ok {
			cmd = COMMAND_DIRECTIVE_INVALID
		}
		return
	}

	if _, ok := LookupOpcode(word); ok && len(word) > 0 {
		return COMMAND_INSTRUCTION
	}

	return COMMAND_UNDEFINED
}

// Line is one source line and the state the assembly stages attach to it.
type Line struct {
	LineNo   int     // Line number, starting at 1.
	Text     string  // Source text as read.
	Command  Command // Classification of the cleaned text.
	Label    string  // Label, if HasLabel.
	HasLabel bool    // Set if the line declares a label.
	Body     string  // Cleaned text after the label.

	Opcode Opcode   // Instruction opcode, after validation.
	Args   []string // Instruction operand texts, after validation.
	Data   []int    // Directive cell values, after validation.

	Address int // First memory cell, after allocation.
	Words   int // Memory cells used, after allocation.
}

// NewLine classifies a source line.
func NewLine(lineno int, text string) (line Line) {
	line.LineNo = lineno
	line.Text = text

	clean := Clean(text)
	line.Command = Classify(clean)
	switch line.Command {
	case COMMAND_EMPTY, COMMAND_COMMENT:
		line.Body = clean
	default:
		line.Label, line.Body, line.HasLabel = SplitLabel(clean)
	}

	return
}

// NewLines classifies a sequence of source lines.
func NewLines(texts []string) (lines []Line) {
	lines = make([]Line, len(texts))
	for n, text := range texts {
		lines[n] = NewLine(n+1, text)
	}
	return
}

// argument returns the text following the leading keyword of a line body.
func argument(body string) string {
	_, arg, _ := strings.Cut(body, " ")
	return strings.TrimSpace(arg)
}
