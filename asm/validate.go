package asm

import (
	"log"
	"strings"
	"unicode/utf8"
)

// validator checks the source lines, and fills the symbol table.
type validator struct {
	Verbose bool

	file       string
	lineMax    int
	symbols    *SymbolTable
	order      int
	foundError bool
	diags      []Diagnostic
}

// newValidator creates a validator that fills symbols.
func newValidator(file string, lineMax int, symbols *SymbolTable) (v *validator) {
	v = &validator{
		file:    file,
		lineMax: lineMax,
		symbols: symbols,
	}
	return
}

func (v *validator) diagnose(line *Line, severity Severity, err error) {
	diag := Diagnostic{
		File:     v.file,
		LineNo:   line.LineNo,
		Line:     line.Text,
		Severity: severity,
		Err:      err,
	}
	if v.Verbose {
		log.Printf("asm: %v", diag.Error())
	}
	v.diags = append(v.diags, diag)
}

// report records an error.
func (v *validator) report(line *Line, err error) {
	v.foundError = true
	v.diagnose(line, SEVERITY_ERROR, err)
}

// warn records a warning.
func (v *validator) warn(line *Line, err error) {
	v.diagnose(line, SEVERITY_WARNING, err)
}

// errors returns the error diagnostics.
func (v *validator) errors() (errs ErrDiagnostics) {
	for _, diag := range v.diags {
		if diag.Severity == SEVERITY_ERROR {
			errs = append(errs, diag)
		}
	}
	return
}

// tooLong returns true if the line exceeds the maximum line length.
func (v *validator) tooLong(line *Line) bool {
	text := strings.TrimRight(line.Text, "\r\n")
	return utf8.RuneCountInString(text) > v.lineMax
}

// validName returns true if name begins with a letter, and continues with
// letters or digits.
func validName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for n, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case n > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// checkName verifies that name is well formed.
func checkName(name string) (err error) {
	switch {
	case len(name) > LABEL_LENGTH_MAX:
		err = ErrNameLength
	case !validName(name):
		err = ErrNameSyntax
	case Reserved(name):
		err = ErrNameReserved
	}
	return
}

// checkFresh verifies that name is well formed, and not yet a symbol.
func (v *validator) checkFresh(name string) (err error) {
	err = checkName(name)
	if err != nil {
		return
	}
	if _, ok := v.symbols.Lookup(name); ok {
		err = ErrNameDuplicate
	}
	return
}

// splitList splits a comma separated list.
func splitList(text string) (elements []string, err error) {
	switch {
	case strings.HasPrefix(text, ","):
		err = ErrCommaLeading
		return
	case strings.HasSuffix(text, ","):
		err = ErrCommaTrailing
		return
	}

	elements = strings.Split(text, ",")
	for n, element := range elements {
		element = strings.TrimSpace(element)
		if len(element) == 0 {
			err = ErrCommaDouble
			return
		}
		elements[n] = element
	}

	return
}

// predefine registers a constant before the first pass.
func (v *validator) predefine(name string, value int) (err error) {
	err = v.checkFresh(name)
	if err != nil {
		return
	}
	_, err = MakeWord(value, WORD_BITS)
	if err != nil {
		return
	}
	v.symbols.Insert(&Symbol{Name: name, Kind: KIND_CONSTANT, Value: value})
	return
}

// checkDirectives is the first pass. It registers data, string, and
// constant symbols, and provisionally registers instruction labels.
func (v *validator) checkDirectives(lines []Line) {
	v.order = 0

	for n := range lines {
		line := &lines[n]

		if v.tooLong(line) {
			v.report(line, ErrLineLength)
			continue
		}

		var err error
		switch line.Command {
		case COMMAND_DATA:
			err = v.checkData(line)
		case COMMAND_STRING:
			err = v.checkString(line)
		case COMMAND_CONSTANT:
			err = v.checkConstant(line)
		case COMMAND_INSTRUCTION:
			err = v.checkLabel(line)
		case COMMAND_DIRECTIVE_INVALID:
			err = ErrDirectiveInvalid
		case COMMAND_UNDEFINED:
			if line.HasLabel && len(line.Body) == 0 {
				err = ErrLabelLonely
			} else {
				err = ErrInstructionInvalid
			}
		}

		if err != nil {
			v.report(line, err)
		}
	}
}

// checkData validates a .data directive.
func (v *validator) checkData(line *Line) (err error) {
	args := argument(line.Body)
	if len(args) == 0 {
		err = ErrDataEmpty
		return
	}

	if line.HasLabel {
		err = v.checkFresh(line.Label)
		if err != nil {
			return
		}
	}

	elements, err := splitList(args)
	if err != nil {
		return
	}

	values := make([]int, 0, len(elements))
	for _, element := range elements {
		if strings.Contains(element, " ") {
			err = ErrCommaMissing
			return
		}
		var value int
		value, err = v.symbols.ValueOf(element)
		if err != nil {
			return
		}
		_, err = MakeWord(value, WORD_BITS)
		if err != nil {
			return
		}
		values = append(values, value)
	}

	line.Data = values
	v.declare(line, &Symbol{Kind: KIND_DATA})
	return
}

// checkString validates a .string directive.
func (v *validator) checkString(line *Line) (err error) {
	arg := argument(line.Body)
	if len(arg) == 0 {
		err = ErrStringEmpty
		return
	}

	if line.HasLabel {
		err = v.checkFresh(line.Label)
		if err != nil {
			return
		}
	}

	if len(arg) < 2 || arg[0] != '"' || arg[len(arg)-1] != '"' || strings.Count(arg, `"`) != 2 {
		err = ErrStringQuotes
		return
	}

	text := arg[1 : len(arg)-1]
	values := make([]int, 0, len(text)+1)
	for n := 0; n < len(text); n++ {
		c := text[n]
		if c < 0x20 || c > 0x7e {
			err = ErrStringCharacter
			return
		}
		values = append(values, int(c))
	}
	values = append(values, 0)

	line.Data = values
	v.declare(line, &Symbol{Kind: KIND_STRING, Text: arg})
	return
}

// declare stamps the directive order, and registers the symbol of a
// labelled directive.
func (v *validator) declare(line *Line, sym *Symbol) {
	order := v.order
	v.order++

	if !line.HasLabel {
		return
	}

	sym.Name = line.Label
	sym.LineNo = line.LineNo
	sym.Data = line.Data
	sym.Size = len(line.Data)
	sym.SetOrder(order)
	v.symbols.Insert(sym)
}

// checkConstant validates a .define directive.
func (v *validator) checkConstant(line *Line) (err error) {
	if line.HasLabel {
		err = ErrDefineLabel
		return
	}

	arg := argument(line.Body)
	if strings.Count(arg, "=") != 1 {
		err = ErrDefineSyntax
		return
	}

	name, text, _ := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if len(name) == 0 || len(text) == 0 {
		err = ErrDefineSyntax
		return
	}

	err = v.checkFresh(name)
	if err != nil {
		return
	}

	value, err := ParseInteger(text)
	if err != nil {
		return
	}

	_, err = MakeWord(value, WORD_BITS)
	if err != nil {
		return
	}

	v.symbols.Insert(&Symbol{
		Name:   name,
		Kind:   KIND_CONSTANT,
		LineNo: line.LineNo,
		Value:  value,
	})
	return
}

// checkLabel provisionally registers an instruction label.
func (v *validator) checkLabel(line *Line) (err error) {
	if !line.HasLabel {
		return
	}

	err = v.checkFresh(line.Label)
	if err != nil {
		return
	}

	v.symbols.Insert(&Symbol{
		Name:        line.Label,
		Kind:        KIND_INSTRUCTION,
		LineNo:      line.LineNo,
		Provisional: true,
	})
	return
}

// checkLinkage is the second pass. It registers .entry and .extern declarations.
func (v *validator) checkLinkage(lines []Line) {
	v.order = 0

	for n := range lines {
		line := &lines[n]

		var link Link
		switch line.Command {
		case COMMAND_ENTRY:
			link = LINK_ENTRY
		case COMMAND_EXTERN:
			link = LINK_EXTERN
		default:
			continue
		}

		if v.tooLong(line) {
			continue
		}

		if line.HasLabel {
			v.warn(line, ErrLinkLabel)
		}

		err := v.checkLink(line, link)
		if err != nil {
			v.report(line, err)
		}
	}
}

// checkLink validates one linkage declaration.
func (v *validator) checkLink(line *Line, link Link) (err error) {
	name := argument(line.Body)
	if len(name) == 0 {
		err = ErrLinkEmpty
		return
	}

	if strings.ContainsAny(name, " ,") {
		err = ErrLinkExtraArgs
		return
	}

	err = checkName(name)
	if err != nil {
		return
	}

	prior, linked := v.symbols.Link(name)
	if linked && prior != link {
		err = ErrLinkConflict
		return
	}

	sym, defined := v.symbols.Lookup(name)
	switch link {
	case LINK_ENTRY:
		if !defined {
			err = ErrEntryMissing(name)
			return
		}
		if sym.Kind == KIND_CONSTANT {
			err = ErrEntryConstant
			return
		}
	case LINK_EXTERN:
		if defined {
			err = ErrExternLocal
			return
		}
	}

	v.symbols.SetLink(name, link, line.LineNo)
	return
}

// checkInstructions is the third pass. It validates instruction operands
// against the complete tables, and confirms instruction labels.
func (v *validator) checkInstructions(lines []Line) {
	v.order = 0

	for n := range lines {
		line := &lines[n]
		if line.Command != COMMAND_INSTRUCTION || v.tooLong(line) {
			continue
		}

		err := v.checkInstruction(line)
		if err != nil {
			v.report(line, err)
		}
	}
}

// checkInstruction validates one instruction.
func (v *validator) checkInstruction(line *Line) (err error) {
	confirm := false
	if line.HasLabel {
		if link, ok := v.symbols.Link(line.Label); ok && link == LINK_EXTERN {
			err = ErrNameExtern
			return
		}
		// A label rejected or claimed by another line was reported by the first pass.
		sym, ok := v.symbols.Lookup(line.Label)
		confirm = ok && sym.Kind == KIND_INSTRUCTION && sym.LineNo == line.LineNo
	}

	mnemonic, text, _ := strings.Cut(line.Body, " ")
	op, _ := LookupOpcode(mnemonic)

	args, err := splitOperands(op, strings.TrimSpace(text))
	if err != nil {
		return
	}

	operands := make([]Operand, len(args))
	for n, arg := range args {
		operands[n], err = Resolve(arg, v.symbols)
		if err != nil {
			return
		}
		err = checkOperand(op, operands[n], n == 0 && len(args) == 2)
		if err != nil {
			return
		}
	}

	line.Opcode = op
	line.Args = args

	if confirm {
		v.symbols.Confirm(line.Label)
	}

	return
}

// splitOperands splits the operand text of an instruction.
func splitOperands(op Opcode, text string) (args []string, err error) {
	switch op.Arity() {
	case 0:
		if len(text) > 0 {
			err = ErrOperandExtraArgs
		}
		return
	case 1:
		if len(text) == 0 {
			err = ErrOperandMissing
			return
		}
		if strings.ContainsAny(text, " ,") {
			err = ErrOperandExtraArgs
			return
		}
		args = []string{text}
		return
	}

	if len(text) == 0 {
		err = ErrOperandMissing
		return
	}

	args, err = splitList(text)
	if err != nil {
		return
	}

	switch {
	case len(args) == 1 && strings.Contains(args[0], " "):
		err = ErrCommaMissing
	case len(args) < 2:
		err = ErrOperandMissing
	case len(args) > 2:
		err = ErrOperandExtraArgs
	}

	return
}

// checkOperand verifies the mode and value range of a resolved operand.
func checkOperand(op Opcode, operand Operand, source bool) (err error) {
	legal := op.Target
	if source {
		legal = op.Source
	}
	if !legal.Has(operand.Mode) {
		err = ErrModeIllegal{Opcode: op.Name, Mode: operand.Mode, Source: source}
		return
	}

	switch operand.Mode {
	case MODE_IMMEDIATE:
		_, err = MakeWord(operand.Value, FIELD_BITS)
	case MODE_INDEXED:
		_, err = MakeWord(operand.Index, FIELD_BITS)
	}

	return
}
