package object

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/asm14/asm"
)

const (
	EXT_OBJECT = ".ob"  // Object listing.
	EXT_ENTRY  = ".ent" // Entry listing.
	EXT_EXTERN = ".ext" // Extern listing.
)

// symbolMap renders each 2-bit pair of a word.
var symbolMap = [4]byte{'*', '#', '%', '!'}

// Encode renders the low width bits of a word, two bits per symbol,
// most significant pair first. An odd width is rounded up to a full pair.
func Encode(word asm.Word, width int) string {
	var sb strings.Builder
	for shift := (width+1)/2*2 - 2; shift >= 0; shift -= 2 {
		sb.WriteByte(symbolMap[(word>>shift)&0x3])
	}
	return sb.String()
}

// Decode parses an encoded word.
func Decode(text string) (word asm.Word, err error) {
	if len(text) == 0 || len(text)*2 > asm.WORD_BITS {
		err = ErrWidthInvalid
		return
	}
	for n := 0; n < len(text); n++ {
		pair := strings.IndexByte(string(symbolMap[:]), text[n])
		if pair < 0 {
			err = ErrSymbolInvalid
			return
		}
		word = word<<2 | asm.Word(pair)
	}
	return
}

// Listing is the formatted output of an assembled program.
type Listing struct {
	Object  []string // Object lines, header first.
	Entries []string // Entry lines, if the program declares an entry.
	Externs []string // Extern lines, if the program declares an extern.

	entry  bool
	extern bool
}

// NewListing formats a program.
func NewListing(prog *asm.Program) (listing *Listing) {
	listing = &Listing{
		entry:  prog.DeclaresEntry,
		extern: prog.DeclaresExtern,
	}

	listing.Object = append(listing.Object, fmt.Sprintf("  %d %d", len(prog.Code), len(prog.Data)))
	for address, word := range prog.Cells() {
		listing.Object = append(listing.Object, fmt.Sprintf("%04d %s", address, Encode(word, asm.WORD_BITS)))
	}

	for _, ref := range prog.Entries {
		listing.Entries = append(listing.Entries, fmt.Sprintf("%s %04d", ref.Name, ref.Address))
	}
	for _, ref := range prog.Externs {
		listing.Externs = append(listing.Externs, fmt.Sprintf("%s %04d", ref.Name, ref.Address))
	}

	return
}

// HasEntries returns true if an entry listing is produced.
func (listing *Listing) HasEntries() bool {
	return listing.entry
}

// HasExterns returns true if an extern listing is produced.
func (listing *Listing) HasExterns() bool {
	return listing.extern
}

// writeLines writes newline terminated lines to a new file.
func writeLines(fsys CreateFS, name string, lines []string) (err error) {
	file, err := fsys.Create(name)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		_, err = w.WriteString(line + "\n")
		if err != nil {
			return
		}
	}
	err = w.Flush()
	return
}

// Marshal writes the object listing to stem.ob, and the entry and
// extern listings to stem.ent and stem.ext when they are produced.
func (listing *Listing) Marshal(fsys CreateFS, stem string) (err error) {
	err = writeLines(fsys, stem+EXT_OBJECT, listing.Object)
	if err != nil {
		return
	}

	if listing.entry {
		err = writeLines(fsys, stem+EXT_ENTRY, listing.Entries)
		if err != nil {
			return
		}
	}

	if listing.extern {
		err = writeLines(fsys, stem+EXT_EXTERN, listing.Externs)
		if err != nil {
			return
		}
	}

	return
}

// Cell is one decoded object listing line.
type Cell struct {
	Address int
	Word    asm.Word
}

// ReadObject parses an object listing.
func ReadObject(input io.Reader) (code, data int, cells []Cell, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		words := strings.Fields(line)
		if len(words) != 2 {
			err = ErrHeaderInvalid
			return
		}

		if lineno == 1 {
			code, err = strconv.Atoi(words[0])
			if err != nil {
				return
			}
			data, err = strconv.Atoi(words[1])
			if err != nil {
				return
			}
			continue
		}

		var cell Cell
		cell.Address, err = strconv.Atoi(words[0])
		if err != nil {
			return
		}
		cell.Word, err = Decode(words[1])
		if err != nil {
			return
		}
		cells = append(cells, cell)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if lineno == 0 || len(cells) != code+data {
		err = ErrHeaderInvalid
	}

	return
}
