package asm

import (
	"cmp"
	"io"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/asm14/internal"
)

// Kind is the kind of a symbol.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_CONSTANT    = Kind(0) // constant
	KIND_DATA        = Kind(1) // data
	KIND_STRING      = Kind(2) // string
	KIND_INSTRUCTION = Kind(3) // instruction
)

// Directive returns true if the kind reserves data cells.
func (kind Kind) Directive() bool {
	return kind == KIND_DATA || kind == KIND_STRING
}

// Label returns true if the kind names a memory address.
func (kind Kind) Label() bool {
	return kind != KIND_CONSTANT
}

// Link is the kind of a linkage declaration.
type Link int

//go:generate go tool stringer -linecomment -type=Link
const (
	LINK_ENTRY  = Link(0) // entry
	LINK_EXTERN = Link(1) // extern
)

const (
	SYMBOL_CAPACITY  = 5000 // Maximum symbols, and separately linkages, per table.
	LABEL_LENGTH_MAX = 31   // Maximum characters in a symbol name.
)

// Symbol is a label, constant, or data directive.
type Symbol struct {
	Name        string
	Kind        Kind
	LineNo      int  // Line of the declaration.
	Provisional bool // Instruction label not yet confirmed.

	Value int    // Constant value.
	Text  string // Quoted string literal.
	Data  []int  // Directive cell values.
	Size  int    // Directive cells.

	Address int // Memory address, if Placed().
	Order   int // Directive declaration order, if Ordered().

	placed  bool
	ordered bool
}

// Placed returns true once an address has been assigned.
func (sym *Symbol) Placed() bool {
	return sym.placed
}

// Place assigns the memory address.
func (sym *Symbol) Place(address int) {
	sym.Address = address
	sym.placed = true
}

// Ordered returns true once a directive order has been assigned.
func (sym *Symbol) Ordered() bool {
	return sym.ordered
}

// SetOrder assigns the directive declaration order.
func (sym *Symbol) SetOrder(order int) {
	sym.Order = order
	sym.ordered = true
}

// Linkage is an entry or extern declaration.
type Linkage struct {
	Name   string
	Link   Link
	LineNo int
}

// SymbolTable holds the symbols and linkages of one compilation unit.
type SymbolTable struct {
	symbol  map[string]*Symbol
	linkage map[string]*Linkage
	links   []string // Linkage names in declaration order.
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() (st *SymbolTable) {
	st = &SymbolTable{
		symbol:  make(map[string]*Symbol, 64),
		linkage: make(map[string]*Linkage, 16),
	}
	return
}

// Insert adds a symbol, replacing any symbol of the same name.
func (st *SymbolTable) Insert(sym *Symbol) {
	if _, ok := st.symbol[sym.Name]; !ok && len(st.symbol) >= SYMBOL_CAPACITY {
		log.Panicf("asm: symbol table full inserting %q", sym.Name)
	}
	st.symbol[sym.Name] = sym
}

// Lookup finds a symbol.
func (st *SymbolTable) Lookup(name string) (sym *Symbol, ok bool) {
	sym, ok = st.symbol[name]
	return
}

// Kind returns the kind of a symbol.
func (st *SymbolTable) Kind(name string) (kind Kind, ok bool) {
	sym, ok := st.symbol[name]
	if ok {
		kind = sym.Kind
	}
	return
}

// Address returns the address of a placed symbol.
func (st *SymbolTable) Address(name string) (address int, ok bool) {
	sym, ok := st.symbol[name]
	if ok && sym.Placed() {
		address = sym.Address
	} else {
		ok = false
	}
	return
}

// Size returns the cell count of a directive symbol.
func (st *SymbolTable) Size(name string) (size int, ok bool) {
	sym, ok := st.symbol[name]
	if ok && sym.Kind.Directive() {
		size = sym.Size
	} else {
		ok = false
	}
	return
}

// Delete removes a symbol.
func (st *SymbolTable) Delete(name string) {
	delete(st.symbol, name)
}

// Confirm promotes a provisional instruction label to final.
func (st *SymbolTable) Confirm(name string) (ok bool) {
	sym, ok := st.symbol[name]
	if ok {
		sym.Provisional = false
	}
	return
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbol)
}

// All returns every symbol, ordered by declaration line and name.
func (st *SymbolTable) All() []*Symbol {
	return slices.SortedFunc(maps.Values(st.symbol), func(a, b *Symbol) int {
		return cmp.Or(cmp.Compare(a.LineNo, b.LineNo), cmp.Compare(a.Name, b.Name))
	})
}

// Directives returns the ordered data and string symbols, in declaration order.
func (st *SymbolTable) Directives() iter.Seq[*Symbol] {
	seq := internal.IterSeqFilter(maps.Values(st.symbol), func(sym *Symbol) bool {
		return sym.Kind.Directive() && sym.Ordered()
	})
	return slices.Values(slices.SortedFunc(seq, func(a, b *Symbol) int {
		return cmp.Compare(a.Order, b.Order)
	}))
}

// DirectiveSize returns the total cells of all ordered directive symbols.
func (st *SymbolTable) DirectiveSize() (size int) {
	for sym := range st.Directives() {
		size += sym.Size
	}
	return
}

// SetLink declares a linkage. Redeclaring the same linkage is harmless.
func (st *SymbolTable) SetLink(name string, link Link, lineno int) {
	if lk, ok := st.linkage[name]; ok {
		lk.Link = link
		return
	}
	if len(st.linkage) >= SYMBOL_CAPACITY {
		log.Panicf("asm: linkage table full inserting %q", name)
	}
	st.linkage[name] = &Linkage{Name: name, Link: link, LineNo: lineno}
	st.links = append(st.links, name)
}

// Link returns the linkage of a name.
func (st *SymbolTable) Link(name string) (link Link, ok bool) {
	lk, ok := st.linkage[name]
	if ok {
		link = lk.Link
	}
	return
}

// Links returns the linkages in declaration order.
func (st *SymbolTable) Links() (links []Linkage) {
	links = make([]Linkage, 0, len(st.links))
	for _, name := range st.links {
		links = append(links, *st.linkage[name])
	}
	return
}

// HasLink returns true if any name is declared with the linkage.
func (st *SymbolTable) HasLink(link Link) bool {
	for _, lk := range st.linkage {
		if lk.Link == link {
			return true
		}
	}
	return false
}

// Dump pretty prints the symbols and linkages.
func (st *SymbolTable) Dump(w io.Writer, color bool) (err error) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)
	printer.SetExportedOnly(true)

	for _, sym := range st.All() {
		_, err = printer.Println(sym)
		if err != nil {
			return
		}
	}

	for _, lk := range st.Links() {
		_, err = printer.Println(lk)
		if err != nil {
			return
		}
	}

	return
}
