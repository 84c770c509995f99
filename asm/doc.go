// Package asm implements the two-pass assembler for the 14-bit teaching CPU.
//
// The CPU has eight registers (r0-r7), sixteen opcodes, and four operand
// addressing modes (immediate, direct, indexed and register). Every memory
// cell is a 14-bit word; instructions occupy between one and five cells.
//
// Assembly runs as a sequence of independently testable stages over a
// materialized list of source lines: three validation passes, two address
// allocation passes, and a final encoding pass that produces a Program of
// object code words together with the entry and extern usage records.
package asm
