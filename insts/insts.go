// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package turns 16-bit CHIP-8 instruction words into structured
// instruction values. Every word decodes to an Instruction; words that do
// not name a known operation decode to OpUnknown so the executor can report
// and skip them.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x6A2F) // LD VA, $2F
//	fmt.Printf("Op: %v, X: %d, KK: %d\n", inst.Op, inst.X, inst.KK)
package insts
