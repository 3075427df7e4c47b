// Package emu provides functional CHIP-8 emulation.
package emu

import "errors"

// Register file geometry.
const (
	NumRegisters = 16
	FlagRegister = 0xF
	StackDepth   = 16
)

var (
	// ErrStackOverflow is returned when a CALL finds all stack entries in use.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned when a RET finds the stack empty.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// RegFile represents the CHIP-8 register file.
// It contains the sixteen 8-bit V registers, the index register I,
// the program counter and the call stack.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// VF is written as a flag by arithmetic, shift and draw instructions.
	V [NumRegisters]uint8

	// I is the index register. Only the low 12 bits are ever set.
	I uint16

	// PC is the program counter.
	PC uint16

	// SP is the number of return addresses on the stack (0..StackDepth).
	SP uint8

	// Stack holds return addresses; entries at and above SP are stale.
	Stack [StackDepth]uint16
}

// ReadReg reads register Vx. Only the low nibble of x is used.
func (r *RegFile) ReadReg(x uint8) uint8 {
	return r.V[x&0xF]
}

// WriteReg writes register Vx. Only the low nibble of x is used.
func (r *RegFile) WriteReg(x uint8, value uint8) {
	r.V[x&0xF] = value
}

// SetFlag writes VF.
func (r *RegFile) SetFlag(value uint8) {
	r.V[FlagRegister] = value
}

// SetI writes the index register, masked to the 12-bit address space.
func (r *RegFile) SetI(addr uint16) {
	r.I = addr & AddrMask
}

// SetPC writes the program counter, masked to the 12-bit address space.
func (r *RegFile) SetPC(addr uint16) {
	r.PC = addr & AddrMask
}

// Advance moves the program counter forward by n bytes.
func (r *RegFile) Advance(n uint16) {
	r.SetPC(r.PC + n)
}

// Push stores a return address on the stack.
// The stack is left untouched when it is full.
func (r *RegFile) Push(addr uint16) error {
	if int(r.SP) >= StackDepth {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

// Pop removes and returns the most recent return address.
// The stack is left untouched when it is empty.
func (r *RegFile) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}
