package emu

// Memory layout.
const (
	MemorySize     = 4096
	AddrMask       = MemorySize - 1
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	FontBase       = 0x50
	GlyphSize      = 5
)

// Fontset holds the sixteen hexadecimal digit sprites, 5 bytes each.
var Fontset = [16 * GlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB CHIP-8 address space.
// Addresses wrap at MemorySize on every access.
type Memory struct {
	data [MemorySize]uint8

	// onWrite, when set, is called with the address of every byte stored
	// through Write8.
	onWrite func(addr uint16)
}

// NewMemory creates a zeroed memory with the fontset installed at FontBase.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[FontBase:], Fontset[:])
	return m
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint16) uint8 {
	return m.data[addr&AddrMask]
}

// Read16 reads a big-endian word: high byte at addr, low byte at addr+1.
func (m *Memory) Read16(addr uint16) uint16 {
	return uint16(m.Read8(addr))<<8 | uint16(m.Read8(addr+1))
}

// Write8 stores one byte.
func (m *Memory) Write8(addr uint16, value uint8) {
	addr &= AddrMask
	m.data[addr] = value
	if m.onWrite != nil {
		m.onWrite(addr)
	}
}

// LoadProgram copies a program to ProgramStart. Bytes that would land at
// or past the end of memory are dropped. It returns the number of bytes
// stored.
func (m *Memory) LoadProgram(program []byte) int {
	return copy(m.data[ProgramStart:], program)
}

// Slice returns a copy of n bytes starting at addr, wrapping at the end of
// memory.
func (m *Memory) Slice(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = m.Read8(addr + uint16(i))
	}
	return out
}

// SetWriteObserver installs a callback invoked after every Write8.
func (m *Memory) SetWriteObserver(fn func(addr uint16)) {
	m.onWrite = fn
}
