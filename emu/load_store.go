package emu

// LoadStoreUnit implements the CHIP-8 index register and memory transfer
// operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LDI performs I = nnn.
func (lsu *LoadStoreUnit) LDI(nnn uint16) {
	lsu.regFile.SetI(nnn)
}

// ADDI performs I = (I + Vx) & 0xFFF. VF is not affected.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	lsu.regFile.SetI(lsu.regFile.I + uint16(lsu.regFile.ReadReg(x)))
}

// LDF points I at the font glyph for digit Vx.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	lsu.regFile.SetI(FontBase + uint16(lsu.regFile.ReadReg(x))*GlyphSize)
}

// LDB stores the decimal digits of Vx at I (hundreds), I+1 (tens) and
// I+2 (units).
func (lsu *LoadStoreUnit) LDB(x uint8) {
	value := lsu.regFile.ReadReg(x)
	addr := lsu.regFile.I

	lsu.memory.Write8(addr, value/100)
	lsu.memory.Write8(addr+1, (value/10)%10)
	lsu.memory.Write8(addr+2, value%10)
}

// StoreRegs stores V0..Vx inclusive to memory starting at I.
// I itself is left unchanged.
func (lsu *LoadStoreUnit) StoreRegs(x uint8) {
	addr := lsu.regFile.I
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.memory.Write8(addr+uint16(r), lsu.regFile.ReadReg(r))
	}
}

// LoadRegs loads V0..Vx inclusive from memory starting at I.
// I itself is left unchanged.
func (lsu *LoadStoreUnit) LoadRegs(x uint8) {
	addr := lsu.regFile.I
	for r := uint8(0); r <= x&0xF; r++ {
		lsu.regFile.WriteReg(r, lsu.memory.Read8(addr+uint16(r)))
	}
}
