package emu

// ALU implements CHIP-8 arithmetic and logic operations.
// All arithmetic wraps modulo 256. Where an operation produces a flag, VF
// is written before the result, so an operation whose destination is VF
// leaves the result in VF.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = kk.
func (a *ALU) LDImm(x, kk uint8) {
	a.regFile.WriteReg(x, kk)
}

// ADDImm performs Vx = Vx + kk. VF is not affected.
func (a *ALU) ADDImm(x, kk uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+kk)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy with VF = 1 on carry out of bit 7.
func (a *ALU) ADD(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)
	sum := uint16(op1) + uint16(op2)

	a.regFile.SetFlag(boolToFlag(sum > 0xFF))
	a.regFile.WriteReg(x, uint8(sum))
}

// SUB performs Vx = Vx - Vy with VF = 1 when Vx > Vy before the operation.
func (a *ALU) SUB(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(boolToFlag(op1 > op2))
	a.regFile.WriteReg(x, op1-op2)
}

// SUBN performs Vx = Vy - Vx with VF = 1 when Vy > Vx before the operation.
func (a *ALU) SUBN(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(boolToFlag(op2 > op1))
	a.regFile.WriteReg(x, op2-op1)
}

// SHR performs Vx = Vx >> 1 with VF = the bit shifted out. Vy is ignored.
func (a *ALU) SHR(x uint8) {
	op := a.regFile.ReadReg(x)

	a.regFile.SetFlag(op & 0x1)
	a.regFile.WriteReg(x, op>>1)
}

// SHL performs Vx = Vx << 1 with VF = the bit shifted out. Vy is ignored.
func (a *ALU) SHL(x uint8) {
	op := a.regFile.ReadReg(x)

	a.regFile.SetFlag(op >> 7)
	a.regFile.WriteReg(x, op<<1)
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
