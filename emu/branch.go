package emu

// BranchUnit implements CHIP-8 control transfer operations.
// Every method leaves the program counter at the next instruction to fetch.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JP performs an absolute jump to nnn.
func (b *BranchUnit) JP(nnn uint16) {
	b.regFile.SetPC(nnn)
}

// JPV0 jumps to nnn + V0.
func (b *BranchUnit) JPV0(nnn uint16) {
	b.regFile.SetPC(nnn + uint16(b.regFile.ReadReg(0)))
}

// CALL pushes the address of the CALL itself and jumps to nnn.
// RET resumes after it. On overflow nothing changes.
func (b *BranchUnit) CALL(nnn uint16) error {
	if err := b.regFile.Push(b.regFile.PC); err != nil {
		return err
	}
	b.regFile.SetPC(nnn)
	return nil
}

// RET pops a return address and continues at the instruction after it.
// On underflow nothing changes.
func (b *BranchUnit) RET() error {
	addr, err := b.regFile.Pop()
	if err != nil {
		return err
	}
	b.regFile.SetPC(addr + 2)
	return nil
}

// Skip advances past the current instruction, and past the next one too
// when cond holds.
func (b *BranchUnit) Skip(cond bool) {
	if cond {
		b.regFile.Advance(4)
		return
	}
	b.regFile.Advance(2)
}
