package insts

import "fmt"

var mnemonics = map[Op]string{
	OpUnknown: "db",
	OpCLS:     "cls",
	OpRET:     "ret",
	OpSYS:     "sys",
	OpJP:      "jp",
	OpCALL:    "call",
	OpSEImm:   "se",
	OpSNEImm:  "sne",
	OpSEReg:   "se",
	OpLDImm:   "ld",
	OpADDImm:  "add",
	OpLDReg:   "ld",
	OpOR:      "or",
	OpAND:     "and",
	OpXOR:     "xor",
	OpADDReg:  "add",
	OpSUB:     "sub",
	OpSHR:     "shr",
	OpSUBN:    "subn",
	OpSHL:     "shl",
	OpSNEReg:  "sne",
	OpLDI:     "ld",
	OpJPV0:    "jp",
	OpRND:     "rnd",
	OpDRW:     "drw",
	OpSKP:     "skp",
	OpSKNP:    "sknp",
	OpLDVxDT:  "ld",
	OpLDVxK:   "ld",
	OpLDDTVx:  "ld",
	OpLDSTVx:  "ld",
	OpADDI:    "add",
	OpLDF:     "ld",
	OpLDB:     "ld",
	OpLDIVx:   "ld",
	OpLDVxI:   "ld",
}

// Mnemonic returns the assembler mnemonic of the operation.
func (o Op) Mnemonic() string {
	if m, ok := mnemonics[o]; ok {
		return m
	}
	return mnemonics[OpUnknown]
}

// IsJump reports whether the instruction transfers control unconditionally.
func (i *Instruction) IsJump() bool {
	return i.Op == OpJP || i.Op == OpJPV0
}

// IsCall reports whether the instruction calls a subroutine.
func (i *Instruction) IsCall() bool {
	return i.Op == OpCALL
}

// IsReturn reports whether the instruction returns from a subroutine.
func (i *Instruction) IsReturn() bool {
	return i.Op == OpRET
}

// IsSkip reports whether the instruction may skip the next instruction.
func (i *Instruction) IsSkip() bool {
	return i.Format == FormatSkip
}

// WritesMemory reports whether executing the instruction stores to memory.
func (i *Instruction) WritesMemory() bool {
	return i.Op == OpLDB || i.Op == OpLDIVx
}

// String returns the instruction in assembler syntax, e.g. "ld VA, $2F".
func (i *Instruction) String() string {
	name := i.Op.Mnemonic()

	switch i.Op {
	case OpCLS, OpRET:
		return name
	case OpSYS, OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case OpSHR, OpSHL:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, %d", name, i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}

	return fmt.Sprintf("%s $%04X", name, i.Word)
}
