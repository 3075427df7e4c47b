// Package insts provides CHIP-8 instruction definitions and decoding.
package insts

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0nnn
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65
)

// Format groups operations by the execution unit that handles them.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatSystem         // CLS, RET, SYS
	FormatJump           // JP, CALL, JP V0
	FormatSkip           // SE, SNE, SKP, SKNP
	FormatImm            // LD Vx, kk / ADD Vx, kk / RND
	FormatALU            // 8xy? register-register
	FormatIndex          // I register and memory transfer
	FormatDraw           // DRW
	FormatTimer          // delay and sound timer transfers
	FormatKeyWait        // LD Vx, K
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Execution format

	Word uint16 // Raw instruction word

	X   uint8  // Register index from bits [11:8]
	Y   uint8  // Register index from bits [7:4]
	N   uint8  // Low nibble
	KK  uint8  // Low byte
	NNN uint16 // Low 12 bits (address)
}

// Decoder decodes CHIP-8 instruction words into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit CHIP-8 instruction word.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes a word into an existing instruction, overwriting every
// field. It lets hot loops reuse one Instruction value.
func (d *Decoder) DecodeInto(word uint16, inst *Instruction) {
	*inst = Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Word:   word,
		X:      uint8(word>>8) & 0xF, // bits [11:8]
		Y:      uint8(word>>4) & 0xF, // bits [7:4]
		N:      uint8(word) & 0xF,    // bits [3:0]
		KK:     uint8(word),          // bits [7:0]
		NNN:    word & 0x0FFF,        // bits [11:0]
	}

	switch word >> 12 {
	case 0x0:
		d.decodeSystem(inst)
	case 0x1:
		inst.Format, inst.Op = FormatJump, OpJP
	case 0x2:
		inst.Format, inst.Op = FormatJump, OpCALL
	case 0x3:
		inst.Format, inst.Op = FormatSkip, OpSEImm
	case 0x4:
		inst.Format, inst.Op = FormatSkip, OpSNEImm
	case 0x5:
		if inst.N == 0 {
			inst.Format, inst.Op = FormatSkip, OpSEReg
		}
	case 0x6:
		inst.Format, inst.Op = FormatImm, OpLDImm
	case 0x7:
		inst.Format, inst.Op = FormatImm, OpADDImm
	case 0x8:
		d.decodeALU(inst)
	case 0x9:
		if inst.N == 0 {
			inst.Format, inst.Op = FormatSkip, OpSNEReg
		}
	case 0xA:
		inst.Format, inst.Op = FormatIndex, OpLDI
	case 0xB:
		inst.Format, inst.Op = FormatJump, OpJPV0
	case 0xC:
		inst.Format, inst.Op = FormatImm, OpRND
	case 0xD:
		inst.Format, inst.Op = FormatDraw, OpDRW
	case 0xE:
		d.decodeKey(inst)
	case 0xF:
		d.decodeMisc(inst)
	}
}

// decodeSystem decodes the 0nnn family.
// 00E0 and 00EE are CLS and RET; every other word is a SYS call.
func (d *Decoder) decodeSystem(inst *Instruction) {
	inst.Format = FormatSystem

	switch inst.Word {
	case 0x00E0:
		inst.Op = OpCLS
	case 0x00EE:
		inst.Op = OpRET
	default:
		inst.Op = OpSYS
	}
}

// decodeALU decodes register-register operations selected by the low nibble.
// Format: 8 | x | y | op
func (d *Decoder) decodeALU(inst *Instruction) {
	ops := [16]Op{
		0x0: OpLDReg,
		0x1: OpOR,
		0x2: OpAND,
		0x3: OpXOR,
		0x4: OpADDReg,
		0x5: OpSUB,
		0x6: OpSHR,
		0x7: OpSUBN,
		0xE: OpSHL,
	}

	if op := ops[inst.N]; op != OpUnknown {
		inst.Format = FormatALU
		inst.Op = op
	}
}

// decodeKey decodes the keypad skips selected by the low byte.
// Format: E | x | 9E or A1
func (d *Decoder) decodeKey(inst *Instruction) {
	switch inst.KK {
	case 0x9E:
		inst.Format, inst.Op = FormatSkip, OpSKP
	case 0xA1:
		inst.Format, inst.Op = FormatSkip, OpSKNP
	}
}

// decodeMisc decodes the Fx?? family selected by the low byte.
func (d *Decoder) decodeMisc(inst *Instruction) {
	switch inst.KK {
	case 0x07:
		inst.Format, inst.Op = FormatTimer, OpLDVxDT
	case 0x0A:
		inst.Format, inst.Op = FormatKeyWait, OpLDVxK
	case 0x15:
		inst.Format, inst.Op = FormatTimer, OpLDDTVx
	case 0x18:
		inst.Format, inst.Op = FormatTimer, OpLDSTVx
	case 0x1E:
		inst.Format, inst.Op = FormatIndex, OpADDI
	case 0x29:
		inst.Format, inst.Op = FormatIndex, OpLDF
	case 0x33:
		inst.Format, inst.Op = FormatIndex, OpLDB
	case 0x55:
		inst.Format, inst.Op = FormatIndex, OpLDIVx
	case 0x65:
		inst.Format, inst.Op = FormatIndex, OpLDVxI
	}
}
