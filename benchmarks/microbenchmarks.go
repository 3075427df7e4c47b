package benchmarks

import (
	"fmt"

	"github.com/sarchlab/c8sim/emu"
)

// DefaultCycles is the instruction count each microbenchmark runs for.
const DefaultCycles = 100000

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark loops forever and is stopped after DefaultCycles.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticLoop(),
		callReturn(),
		spriteDraw(),
		bcdStoreLoad(),
		selfModifying(),
	}
}

// ranToCompletion checks that the run was not cut short.
func ranToCompletion(cycles uint64) func(e *emu.Emulator) error {
	return func(e *emu.Emulator) error {
		if got := e.InstructionCount(); got != cycles {
			return fmt.Errorf("executed %d instructions, want %d", got, cycles)
		}
		return nil
	}
}

// 1. Arithmetic Loop - register-register ALU throughput
func arithmeticLoop() Benchmark {
	return Benchmark{
		Name:        "arithmetic_loop",
		Description: "ADD/LD/ADD/XOR loop - measures ALU dispatch",
		Program: BuildProgram(
			EncodeLDImm(0, 0),  // 0x200
			EncodeADDImm(0, 1), // 0x202
			EncodeALU(1, 0, 0), // 0x204 LD V1, V0
			EncodeALU(1, 1, 4), // 0x206 ADD V1, V1
			EncodeALU(2, 1, 3), // 0x208 XOR V2, V1
			EncodeJP(0x202),    // 0x20A
		),
		Cycles:   DefaultCycles,
		Validate: ranToCompletion(DefaultCycles),
	}
}

// 2. Call/Return - stack push and pop
func callReturn() Benchmark {
	return Benchmark{
		Name:        "call_return",
		Description: "CALL/RET pairs - measures stack handling",
		Program: BuildProgram(
			EncodeCALL(0x206),  // 0x200
			EncodeADDImm(0, 1), // 0x202
			EncodeJP(0x200),    // 0x204
			EncodeADDImm(1, 1), // 0x206
			EncodeRET(),        // 0x208
		),
		Cycles: DefaultCycles,
		Validate: func(e *emu.Emulator) error {
			if sp := e.RegFile().SP; sp > 1 {
				return fmt.Errorf("stack depth %d, want at most 1", sp)
			}
			return ranToCompletion(DefaultCycles)(e)
		},
	}
}

// 3. Sprite Draw - framebuffer XOR blits with wraparound
func spriteDraw() Benchmark {
	return Benchmark{
		Name:        "sprite_draw",
		Description: "DRW of a font glyph across the screen - measures blit cost",
		Program: BuildProgram(
			EncodeLDI(emu.FontBase), // 0x200
			EncodeDRW(0, 1, 5),      // 0x202
			EncodeADDImm(0, 3),      // 0x204
			EncodeADDImm(1, 1),      // 0x206
			EncodeJP(0x202),         // 0x208
		),
		Cycles:   DefaultCycles,
		Validate: ranToCompletion(DefaultCycles),
	}
}

// 4. BCD Store/Load - memory transfer instructions
func bcdStoreLoad() Benchmark {
	return Benchmark{
		Name:        "bcd_store_load",
		Description: "LD B / LD Vx,[I] / LD [I],Vx - measures memory transfers",
		Program: BuildProgram(
			EncodeLDI(0x300),    // 0x200
			EncodeMisc(4, 0x33), // 0x202 LD B, V4
			EncodeMisc(2, 0x65), // 0x204 LD V2, [I]
			EncodeADDImm(4, 7),  // 0x206
			EncodeMisc(2, 0x55), // 0x208 LD [I], V2
			EncodeJP(0x202),     // 0x20A
		),
		Cycles:   DefaultCycles,
		Validate: ranToCompletion(DefaultCycles),
	}
}

// 5. Self-Modifying - stores into the instruction stream every iteration
func selfModifying() Benchmark {
	return Benchmark{
		Name:        "self_modifying",
		Description: "rewrites the next instruction each loop - measures decode cache invalidation",
		Program: BuildProgram(
			EncodeLDI(0x20A),     // 0x200
			EncodeLDImm(0, 0x72), // 0x202
			EncodeLDImm(1, 0x01), // 0x204
			EncodeMisc(1, 0x55),  // 0x206 LD [I], V1: 0x20A becomes ADD V2, 1
			EncodeADDImm(3, 1),   // 0x208
			0x0000,               // 0x20A
			EncodeJP(0x206),      // 0x20C
		),
		Cycles: DefaultCycles,
		Validate: func(e *emu.Emulator) error {
			if e.Memory().Read16(0x20A) != EncodeADDImm(2, 1) {
				return fmt.Errorf("code at 0x20A was not rewritten")
			}
			if e.RegFile().ReadReg(2) != e.RegFile().ReadReg(3) &&
				e.RegFile().ReadReg(2)+1 != e.RegFile().ReadReg(3) {
				return fmt.Errorf("V2=%d lags V3=%d", e.RegFile().ReadReg(2), e.RegFile().ReadReg(3))
			}
			return ranToCompletion(DefaultCycles)(e)
		},
	}
}
