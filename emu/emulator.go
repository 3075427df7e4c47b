// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/insts"
)

// ErrMaxInstructions is returned once the instruction limit set with
// WithMaxInstructions has been reached.
var ErrMaxInstructions = errors.New("max instructions reached")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the instruction that was executed.
	Inst *insts.Instruction

	// Waiting is true if the instruction is LD Vx, K and no key was down.
	// The program counter did not move and the same instruction runs again
	// on the next Step.
	Waiting bool

	// Err is set if the instruction could not execute. Machine state is
	// unchanged when Err is set.
	Err error
}

// DecodeCache memoizes decoded instructions by address. Implementations
// must drop entries covering an address when Invalidate is called with it.
type DecodeCache interface {
	Lookup(pc uint16) (*insts.Instruction, bool)
	Fill(pc uint16, inst *insts.Instruction)
	Invalidate(addr uint16)
	Reset()
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile     *RegFile
	memory      *Memory
	timers      *Timers
	framebuffer *Framebuffer
	keys        KeyState

	decoder     *insts.Decoder
	decodeCache DecodeCache

	// Execution units
	alu         *ALU
	branchUnit  *BranchUnit
	lsu         *LoadStoreUnit
	displayUnit *DisplayUnit

	sysHandler SysHandler
	random     RandomSource
	listeners  []Listener
	logger     logr.Logger

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger used to report unknown opcodes and, at V(2),
// every executed instruction.
func WithLogger(logger logr.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithSysHandler sets a custom SYS handler.
func WithSysHandler(handler SysHandler) EmulatorOption {
	return func(e *Emulator) {
		e.sysHandler = handler
	}
}

// WithRandom sets the byte source used by RND.
func WithRandom(random RandomSource) EmulatorOption {
	return func(e *Emulator) {
		e.random = random
	}
}

// WithListener registers a listener for emitted events.
func WithListener(l Listener) EmulatorOption {
	return func(e *Emulator) {
		e.listeners = append(e.listeners, l)
	}
}

// WithDecodeCache enables a decoded-instruction cache.
func WithDecodeCache(c DecodeCache) EmulatorOption {
	return func(e *Emulator) {
		e.decodeCache = c
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator with the fontset loaded and the
// program counter at ProgramStart.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder:    insts.NewDecoder(),
		sysHandler: NewDefaultSysHandler(),
		random:     defaultRandom{},
		logger:     logr.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.Reset()

	return e
}

// Reset restores the power-on state: zeroed registers, timers, stack,
// framebuffer and keys, fontset-only memory, PC at ProgramStart. Options
// and listeners are kept.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{PC: ProgramStart}
	e.memory = NewMemory()
	e.timers = &Timers{}
	e.framebuffer = &Framebuffer{}
	e.keys = KeyState{}
	e.instructionCount = 0

	// Recreate execution units
	e.alu = NewALU(e.regFile)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.displayUnit = NewDisplayUnit(e.regFile, e.memory, e.framebuffer)

	if e.decodeCache != nil {
		e.decodeCache.Reset()
		e.memory.SetWriteObserver(e.decodeCache.Invalidate)
	}
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Timers returns the emulator's delay and sound timers.
func (e *Emulator) Timers() *Timers {
	return e.timers
}

// Framebuffer returns the emulator's framebuffer.
func (e *Emulator) Framebuffer() *Framebuffer {
	return e.framebuffer
}

// Keys returns the key state most recently set with SetKeys.
func (e *Emulator) Keys() KeyState {
	return e.keys
}

// SetKeys replaces the keypad state. Hosts call it once per cycle.
func (e *Emulator) SetKeys(keys KeyState) {
	e.keys = keys
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram copies a program into memory at ProgramStart and returns the
// number of bytes stored. Bytes that do not fit are dropped.
func (e *Emulator) LoadProgram(program []byte) int {
	n := e.memory.LoadProgram(program)
	if e.decodeCache != nil {
		e.decodeCache.Reset()
	}
	return n
}

// Step executes a single instruction and then ticks the timers.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch and decode
	inst := e.fetch(pc)

	if v := e.logger.V(2); v.Enabled() {
		v.Info("exec", "pc", hex3(pc), "word", hex4(inst.Word), "inst", inst.String())
	}

	// 2. Execute
	result := e.execute(pc, inst)
	if result.Err != nil {
		result.Err = fmt.Errorf("%s at PC=0x%03X: %w", inst, pc, result.Err)
		return result
	}

	// 3. Timers
	if e.timers.Tick() {
		e.emit(Event{Kind: EventTone, PC: pc, Word: inst.Word, Cycle: e.instructionCount})
	}

	e.instructionCount++

	return result
}

// Run executes up to n instructions, or until an error if n is 0.
func (e *Emulator) Run(n uint64) error {
	for i := uint64(0); n == 0 || i < n; i++ {
		if result := e.Step(); result.Err != nil {
			return result.Err
		}
	}
	return nil
}

// fetch reads the word at pc and decodes it, going through the decode
// cache when one is configured.
func (e *Emulator) fetch(pc uint16) *insts.Instruction {
	if e.decodeCache == nil {
		return e.decoder.Decode(e.memory.Read16(pc))
	}

	if inst, ok := e.decodeCache.Lookup(pc); ok {
		return inst
	}

	inst := e.decoder.Decode(e.memory.Read16(pc))
	e.decodeCache.Fill(pc, inst)

	return inst
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(pc uint16, inst *insts.Instruction) StepResult {
	result := StepResult{Inst: inst}

	// Execute based on instruction type
	switch inst.Format {
	case insts.FormatSystem:
		if err := e.executeSystem(pc, inst); err != nil {
			result.Err = err
		}
		return result // PC already updated
	case insts.FormatJump:
		if err := e.executeJump(inst); err != nil {
			result.Err = err
		}
		return result // PC already updated
	case insts.FormatSkip:
		e.executeSkip(inst)
		return result // PC already updated
	case insts.FormatKeyWait:
		result.Waiting = !e.executeKeyWait(inst)
		return result // PC already updated, or held
	case insts.FormatImm:
		e.executeImm(inst)
	case insts.FormatALU:
		e.executeALU(inst)
	case insts.FormatIndex:
		e.executeIndex(inst)
	case insts.FormatDraw:
		e.displayUnit.DRW(inst.X, inst.Y, inst.N)
	case insts.FormatTimer:
		e.executeTimer(inst)
	default:
		e.reportUnknown(pc, inst)
	}

	// Advance PC by 2 (for non-branch instructions)
	e.regFile.Advance(2)

	return result
}

// executeSystem executes CLS, RET and SYS.
func (e *Emulator) executeSystem(pc uint16, inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpCLS:
		e.displayUnit.CLS()
	case insts.OpRET:
		return e.branchUnit.RET()
	case insts.OpSYS:
		if !e.sysHandler.Handle(inst).Handled {
			e.reportUnknown(pc, inst)
		}
	}

	e.regFile.Advance(2)
	return nil
}

// executeJump executes JP, JP V0 and CALL.
func (e *Emulator) executeJump(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpJP:
		e.branchUnit.JP(inst.NNN)
	case insts.OpJPV0:
		e.branchUnit.JPV0(inst.NNN)
	case insts.OpCALL:
		return e.branchUnit.CALL(inst.NNN)
	}
	return nil
}

// executeSkip executes the conditional skips.
func (e *Emulator) executeSkip(inst *insts.Instruction) {
	vx := e.regFile.ReadReg(inst.X)
	vy := e.regFile.ReadReg(inst.Y)

	var cond bool
	switch inst.Op {
	case insts.OpSEImm:
		cond = vx == inst.KK
	case insts.OpSNEImm:
		cond = vx != inst.KK
	case insts.OpSEReg:
		cond = vx == vy
	case insts.OpSNEReg:
		cond = vx != vy
	case insts.OpSKP:
		cond = e.keys.Pressed(vx)
	case insts.OpSKNP:
		cond = !e.keys.Pressed(vx)
	}

	e.branchUnit.Skip(cond)
}

// executeKeyWait executes LD Vx, K. It reports whether a key was found.
func (e *Emulator) executeKeyWait(inst *insts.Instruction) bool {
	key, ok := e.keys.FirstPressed()
	if !ok {
		return false
	}

	e.regFile.WriteReg(inst.X, key)
	e.regFile.Advance(2)

	return true
}

// executeImm executes the register-immediate instructions.
func (e *Emulator) executeImm(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLDImm:
		e.alu.LDImm(inst.X, inst.KK)
	case insts.OpADDImm:
		e.alu.ADDImm(inst.X, inst.KK)
	case insts.OpRND:
		e.regFile.WriteReg(inst.X, e.random.Byte()&inst.KK)
	}
}

// executeALU executes the register-register instructions.
func (e *Emulator) executeALU(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLDReg:
		e.alu.LD(inst.X, inst.Y)
	case insts.OpOR:
		e.alu.OR(inst.X, inst.Y)
	case insts.OpAND:
		e.alu.AND(inst.X, inst.Y)
	case insts.OpXOR:
		e.alu.XOR(inst.X, inst.Y)
	case insts.OpADDReg:
		e.alu.ADD(inst.X, inst.Y)
	case insts.OpSUB:
		e.alu.SUB(inst.X, inst.Y)
	case insts.OpSHR:
		e.alu.SHR(inst.X)
	case insts.OpSUBN:
		e.alu.SUBN(inst.X, inst.Y)
	case insts.OpSHL:
		e.alu.SHL(inst.X)
	}
}

// executeIndex executes the I register and memory transfer instructions.
func (e *Emulator) executeIndex(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLDI:
		e.lsu.LDI(inst.NNN)
	case insts.OpADDI:
		e.lsu.ADDI(inst.X)
	case insts.OpLDF:
		e.lsu.LDF(inst.X)
	case insts.OpLDB:
		e.lsu.LDB(inst.X)
	case insts.OpLDIVx:
		e.lsu.StoreRegs(inst.X)
	case insts.OpLDVxI:
		e.lsu.LoadRegs(inst.X)
	}
}

// executeTimer executes the delay and sound timer transfers.
func (e *Emulator) executeTimer(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLDVxDT:
		e.regFile.WriteReg(inst.X, e.timers.Delay)
	case insts.OpLDDTVx:
		e.timers.Delay = e.regFile.ReadReg(inst.X)
	case insts.OpLDSTVx:
		e.timers.Sound = e.regFile.ReadReg(inst.X)
	}
}

// reportUnknown logs and emits an unknown-opcode event. The caller still
// advances the PC, so execution always makes progress.
func (e *Emulator) reportUnknown(pc uint16, inst *insts.Instruction) {
	e.logger.Info("unknown opcode", "pc", hex3(pc), "opcode", hex4(inst.Word))
	e.emit(Event{Kind: EventUnknownOpcode, PC: pc, Word: inst.Word, Cycle: e.instructionCount})
}

func (e *Emulator) emit(ev Event) {
	for _, l := range e.listeners {
		l.OnEvent(ev)
	}
}

func hex3(v uint16) string {
	return fmt.Sprintf("0x%03X", v)
}

func hex4(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
