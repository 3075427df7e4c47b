package emu

import "github.com/sarchlab/c8sim/insts"

// SysResult represents the result of a SYS (0nnn) call.
type SysResult struct {
	// Handled is true if the handler implemented the routine at the target
	// address. Unhandled calls are reported as unknown opcodes.
	Handled bool
}

// SysHandler is the interface for handling SYS calls into host machine
// code. CHIP-8 programs written for the COSMAC VIP interpreter use 0nnn to
// call native routines; an emulator can provide its own versions.
type SysHandler interface {
	// Handle executes the routine at inst.NNN. The program counter is
	// advanced past the instruction by the emulator afterwards.
	Handle(inst *insts.Instruction) SysResult
}

// SysHandlerFunc adapts a function to the SysHandler interface.
type SysHandlerFunc func(inst *insts.Instruction) SysResult

// Handle calls f(inst).
func (f SysHandlerFunc) Handle(inst *insts.Instruction) SysResult {
	return f(inst)
}

// DefaultSysHandler implements no native routines.
type DefaultSysHandler struct{}

// NewDefaultSysHandler creates a default SYS handler.
func NewDefaultSysHandler() *DefaultSysHandler {
	return &DefaultSysHandler{}
}

// Handle reports every call as unhandled.
func (h *DefaultSysHandler) Handle(_ *insts.Instruction) SysResult {
	return SysResult{Handled: false}
}
