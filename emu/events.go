package emu

import "fmt"

// EventKind identifies a side effect of executing an instruction.
type EventKind uint8

// Event kinds.
const (
	// EventTone fires on the cycle where the sound timer runs out.
	EventTone EventKind = iota + 1

	// EventUnknownOpcode fires when an instruction is not recognized.
	// Execution continues with the next instruction.
	EventUnknownOpcode
)

func (k EventKind) String() string {
	switch k {
	case EventTone:
		return "tone"
	case EventUnknownOpcode:
		return "unknown-opcode"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is a side effect emitted during Step.
type Event struct {
	Kind EventKind

	// PC is the address of the instruction that was executing.
	PC uint16

	// Word is the raw instruction word.
	Word uint16

	// Cycle is the number of instructions executed before this one.
	Cycle uint64
}

// Listener receives events emitted by the emulator.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ev Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}
