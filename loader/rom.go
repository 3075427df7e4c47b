// Package loader provides ROM loading for CHIP-8 programs.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/c8sim/emu"
)

var (
	// ErrUnavailable is returned when the ROM cannot be opened or read.
	ErrUnavailable = errors.New("ROM unavailable")

	// ErrEmpty is returned for a zero-length ROM.
	ErrEmpty = errors.New("ROM is empty")

	// ErrOversized is returned when a ROM does not fit between ProgramStart
	// and the end of memory.
	ErrOversized = errors.New("ROM too large")
)

// Program represents a ROM image ready for loading into the emulator.
type Program struct {
	// Name identifies the ROM, usually its path.
	Name string
	// Data holds the raw program bytes, loaded at emu.ProgramStart.
	Data []byte
}

// Size returns the program length in bytes.
func (p *Program) Size() int {
	return len(p.Data)
}

// End returns the address one past the last program byte.
func (p *Program) End() uint16 {
	return emu.ProgramStart + uint16(len(p.Data))
}

// LoadInto copies the program into the emulator's memory.
func (p *Program) LoadInto(e *emu.Emulator) {
	e.LoadProgram(p.Data)
}

// Load reads a ROM file from disk.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM: %w: %w", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read reads a ROM image from r. The name is used in error messages.
func Read(r io.Reader, name string) (*Program, error) {
	// Read one byte past the limit so oversized images are detected
	// without reading them fully.
	data, err := io.ReadAll(io.LimitReader(r, emu.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM %s: %w: %w", name, ErrUnavailable, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	if len(data) > emu.MaxProgramSize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrOversized, emu.MaxProgramSize)
	}

	return &Program{Name: name, Data: data}, nil
}
