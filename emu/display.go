package emu

import "strings"

// Framebuffer geometry.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the 64x32 monochrome display. Each cell is 0 or 1.
// Dirty is set whenever CLS or DRW runs and stays set until the host calls
// ClearDirty.
type Framebuffer struct {
	cells [Width * Height]uint8
	dirty bool
}

// Pixel returns the cell at (x, y). Coordinates wrap at the display edges.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	return f.cells[index(x, y)]
}

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty acknowledges the current frame.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// Cells returns a copy of the framebuffer in row-major order.
func (f *Framebuffer) Cells() []uint8 {
	out := make([]uint8, len(f.cells))
	copy(out, f.cells[:])
	return out
}

// String renders the framebuffer with '#' for set cells and '.' for clear
// ones, one line per row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.cells[y*Width+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Framebuffer) clear() {
	f.cells = [Width * Height]uint8{}
	f.dirty = true
}

// flip XORs the cell at (x, y) with 1 and reports whether it was set before.
func (f *Framebuffer) flip(x, y int) bool {
	i := index(x, y)
	was := f.cells[i] == 1
	f.cells[i] ^= 1
	return was
}

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}

// DisplayUnit implements the CHIP-8 display instructions.
type DisplayUnit struct {
	regFile     *RegFile
	memory      *Memory
	framebuffer *Framebuffer
}

// NewDisplayUnit creates a DisplayUnit connected to the given register file,
// memory and framebuffer.
func NewDisplayUnit(regFile *RegFile, memory *Memory, framebuffer *Framebuffer) *DisplayUnit {
	return &DisplayUnit{
		regFile:     regFile,
		memory:      memory,
		framebuffer: framebuffer,
	}
}

// CLS clears every cell and marks the framebuffer dirty.
func (d *DisplayUnit) CLS() {
	d.framebuffer.clear()
}

// DRW draws an n-row sprite from memory[I] at (Vx, Vy).
// Each row is one byte, most significant bit leftmost. Set bits XOR their
// target cell; both coordinates wrap. VF becomes 1 if any set cell was
// cleared, else 0. The framebuffer is marked dirty even for n == 0.
func (d *DisplayUnit) DRW(x, y, n uint8) {
	originX := int(d.regFile.ReadReg(x))
	originY := int(d.regFile.ReadReg(y))
	addr := d.regFile.I

	d.regFile.SetFlag(0)
	collision := false

	for row := 0; row < int(n); row++ {
		bits := d.memory.Read8(addr + uint16(row))
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if d.framebuffer.flip(originX+col, originY+row) {
				collision = true
			}
		}
	}

	if collision {
		d.regFile.SetFlag(1)
	}
	d.framebuffer.dirty = true
}
