package host

import (
	"image/color"

	"github.com/sarchlab/c8sim/emu"
)

// FillRGBA writes fb into buf as RGBA pixels in row-major order, fg for
// set cells and bg for clear ones. Alpha is always opaque. buf must hold
// emu.Width*emu.Height*4 bytes.
func FillRGBA(buf []byte, fb *emu.Framebuffer, fg, bg color.RGBA) {
	for i, cell := range fb.Cells() {
		c := bg
		if cell != 0 {
			c = fg
		}
		buf[i*4+0] = c.R
		buf[i*4+1] = c.G
		buf[i*4+2] = c.B
		buf[i*4+3] = 0xFF
	}
}
