// Package termhost runs the simulator in a terminal. Two framebuffer rows
// are drawn per text line with half-block characters, and keys are read
// from a raw-mode tty.
package termhost

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// Minimum terminal geometry, in character cells.
const (
	MinCols = emu.Width
	MinRows = emu.Height / 2
)

// ErrTooSmall is returned by CheckSize when the terminal cannot hold a
// full frame.
var ErrTooSmall = errors.New("terminal too small")

// Half-block glyphs indexed by (top << 1) | bottom.
var glyphs = [4]string{" ", "▄", "▀", "█"}

// Display renders frames with ANSI escape sequences.
type Display struct {
	out    io.Writer
	fg, bg color.RGBA
	buf    strings.Builder
}

var _ host.Display = (*Display)(nil)

// NewDisplay creates a display writing to out in the given colors.
func NewDisplay(out io.Writer, fg, bg color.RGBA) *Display {
	return &Display{out: out, fg: fg, bg: bg}
}

// Render implements host.Display.
func (d *Display) Render(fb *emu.Framebuffer) error {
	d.buf.Reset()
	d.buf.WriteString("\x1b[H")
	fmt.Fprintf(&d.buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm",
		d.fg.R, d.fg.G, d.fg.B, d.bg.R, d.bg.G, d.bg.B)

	for y := 0; y < emu.Height; y += 2 {
		for x := 0; x < emu.Width; x++ {
			d.buf.WriteString(glyphs[fb.Pixel(x, y)<<1|fb.Pixel(x, y+1)])
		}
		d.buf.WriteString("\x1b[0K\r\n")
	}
	d.buf.WriteString("\x1b[0m")

	if _, err := io.WriteString(d.out, d.buf.String()); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

// Clear erases the screen and hides the cursor.
func (d *Display) Clear() error {
	_, err := io.WriteString(d.out, "\x1b[2J\x1b[H\x1b[?25l")
	return err
}

// Restore shows the cursor and resets attributes.
func (d *Display) Restore() error {
	_, err := io.WriteString(d.out, "\x1b[0m\x1b[?25h\r\n")
	return err
}

// CheckSize verifies that the terminal behind f can hold a full frame.
func CheckSize(f *os.File) error {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}
	if int(ws.Col) < MinCols || int(ws.Row) < MinRows {
		return fmt.Errorf("%w: %dx%d, need %dx%d", ErrTooSmall, ws.Col, ws.Row, MinCols, MinRows)
	}
	return nil
}
