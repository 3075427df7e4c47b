package host

import (
	"fmt"
	"io"
	"sort"

	"github.com/sarchlab/c8sim/emu"
)

// Headless is a Display that keeps the last frame in memory and, when
// given a writer, prints every frame as text.
type Headless struct {
	out    io.Writer
	last   []uint8
	frames int
}

// NewHeadless creates a headless display. out may be nil.
func NewHeadless(out io.Writer) *Headless {
	return &Headless{
		out:  out,
		last: make([]uint8, emu.Width*emu.Height),
	}
}

// Render implements Display.
func (h *Headless) Render(fb *emu.Framebuffer) error {
	h.last = fb.Cells()
	h.frames++

	if h.out == nil {
		return nil
	}
	if _, err := fmt.Fprintf(h.out, "frame %d\n%s", h.frames, fb.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Frames returns the number of frames rendered.
func (h *Headless) Frames() int {
	return h.frames
}

// Last returns the cells of the last rendered frame in row-major order.
func (h *Headless) Last() []uint8 {
	return h.last
}

// KeyEvent sets the keypad state from Cycle onwards.
type KeyEvent struct {
	Cycle uint64
	Keys  emu.KeyState
}

// ScriptedKeys is a KeySource that replays key states by cycle number.
// Keys must be called exactly once per cycle, as Loop does.
type ScriptedKeys struct {
	events    []KeyEvent
	quitAfter uint64
	cycle     uint64
	current   emu.KeyState
}

// NewScriptedKeys creates a key source that replays events and asks to
// quit once quitAfter cycles have run. quitAfter 0 never quits.
func NewScriptedKeys(quitAfter uint64, events ...KeyEvent) *ScriptedKeys {
	sorted := append([]KeyEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cycle < sorted[j].Cycle
	})

	return &ScriptedKeys{
		events:    sorted,
		quitAfter: quitAfter,
	}
}

// Keys implements KeySource.
func (s *ScriptedKeys) Keys() emu.KeyState {
	for len(s.events) > 0 && s.events[0].Cycle <= s.cycle {
		s.current = s.events[0].Keys
		s.events = s.events[1:]
	}
	s.cycle++
	return s.current
}

// Quit implements KeySource.
func (s *ScriptedKeys) Quit() bool {
	return s.quitAfter > 0 && s.cycle >= s.quitAfter
}
