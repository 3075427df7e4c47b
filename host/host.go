// Package host connects an emulator to a display and a key source and
// drives it at a fixed instruction rate.
package host

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/emu"
)

// Display shows framebuffer contents. Render is only called when the
// framebuffer changed since the previous frame.
type Display interface {
	Render(fb *emu.Framebuffer) error
}

// KeySource reports which keypad keys are held. Keys is called once per
// instruction. Quit reports that the user asked to stop.
type KeySource interface {
	Keys() emu.KeyState
	Quit() bool
}

// Stats summarizes a run.
type Stats struct {
	// Cycles is the number of instructions the loop executed.
	Cycles uint64
	// Frames is the number of Render calls.
	Frames uint64
	// WaitCycles is the number of cycles spent blocked in LD Vx, K.
	WaitCycles uint64
}

// Loop runs an emulator against a display and a key source.
type Loop struct {
	emulator *emu.Emulator
	display  Display
	keys     KeySource
	clockHz  int
	logger   logr.Logger

	stats Stats
}

// Option is a functional option for configuring the Loop.
type Option func(*Loop)

// WithLogger sets the logger for lifecycle messages and, at V(1), frames.
func WithLogger(logger logr.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithClockHz sets the instruction rate. 0 runs as fast as possible.
func WithClockHz(hz int) Option {
	return func(l *Loop) {
		l.clockHz = hz
	}
}

// NewLoop creates a Loop. The default rate is unpaced.
func NewLoop(e *emu.Emulator, display Display, keys KeySource, opts ...Option) *Loop {
	l := &Loop{
		emulator: e,
		display:  display,
		keys:     keys,
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Stats returns the counters of the current or last run.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run executes instructions until ctx is cancelled, the key source asks to
// quit, or a step fails. Reaching the emulator's instruction limit ends the
// run without error. Each iteration feeds the current keys, executes one
// instruction and renders the framebuffer if it is dirty.
func (l *Loop) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.clockHz > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(l.clockHz))
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.Info("run started", "clockHz", l.clockHz)

	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("run cancelled", "cycles", l.stats.Cycles)
			return nil
		}

		if l.keys.Quit() {
			l.logger.Info("quit requested", "cycles", l.stats.Cycles)
			return nil
		}

		if err := l.cycle(); err != nil {
			if errors.Is(err, emu.ErrMaxInstructions) {
				l.logger.Info("instruction limit reached", "cycles", l.stats.Cycles)
				return nil
			}
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
}

func (l *Loop) cycle() error {
	l.emulator.SetKeys(l.keys.Keys())

	result := l.emulator.Step()
	if result.Err != nil {
		return result.Err
	}

	l.stats.Cycles++
	if result.Waiting {
		l.stats.WaitCycles++
	}

	fb := l.emulator.Framebuffer()
	if !fb.Dirty() {
		return nil
	}

	if err := l.display.Render(fb); err != nil {
		return err
	}
	fb.ClearDirty()
	l.stats.Frames++

	if v := l.logger.V(1); v.Enabled() {
		v.Info("frame", "n", l.stats.Frames, "cycle", l.stats.Cycles)
	}

	return nil
}
