package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/cache"
	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// overrides holds command-line values that replace config settings when
// set.
type overrides struct {
	backend     string
	scale       int
	hz          int // negative means unset
	cycles      uint64
	tonePath    string
	decodeCache bool
}

func applyFlags(cfg *config.Config, o overrides) {
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.scale > 0 {
		cfg.Scale = o.scale
	}
	if o.hz >= 0 {
		cfg.ClockHz = o.hz
	}
	if o.cycles > 0 {
		cfg.MaxCycles = o.cycles
	}
	if o.tonePath != "" {
		cfg.TonePath = o.tonePath
	}
	if o.decodeCache {
		cfg.DecodeCache = true
	}
}

// machine is an emulator with its optional attachments.
type machine struct {
	emulator *emu.Emulator
	cache    *cache.DecodeCache
	tone     *host.ToneRecorder
}

func newMachine(cfg *config.Config, logger logr.Logger) *machine {
	m := &machine{}

	opts := []emu.EmulatorOption{
		emu.WithLogger(logger),
		emu.WithMaxInstructions(cfg.MaxCycles),
	}
	if cfg.DecodeCache {
		m.cache = cache.New(cache.DefaultConfig())
		opts = append(opts, emu.WithDecodeCache(m.cache))
	}
	if cfg.TonePath != "" {
		m.tone = host.NewToneRecorder(cfg.TonePath, cfg.ClockHz, cfg.ToneHz)
		opts = append(opts, emu.WithListener(m.tone))
	}

	m.emulator = emu.NewEmulator(opts...)
	return m
}

func (m *machine) close() error {
	if m.tone == nil {
		return nil
	}
	return m.tone.Close()
}

// machineState is the part of the emulator drawn by dumpState.
type machineState struct {
	Registers    *emu.RegFile
	Timers       *emu.Timers
	Keys         emu.KeyState
	Instructions uint64
}

func dumpState(path string, e *emu.Emulator) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	writeState(f, e)
	return nil
}

func writeState(w io.Writer, e *emu.Emulator) {
	memviz.Map(w, &machineState{
		Registers:    e.RegFile(),
		Timers:       e.Timers(),
		Keys:         e.Keys(),
		Instructions: e.InstructionCount(),
	})
}

func printSummary(w io.Writer, m *machine, stats host.Stats) {
	fmt.Fprintf(w, "Instructions executed: %d\n", m.emulator.InstructionCount())
	fmt.Fprintf(w, "Frames rendered: %d\n", stats.Frames)
	fmt.Fprintf(w, "Key wait cycles: %d\n", stats.WaitCycles)
	if m.cache != nil {
		cs := m.cache.Stats()
		fmt.Fprintf(w, "Decode cache: %d hits, %d misses (%.1f%%), %d invalidations\n",
			cs.Hits, cs.Misses, 100*cs.HitRate(), cs.Invalidations)
	}
	if m.tone != nil {
		fmt.Fprintf(w, "Tones recorded: %d\n", m.tone.Tones())
	}
	fmt.Fprintf(w, "\n%s", m.emulator.Framebuffer().String())
}
