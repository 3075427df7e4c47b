package sdlhost

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// Run plays e in a window until it is closed, Escape is pressed, ctx is
// cancelled or the emulator stops. It must be called from a function
// running under mainthread.Run.
func Run(ctx context.Context, e *emu.Emulator, cfg *config.Config, logger logr.Logger) (host.Stats, error) {
	fg, bg, err := cfg.Palette()
	if err != nil {
		return host.Stats{}, err
	}

	w, err := Open(cfg.Scale, fg, bg, cfg.KeyMap)
	if err != nil {
		return host.Stats{}, err
	}
	defer w.Close()

	logger.Info("window open", "scale", cfg.Scale)

	loop := host.NewLoop(e, w, w,
		host.WithClockHz(cfg.ClockHz),
		host.WithLogger(logger),
	)
	err = loop.Run(ctx)

	return loop.Stats(), err
}
