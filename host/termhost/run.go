package termhost

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// Device is the terminal opened for key input.
const Device = "/dev/tty"

// Run plays e in the current terminal until the user quits, ctx is
// cancelled or the emulator stops. Frames go to stdout.
func Run(ctx context.Context, e *emu.Emulator, cfg *config.Config, logger logr.Logger) (host.Stats, error) {
	if err := CheckSize(os.Stdout); err != nil {
		return host.Stats{}, err
	}

	fg, bg, err := cfg.Palette()
	if err != nil {
		return host.Stats{}, err
	}

	tty, err := OpenTTY(Device)
	if err != nil {
		return host.Stats{}, err
	}
	defer func() {
		if err := tty.Close(); err != nil {
			logger.Error(err, "terminal restore failed")
		}
	}()

	display := NewDisplay(os.Stdout, fg, bg)
	if err := display.Clear(); err != nil {
		return host.Stats{}, fmt.Errorf("failed to clear terminal: %w", err)
	}
	defer func() { _ = display.Restore() }()

	keys := NewKeys(cfg.KeyMap, cfg.HoldFrames)
	loop := host.NewLoop(e, display, keys,
		host.WithClockHz(cfg.ClockHz),
		host.WithLogger(logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return keys.ReadLoop(gctx, tty)
	})
	g.Go(func() error {
		defer keys.Stop()
		return loop.Run(gctx)
	})

	err = g.Wait()
	return loop.Stats(), err
}
