// Package main provides the entry point for c8sim, a CHIP-8 virtual
// machine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/faiface/mainthread"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
	"github.com/sarchlab/c8sim/host/sdlhost"
	"github.com/sarchlab/c8sim/host/termhost"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/statsview"
)

var (
	configPath  = flag.String("config", "", "Path to configuration file (JSON, or YAML by extension)")
	backend     = flag.String("backend", "", "Host backend: sdl, term or headless")
	scale       = flag.Int("scale", 0, "Window pixels per framebuffer cell")
	hz          = flag.Int("hz", -1, "Instructions per second (0 = unpaced)")
	cycles      = flag.Uint64("cycles", 0, "Stop after this many instructions (0 = no limit)")
	tonePath    = flag.String("tone", "", "Record tones to this WAV file")
	decodeCache = flag.Bool("decode-cache", false, "Enable the decoded-instruction cache")
	statsAddr   = flag.String("statsview", "", "Serve runtime statistics at this address")
	memvizPath  = flag.String("memviz", "", "Write the final machine state as a Graphviz file")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	verbosity   = flag.Int("v", 0, "Log verbosity (0-2)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8sim [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// SDL needs the main OS thread, so everything runs under mainthread.
	exitCode := 0
	mainthread.Run(func() {
		exitCode = run(flag.Arg(0))
	})
	os.Exit(exitCode)
}

func run(programPath string) int {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	applyFlags(cfg, overrides{
		backend:     *backend,
		scale:       *scale,
		hz:          *hz,
		cycles:      *cycles,
		tonePath:    *tonePath,
		decodeCache: *decodeCache,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		return 1
	}

	logger := funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{Verbosity: *verbosity})

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}
	logger.Info("loaded", "rom", prog.Name, "bytes", prog.Size())

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if *statsAddr != "" {
		statsview.Launch(*statsAddr, os.Stderr)
	}

	m := newMachine(cfg, logger)
	prog.LoadInto(m.emulator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, runErr := runBackend(ctx, m.emulator, cfg, logger)

	if err := m.close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing tone file: %v\n", err)
	}

	if *memvizPath != "" {
		if err := dumpState(*memvizPath, m.emulator); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing state graph: %v\n", err)
		}
	}

	if *verbosity > 0 || cfg.Backend == config.BackendHeadless {
		printSummary(os.Stdout, m, stats)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

func runBackend(ctx context.Context, e *emu.Emulator, cfg *config.Config, logger logr.Logger) (host.Stats, error) {
	switch cfg.Backend {
	case config.BackendSDL:
		return sdlhost.Run(ctx, e, cfg, logger)
	case config.BackendTerminal:
		return termhost.Run(ctx, e, cfg, logger)
	case config.BackendHeadless:
		return runHeadless(ctx, e, cfg, logger)
	}
	return host.Stats{}, errors.New("unknown backend " + cfg.Backend)
}

func runHeadless(ctx context.Context, e *emu.Emulator, cfg *config.Config, logger logr.Logger) (host.Stats, error) {
	display := host.NewHeadless(nil)
	loop := host.NewLoop(e, display, host.NewScriptedKeys(0),
		host.WithClockHz(cfg.ClockHz),
		host.WithLogger(logger),
	)
	err := loop.Run(ctx)
	return loop.Stats(), err
}
