package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"libdb.so/ringclock"
	"libdb.so/ringclock/internal/nvstate"
	"libdb.so/ringclock/internal/termled"
)

var (
	config   = "ringclock.toml"
	verbose  = false
	simulate = false
	logFile  = ""
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
	pflag.BoolVarP(&simulate, "simulate", "s", simulate, "show the ring in the terminal instead of on the serial device")
	pflag.StringVar(&logFile, "log-file", logFile, "write logs to this file instead of stderr")
}

func main() {
	pflag.Parse()
	os.Exit(start())
}

// start runs ringclock and returns the exit code. It returns instead of
// exiting so that the log file is closed.
func start() int {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			return 1
		}
		defer f.Close()
		logOutput = f
	} else if simulate {
		// The terminal belongs to the simulator.
		logOutput = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		logger.Error("ringclock stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if simulate {
		return runSimulator(ctx, cfg)
	}

	d, err := ringclock.NewDaemon(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("daemon failed: %w", err)
	}

	return nil
}

func runSimulator(ctx context.Context, cfg *ringclock.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	screen, err := termled.Open(255, cfg.Reverse)
	if err != nil {
		return err
	}
	defer screen.Close()

	loop, err := ringclock.NewLoop(cfg, ringclock.Peripherals{
		Time:       ringclock.SystemClock{Location: loc},
		Brightness: screen,
		Buttons:    screen,
		Store:      nvstate.NewFile(cfg.StateFile),
		LEDs:       screen,
		Status:     screen,
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create render loop: %w", err)
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error { return screen.Run(ctx) })
	errg.Go(func() error { return loop.Run(ctx) })

	err = errg.Wait()
	if errors.Is(err, termled.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func readConfig() (*ringclock.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !pflag.CommandLine.Changed("config") {
			slog.Info("no configuration file, using defaults", "path", config)
			return ringclock.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := ringclock.ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
