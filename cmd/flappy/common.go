package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	logLevel = log.InfoLevel
	logFile  io.Closer
)

// setupLogging parses --log-level and routes game logs to stderr.
// Commands that take over the terminal switch to a file with useLogFile.
func setupLogging() error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logLevel = lvl
	flappy.SetLogger(newLogger(os.Stderr, "flappy"))
	return nil
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// useLogFile points game logs at ~/.flappy/flappy.log, since stderr belongs
// to the alternate screen. Falls back to discarding logs.
func useLogFile() *log.Logger {
	l := log.New(io.Discard)
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".flappy", "flappy.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				logFile = f
				l = newLogger(f, "flappy")
			}
		}
	}
	flappy.SetLogger(l)
	return l
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// openStore opens the run journal, warning and continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}

// loadConfig loads the game config the same way the games do and exits on
// an invalid file.
func loadConfig() config.FlappyConfig {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// terminalRuntime builds the runtime config from the terminal size, the
// configured tick interval and flags.
func terminalRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickInterval = loadConfig().Timing.TickInterval()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
