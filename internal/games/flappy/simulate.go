package flappy

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/clock"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// SimulateOptions configures a headless autopilot run.
type SimulateOptions struct {
	Style      string
	Seed       int64
	PilotTicks uint32        // Autopilot flaps only before this tick, then the player falls
	Interval   time.Duration // Zero runs unpaced on a manual driver
}

// pilotDriver runs a hook before every tick of the wrapped driver.
type pilotDriver struct {
	Driver
	before func()
}

func (d pilotDriver) Start(tick func()) {
	d.Driver.Start(func() {
		d.before()
		tick()
	})
}

// Simulate plays one run with the autopilot and returns its journal entry.
// A paced run cancelled through ctx is stopped and returns ctx.Err().
func Simulate(ctx context.Context, cfg config.FlappyConfig, opts SimulateOptions) (storage.Run, error) {
	run := storage.Run{
		GameID: variantID(opts.Style),
		Style:  opts.Style,
		Seed:   opts.Seed,
	}

	var (
		s     *Session
		mu    sync.Mutex
		flaps []uint32
	)
	pilot := func() {
		tick := s.TickCount()
		if tick >= opts.PilotTicks || s.State() != StateRunning || !Autopilot(s) {
			return
		}
		s.Flap()
		mu.Lock()
		flaps = append(flaps, tick)
		mu.Unlock()
	}

	var (
		manual *clock.Manual
		ticker *clock.Ticker
		driver Driver
	)
	if opts.Interval > 0 {
		ticker = clock.NewTicker(ctx, opts.Interval)
		driver = pilotDriver{Driver: ticker, before: pilot}
	} else {
		manual = clock.NewManual()
		driver = pilotDriver{Driver: manual, before: pilot}
	}

	s, err := NewSession(cfg, opts.Style, core.NewScene(), driver)
	if err != nil {
		return run, err
	}
	defer s.Close()
	s.SetLogger(logger.With("sim", opts.Seed))

	over := make(chan struct{})
	s.Subscribe(ListenerFuncs{OnGameOver: func(int) { close(over) }})

	if err := s.Start(opts.Seed); err != nil {
		return run, err
	}

	if manual != nil {
		for s.State() == StateRunning {
			if err := ctx.Err(); err != nil {
				//nolint:errcheck // Running was just checked
				s.Stop()
				return run, err
			}
			manual.Fire()
		}
	} else {
		select {
		case <-over:
		case <-ctx.Done():
			//nolint:errcheck // may already be over
			s.Stop()
			ticker.Wait()
			return run, ctx.Err()
		}
		ticker.Wait()
	}

	mu.Lock()
	run.Flaps = flaps
	mu.Unlock()
	run.Ticks = s.TickCount()
	run.FinalScore = s.Score()
	return run, s.Err()
}

// variantID returns the registered variant playing style.
func variantID(style string) string {
	for _, v := range Variants {
		if v.Style == style {
			return v.ID
		}
	}
	return style
}
