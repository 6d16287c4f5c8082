package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/clock"
)

// ErrReplayOverrun reports a replay that did not end within its tick budget.
var ErrReplayOverrun = errors.New("flappy: replay did not end")

// replaySlack is how many ticks past the last flap a replay may run.
// Without input the player falls onto a bottom bar long before this.
const replaySlack = 10_000

// ReplayResult is the outcome of a headless replay.
type ReplayResult struct {
	Score int
	Ticks uint32
	Err   error // Fault that halted the replayed run, if any
}

// Replay runs a recorded input sequence headlessly until game over.
// flaps lists, in ascending order, the tick counts a flap was applied before.
func Replay(cfg config.FlappyConfig, style string, seed int64, flaps []uint32) (ReplayResult, error) {
	driver := clock.NewManual()
	s, err := NewSession(cfg, style, core.NewScene(), driver)
	if err != nil {
		return ReplayResult{}, err
	}
	defer s.Close()

	if err := s.Start(seed); err != nil {
		return ReplayResult{}, err
	}

	var limit uint64 = replaySlack
	if n := len(flaps); n > 0 {
		limit += uint64(flaps[n-1])
	}

	next := 0
	for steps := uint64(0); s.State() == StateRunning; steps++ {
		if steps > limit {
			return ReplayResult{Score: s.Score(), Ticks: s.TickCount()},
				fmt.Errorf("%w after %d ticks", ErrReplayOverrun, steps)
		}

		tick := s.TickCount()
		for next < len(flaps) && flaps[next] < tick {
			next++ // Flaps for ticks already past are stale
		}
		if next < len(flaps) && flaps[next] == tick {
			s.Flap()
			next++
		}
		driver.Fire()
	}

	return ReplayResult{Score: s.Score(), Ticks: s.TickCount(), Err: s.Err()}, nil
}
