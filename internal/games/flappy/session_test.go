package flappy

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/clock"
	"github.com/vovakirdan/tui-flappy/internal/pool"
)

// recorder is a Listener that keeps every notification.
type recorder struct {
	mu        sync.Mutex
	scores    []int
	gameOvers []int
}

func (r *recorder) ScoreChanged(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
}

func (r *recorder) GameOver(finalScore int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameOvers = append(r.gameOvers, finalScore)
}

func (r *recorder) snapshot() ([]int, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.scores...), append([]int(nil), r.gameOvers...)
}

func newTestSession(t *testing.T, style string) (*Session, *core.Scene, *clock.Manual) {
	t.Helper()
	scene := core.NewScene()
	driver := clock.NewManual()
	s, err := NewSession(config.DefaultFlappyConfig(), style, scene, driver)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s, scene, driver
}

func autopilot(s *Session) {
	if Autopilot(s) {
		s.Flap()
	}
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(config.DefaultFlappyConfig(), "nope", core.NewScene(), clock.NewManual())
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}

	cfg := config.DefaultFlappyConfig()
	cfg.Field.GroundPosition = 250
	_, err = NewSession(cfg, config.StyleClassic, core.NewScene(), clock.NewManual())
	if !errors.Is(err, config.ErrDegenerateGap) {
		t.Errorf("expected ErrDegenerateGap, got %v", err)
	}
}

func TestSessionStateErrors(t *testing.T) {
	s, _, _ := newTestSession(t, config.StyleClassic)

	if s.State() != StateIdle {
		t.Fatalf("new session state = %s, expected idle", s.State())
	}
	if err := s.Tick(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Tick while idle: expected ErrInvalidState, got %v", err)
	}
	if err := s.Stop(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Stop while idle: expected ErrInvalidState, got %v", err)
	}

	if err := s.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Start(1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Start while running: expected ErrInvalidState, got %v", err)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state after stop = %s, expected idle", s.State())
	}
}

func TestSessionStartNotifiesZero(t *testing.T) {
	s, _, driver := newTestSession(t, config.StyleClassic)
	rec := &recorder{}
	s.Subscribe(rec)

	if err := s.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	scores, _ := rec.snapshot()
	if len(scores) != 1 || scores[0] != 0 {
		t.Errorf("notifications on start = %v, expected [0]", scores)
	}
	if !driver.Active() {
		t.Error("Start should start the driver")
	}
}

func TestSessionCollisionEndsGame(t *testing.T) {
	s, _, driver := newTestSession(t, config.StyleClassic)
	rec := &recorder{}
	s.Subscribe(rec)

	if err := s.Start(3); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Never flapping, the player settles on the ground and runs into the
	// first bottom bar.
	fired := 0
	for s.State() == StateRunning && fired < 100 {
		driver.Fire()
		fired++
	}

	if s.State() != StateGameOver {
		t.Fatalf("state after %d ticks = %s, expected game over", fired, s.State())
	}
	if driver.Active() {
		t.Error("game over should stop the driver")
	}
	if driver.Fire() {
		t.Error("stopped driver should not tick")
	}

	_, overs := rec.snapshot()
	if len(overs) != 1 || overs[0] != 0 {
		t.Errorf("game over notifications = %v, expected [0]", overs)
	}

	// The collision tick ends before the tick count advances
	if got := s.TickCount(); got != uint32(fired-1) {
		t.Errorf("tick count = %d, expected %d", got, fired-1)
	}

	if err := s.Tick(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Tick after game over: expected ErrInvalidState, got %v", err)
	}
}

func TestSessionRestartIsClean(t *testing.T) {
	s, scene, driver := newTestSession(t, config.StyleCapped)

	if err := s.Start(5); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	for s.State() == StateRunning {
		driver.Fire()
	}

	if err := s.Start(6); err != nil {
		t.Fatalf("restart failed: %v", err)
	}

	if s.Score() != 0 || s.TickCount() != 0 {
		t.Errorf("restart left score=%d ticks=%d", s.Score(), s.TickCount())
	}
	if n := len(s.Obstacles()); n != 0 {
		t.Errorf("restart left %d active obstacles", n)
	}
	if s.obstacles.pool.InUse() != 0 {
		t.Errorf("restart left %d pooled obstacles in use", s.obstacles.pool.InUse())
	}
	// Only the ground remains on the scene
	if scene.Len() != len(s.Ground().Tiles) {
		t.Errorf("scene holds %d visuals, expected %d ground tiles", scene.Len(), len(s.Ground().Tiles))
	}
	if p := s.Player(); p.Box.Y != 206 || p.Velocity != 0 {
		t.Errorf("player not reset: %+v", p)
	}
	if s.Ground().Offset != 0 {
		t.Errorf("ground not reset: offset %g", s.Ground().Offset)
	}
}

func TestSessionScoresExactlyOnce(t *testing.T) {
	for _, style := range []string{config.StyleClassic, config.StyleCapped} {
		t.Run(style, func(t *testing.T) {
			s, _, driver := newTestSession(t, style)
			rec := &recorder{}
			s.Subscribe(rec)

			if err := s.Start(11); err != nil {
				t.Fatalf("Start() failed: %v", err)
			}
			for i := 0; i < 5000 && s.State() == StateRunning; i++ {
				autopilot(s)
				driver.Fire()
			}

			scores, _ := rec.snapshot()
			// Start notifies 0, then every point is announced once, in order
			for i, sc := range scores {
				if sc != i {
					t.Fatalf("notification %d = %d, scores %v", i, sc, scores)
				}
			}
			if last := scores[len(scores)-1]; last != s.Score() {
				t.Errorf("last notification %d, score %d", last, s.Score())
			}
		})
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, uint32, []float64) {
		s, _, driver := newTestSession(t, config.StyleClassic)
		if err := s.Start(12345); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}

		var gaps []float64
		seen := 0
		for i := 0; i < 3000 && s.State() == StateRunning; i++ {
			autopilot(s)
			driver.Fire()
			obs := s.Obstacles()
			if n := len(obs); n > 0 && seen < 5 && obs[n-1].X == 480 {
				gaps = append(gaps, obs[n-1].GapStart)
				seen++
			}
		}
		return s.Score(), s.TickCount(), gaps
	}

	score1, ticks1, gaps1 := run()
	score2, ticks2, gaps2 := run()

	if score1 != score2 || ticks1 != ticks2 {
		t.Errorf("runs differ: score %d/%d ticks %d/%d", score1, score2, ticks1, ticks2)
	}
	if len(gaps1) != len(gaps2) {
		t.Fatalf("gap counts differ: %v %v", gaps1, gaps2)
	}
	for i := range gaps1 {
		if gaps1[i] != gaps2[i] {
			t.Errorf("gap %d differs: %g vs %g", i, gaps1[i], gaps2[i])
		}
	}
}

func TestSessionFlapOnlyWhileRunning(t *testing.T) {
	s, _, driver := newTestSession(t, config.StyleClassic)

	s.Flap()
	if err := s.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	driver.Fire()
	if v := s.Player().Velocity; v != -3 {
		t.Errorf("flap before start leaked: velocity %g", v)
	}

	s.Flap()
	driver.Fire()
	if v := s.Player().Velocity; v != 22 {
		t.Errorf("velocity after flap = %g, expected 22", v)
	}
}

func TestSessionSpawnFailureHalts(t *testing.T) {
	s, _, driver := newTestSession(t, config.StyleClassic)

	// Swap in a manager whose pool cannot keep up with its cadence
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.PoolCapacity = 1
	cfg.Obstacles.SpawnInterval = 1
	s.obstacles = NewObstacleManager(cfg, cfg.Styles[config.StyleClassic], s.surface, s.rng)

	if err := s.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("first tick failed: %v", err)
	}

	err := s.Tick()
	if !errors.Is(err, pool.ErrExhausted) {
		t.Fatalf("expected pool.ErrExhausted, got %v", err)
	}
	if s.State() != StateGameOver {
		t.Errorf("state = %s, expected game over", s.State())
	}
	if !errors.Is(s.Err(), pool.ErrExhausted) {
		t.Errorf("Err() = %v", s.Err())
	}
	if driver.Active() {
		t.Error("fault should stop the driver")
	}

	// A restart clears the fault
	if err := s.Start(2); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if s.Err() != nil {
		t.Errorf("Err() after restart = %v", s.Err())
	}
}

func TestSessionClose(t *testing.T) {
	s, scene, driver := newTestSession(t, config.StyleCapped)
	if err := s.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		driver.Fire()
	}

	s.Close()
	s.Close()

	if scene.Len() != 0 {
		t.Errorf("scene holds %d visuals after close", scene.Len())
	}
	if driver.Active() {
		t.Error("close should stop the driver")
	}
	if err := s.Start(1); !errors.Is(err, ErrClosed) {
		t.Errorf("Start after close: expected ErrClosed, got %v", err)
	}
}

func TestSessionTickerGameOver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := clock.NewTicker(ctx, time.Millisecond)
	s, err := NewSession(config.DefaultFlappyConfig(), config.StyleClassic, core.NewScene(), ticker)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	over := make(chan int, 1)
	s.Subscribe(ListenerFuncs{OnGameOver: func(score int) { over <- score }})

	if err := s.Start(9); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case <-over:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker-driven session never ended")
	}

	ticker.Wait()
	ticks := s.TickCount()
	time.Sleep(10 * time.Millisecond)
	if s.TickCount() != ticks || s.State() != StateGameOver {
		t.Errorf("session kept ticking after game over")
	}
}

func TestSessionRestartFromGameOverListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := clock.NewTicker(ctx, time.Millisecond)
	s, err := NewSession(config.DefaultFlappyConfig(), config.StyleClassic, core.NewScene(), ticker)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	defer s.Close()

	var overs atomic.Int32
	restarted := make(chan error, 1)
	second := make(chan struct{})
	s.Subscribe(ListenerFuncs{OnGameOver: func(int) {
		switch overs.Add(1) {
		case 1:
			restarted <- s.Start(10)
		case 2:
			close(second)
		}
	}})

	if err := s.Start(9); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case err := <-restarted:
		if err != nil {
			t.Fatalf("restart from listener failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Start from a game over listener never returned, state=%v", s.State())
	}

	select {
	case <-second:
	case <-time.After(5 * time.Second):
		t.Fatalf("restarted session never reached game over, state=%v ticks=%d", s.State(), s.TickCount())
	}
	ticker.Wait()
}

func TestSessionStopHaltsTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := clock.NewTicker(ctx, time.Millisecond)
	s, err := NewSession(config.DefaultFlappyConfig(), config.StyleClassic, core.NewScene(), ticker)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Start(9); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.TickCount() < 3 && time.Now().Before(deadline) {
		s.Flap() // keep clear of the ground
		time.Sleep(time.Millisecond)
	}

	if err := s.Stop(); err != nil {
		// A collision may have beaten us to it
		if s.State() != StateGameOver {
			t.Fatalf("Stop() failed: %v", err)
		}
	}
	ticks := s.TickCount()
	time.Sleep(20 * time.Millisecond)
	if got := s.TickCount(); got != ticks {
		t.Errorf("ticks advanced after Stop: %d -> %d", ticks, got)
	}
}

func TestSessionLongRunCapacity(t *testing.T) {
	s, _, driver := newTestSession(t, config.StyleClassic)
	rng := rand.New(rand.NewSource(99))

	for run := int64(0); run < 20; run++ {
		if err := s.Start(run); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		for s.State() == StateRunning {
			if rng.Intn(4) == 0 {
				autopilot(s)
			}
			driver.Fire()
			if n := len(s.Obstacles()); n > s.ObstacleCapacity() {
				t.Fatalf("run %d: %d active obstacles exceed capacity", run, n)
			}
		}
		if s.Err() != nil {
			t.Fatalf("run %d halted: %v", run, s.Err())
		}
	}
}
