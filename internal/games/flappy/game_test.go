package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestGameRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v.ID, err)
		}
		if g.Title() != v.Title {
			t.Errorf("title = %q, expected %q", g.Title(), v.Title)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	// Test that given the same seed and inputs, the game produces identical results
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%8 == 0 {
			inputSequence[i].Set(core.ActionFlap)
		}
	}

	play := func() core.GameState {
		g := New(Variants[0])
		g.Reset(testRuntime(12345))
		var st core.GameState
		for _, in := range inputSequence {
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st
	}

	state1, state2 := play(), play()
	if state1 != state2 {
		t.Errorf("Determinism failed: %+v vs %+v", state1, state2)
	}
}

func TestGameReset(t *testing.T) {
	g := New(Variants[1])
	g.Reset(testRuntime(42))

	// Play until the run ends
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("run should end without input")
	}

	// Reset should clear state
	g.Reset(testRuntime(43))

	st := g.State()
	if st.Score != 0 || st.GameOver || st.Paused || st.Ticks != 0 {
		t.Errorf("Reset left state %+v", st)
	}
	if g.Session().State() != StateRunning {
		t.Errorf("session state after reset = %s", g.Session().State())
	}
}

func TestGameFlap(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime(1))

	initialY := g.Session().Player().Box.Y

	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	g.Step(in)

	// Player should have moved up (negative Y direction)
	if y := g.Session().Player().Box.Y; y >= initialY {
		t.Errorf("Flap should move player up, was %f, now %f", initialY, y)
	}

	rec := g.Record()
	if len(rec.Flaps) != 1 || rec.Flaps[0] != 0 {
		t.Errorf("recorded flaps = %v, expected [0]", rec.Flaps)
	}
}

func TestGamePause(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime(1))

	// Pause the game
	pauseInput := core.NewInputFrame()
	pauseInput.Set(core.ActionPause)
	g.Step(pauseInput)

	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	ticks := g.State().Ticks
	yBefore := g.Session().Player().Box.Y

	// Step while paused (without pause toggle)
	g.Step(core.NewInputFrame())

	if g.State().Ticks != ticks || g.Session().Player().Box.Y != yBefore {
		t.Error("simulation should not advance while paused")
	}

	// Unpause
	g.Step(pauseInput)

	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameRender(t *testing.T) {
	cfg := testRuntime(1)
	g := New(Variants[1])
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	// Check that ground is drawn
	groundY := cfg.ScreenH - 1
	if ch := screen.Get(0, groundY); ch != GroundChar {
		t.Errorf("Ground should be drawn at bottom, got %q", ch)
	}

	// Check that the player is drawn near the middle
	found := false
	for y := 0; y < cfg.ScreenH && !found; y++ {
		for x := 0; x < cfg.ScreenW; x++ {
			if screen.Get(x, y) == PlayerBodyChar {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("Render should draw the player")
	}

	// Obstacles show up once spawned and moved into view
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	bars := 0
	for y := 0; y < cfg.ScreenH; y++ {
		for x := 0; x < cfg.ScreenW; x++ {
			if screen.Get(x, y) == BarChar {
				bars++
			}
		}
	}
	if bars == 0 {
		t.Error("Render should draw obstacle bars")
	}
}
