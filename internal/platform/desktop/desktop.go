// Package desktop hosts the game in an ebiten window. The window draws in
// field units, so the scene needs no scaling.
package desktop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var overlayColor = color.RGBA{A: 0x80}

// Host is an ebiten.Game driving one flappy game, one tick per ebiten update.
type Host struct {
	game    *flappy.Game
	store   *storage.Store
	logger  *log.Logger
	runtime core.RuntimeConfig

	input core.InputFrame
	state core.GameState
	saved bool
	runID string
}

// New creates a host and starts the first run. store may be nil.
func New(game *flappy.Game, store *storage.Store, logger *log.Logger, runtime core.RuntimeConfig) *Host {
	if logger == nil {
		logger = log.Default()
	}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	game.Reset(runtime)
	return &Host{
		game:    game,
		store:   store,
		logger:  logger,
		runtime: runtime,
		state:   game.State(),
	}
}

// actions translates the keys pressed this frame into semantic actions.
func actions() []core.Action {
	var out []core.Action
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		out = append(out, core.ActionFlap)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		out = append(out, core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		out = append(out, core.ActionRestart)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		out = append(out, core.ActionQuit)
	}
	return out
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	return h.apply(actions())
}

// apply runs one host frame with the given actions.
func (h *Host) apply(acts []core.Action) error {
	h.input.Clear()
	for _, a := range acts {
		h.input.Set(a)
	}

	if h.input.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	if h.state.GameOver {
		if h.input.Has(core.ActionRestart) {
			h.restart()
		}
		return nil
	}

	h.state = h.game.Step(h.input).State
	if h.state.GameOver && !h.saved {
		h.saveRun()
	}
	return nil
}

func (h *Host) restart() {
	h.runtime.Seed = time.Now().UnixNano()
	h.game.Reset(h.runtime)
	h.state = h.game.State()
	h.saved = false
	h.runID = ""
}

func (h *Host) saveRun() {
	h.saved = true
	if h.store == nil {
		return
	}
	id, err := h.store.SaveRun(h.game.Record())
	if err != nil {
		h.logger.Error("cannot save run", "err", err)
		return
	}
	h.runID = id
	h.logger.Info("run saved", "id", id, "score", h.state.Score)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(core.ColorSky.RGBA())

	if scene := h.game.Scene(); scene != nil {
		for _, e := range scene.Entries() {
			fillBox(screen, e.Box, core.VisualColor(e.Kind, e.ID).RGBA())
		}
	}

	if s := h.game.Session(); s != nil {
		p := s.Player()
		c := core.ColorPlayer
		if p.Frame == 1 {
			c = core.ColorPlayerAlt
		}
		fillBox(screen, p.Box, c.RGBA())
	}

	msg := fmt.Sprintf("Score: %d", h.state.Score)
	switch {
	case h.state.GameOver:
		w, hh := h.Layout(0, 0)
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(hh), overlayColor, false)
		msg += "\nGAME OVER - F2 to restart, Esc to quit"
		if h.runID != "" {
			msg += "\nrun " + h.runID
		}
	case h.state.Paused:
		msg += "\nPAUSED - P to resume"
	}
	if err := h.game.Err(); err != nil {
		msg += "\n" + err.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := h.game.Config()
	return int(cfg.Field.Width), int(cfg.Field.Height)
}

// State returns the state after the last update.
func (h *Host) State() core.GameState {
	return h.state
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run() error {
	w, hh := h.Layout(0, 0)
	ebiten.SetWindowSize(w, hh)
	ebiten.SetWindowTitle(h.game.Title())
	ebiten.SetTPS(tps(h.runtime.TickInterval))

	if err := ebiten.RunGame(h); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// tps converts a tick interval to ebiten's ticks per second.
func tps(interval time.Duration) int {
	if interval <= 0 {
		return ebiten.DefaultTPS
	}
	n := int(time.Second / interval)
	if n < 1 {
		return 1
	}
	return n
}

func fillBox(dst *ebiten.Image, b core.Box, c color.Color) {
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}
