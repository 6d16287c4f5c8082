package flappy

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/clock"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Visual characters for rendering
const (
	BarChar        = '█'
	CapChar        = '▀'
	GroundChar     = '▓'
	GroundAltChar  = '▒'
	PlayerBodyChar = '●'
)

// Variant is one registered flavor of the game.
type Variant struct {
	ID    string
	Title string
	Style string // Key into the config's styles map
}

// Variants lists every variant registered with the registry.
var Variants = []Variant{
	{ID: "flappy", Title: "Flappy", Style: config.StyleClassic},
	{ID: "flappy_capped", Title: "Flappy (capped pipes)", Style: config.StyleCapped},
}

// configPath stores the custom config path set via CLI
var configPath string

// logger is handed to every session created by a Game
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by sessions created from now on.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Session to the registry.Game contract. It owns the scene the
// session draws into and a manual driver fired once per Step.
type Game struct {
	variant Variant
	cfg     config.FlappyConfig
	scene   *core.Scene
	driver  *clock.Manual
	session *Session
	runtime core.RuntimeConfig
	err     error

	paused   bool
	score    int
	gameOver bool
	seed     int64
	flaps    []uint32
}

// New creates a game for the given variant. The session is built on the
// first Reset, when the configuration is loaded.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset starts a new run with the runtime seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.session == nil {
		if err := g.build(); err != nil {
			g.err = err
			logger.Error("cannot create session", "game", g.variant.ID, "err", err)
			return
		}
	}

	if g.session.State() == StateRunning {
		//nolint:errcheck // Running was just checked
		g.session.Stop()
	}

	g.paused = false
	g.gameOver = false
	g.seed = runtime.Seed
	g.flaps = g.flaps[:0]
	if err := g.session.Start(runtime.Seed); err != nil {
		g.err = err
		logger.Error("cannot start session", "game", g.variant.ID, "err", err)
	}
}

func (g *Game) build() error {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultFlappyConfig()
	}

	g.cfg = cfg
	g.scene = core.NewScene()
	g.driver = clock.NewManual()

	s, err := NewSession(cfg, g.variant.Style, g.scene, g.driver)
	if err != nil {
		return err
	}
	s.SetLogger(logger.With("game", g.variant.ID))
	s.Subscribe(g)
	g.session = s
	return nil
}

// ScoreChanged implements Listener.
func (g *Game) ScoreChanged(score int) {
	g.score = score
}

// GameOver implements Listener.
func (g *Game) GameOver(finalScore int) {
	g.score = finalScore
	g.gameOver = true
}

// Step applies the input and fires one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionFlap) {
		g.session.Flap()
		g.recordFlap(g.session.TickCount())
	}

	g.driver.Fire()

	return core.StepResult{State: g.State()}
}

// recordFlap remembers the tick a flap was applied before, once per tick.
func (g *Game) recordFlap(tick uint32) {
	if n := len(g.flaps); n > 0 && g.flaps[n-1] == tick {
		return
	}
	g.flaps = append(g.flaps, tick)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if g.session != nil {
		st.Ticks = int(g.session.TickCount())
	}
	return st
}

// Err returns the error that kept the game from starting, if any.
func (g *Game) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.session != nil {
		return g.session.Err()
	}
	return nil
}

// Session returns the underlying session, nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Scene returns the scene the session draws into.
func (g *Game) Scene() *core.Scene {
	return g.scene
}

// Config returns the loaded configuration.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Record returns the journal entry of the current run: everything Replay
// needs to reproduce it.
func (g *Game) Record() storage.Run {
	r := storage.Run{
		GameID:     g.variant.ID,
		Style:      g.variant.Style,
		Seed:       g.seed,
		FinalScore: g.score,
		Flaps:      append([]uint32(nil), g.flaps...),
	}
	if g.session != nil {
		r.Ticks = g.session.TickCount()
	}
	return r
}

// Render draws the scene scaled from field units to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "no session")
		return
	}

	vp := core.NewViewport(dst, g.cfg.Field.Width, g.cfg.Field.Height)

	for _, e := range g.scene.Entries() {
		ch := BarChar
		switch e.Kind {
		case core.VisualCap:
			ch = CapChar
		case core.VisualGround:
			ch = GroundChar
			if e.ID%2 == 0 {
				ch = GroundAltChar
			}
		}
		dst.DrawRectColor(vp.Rect(e.Box), ch, core.VisualColor(e.Kind, e.ID))
	}

	g.drawPlayer(dst, vp)

	// Draw HUD
	scoreText := fmt.Sprintf(" Score: %d ", g.score)
	dst.DrawText(2, 0, scoreText)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawPlayer renders the player body with a heading glyph on its right edge.
func (g *Game) drawPlayer(dst *core.Screen, vp core.Viewport) {
	p := g.session.Player()
	r := vp.Rect(p.Box)

	body := core.ColorPlayer
	if p.Frame == 1 {
		body = core.ColorPlayerAlt
	}
	dst.DrawRectColor(r, PlayerBodyChar, body)

	head := '▶'
	switch {
	case p.Rotation <= -10:
		head = '▲'
	case p.Rotation >= 10:
		head = '▼'
	}
	dst.SetColor(r.Right()-1, r.Y+r.H/2, head, core.ColorHeading)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register every variant with the registry
func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Title, func() registry.Game {
			return New(v)
		})
	}
}
