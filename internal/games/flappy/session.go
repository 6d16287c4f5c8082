package flappy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidState reports an operation the current state does not allow.
	ErrInvalidState = errors.New("flappy: invalid state")

	// ErrClosed reports use of a session after Close.
	ErrClosed = errors.New("flappy: session closed")

	// ErrUnknownStyle reports an obstacle style missing from the config.
	ErrUnknownStyle = errors.New("flappy: unknown obstacle style")
)

// Session owns one game: the player, the ground, the obstacles and their
// pool, the score and the state machine. All methods are safe for
// concurrent use; ticks never overlap.
type Session struct {
	mu sync.Mutex

	cfg     config.FlappyConfig
	style   config.ObstacleStyle
	surface Surface
	driver  Driver
	rng     *rand.Rand

	player    *Player
	ground    *Ground
	obstacles *ObstacleManager

	listeners []Listener
	logger    *log.Logger

	state     State
	score     int
	tickCount uint32
	gen       uint64 // Bumped on every Start; stale driver callbacks compare against it
	err       error
	closed    bool
}

// event is a notification collected under the lock and delivered after it.
type event struct {
	gameOver bool
	score    int
}

// NewSession validates cfg and builds a session in the Idle state.
// The ground is attached to the surface immediately.
func NewSession(cfg config.FlappyConfig, styleName string, surface Surface, driver Driver) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	style, ok := cfg.Style(styleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	field := NewField(cfg.Field)
	rng := rand.New(rand.NewSource(0))

	return &Session{
		cfg:       cfg,
		style:     style,
		surface:   surface,
		driver:    driver,
		rng:       rng,
		player:    NewPlayer(field, cfg.Player),
		ground:    NewGround(field, cfg.Ground.TileWidth, cfg.Ground.TileHeight, surface),
		obstacles: NewObstacleManager(cfg, style, surface, rng),
		logger:    log.New(io.Discard),
	}, nil
}

// SetLogger sets the logger for state transitions and faults.
func (s *Session) SetLogger(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger = l
	s.obstacles.SetLogger(l)
}

// Subscribe registers a listener for score and game-over notifications.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)
}

// Start begins a new run from Idle or GameOver. Score and tick count go back
// to zero, the RNG is reseeded, and every entity returns to its start state.
func (s *Session) Start(seed int64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state == StateRunning {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: start while %s", ErrInvalidState, state)
	}

	s.score = 0
	s.tickCount = 0
	s.err = nil
	s.rng.Seed(seed)
	s.player.Reset()
	s.ground.Reset()
	s.obstacles.Reset()

	s.gen++
	gen := s.gen
	s.state = StateRunning
	s.logger.Info("session started", "seed", seed, "style", s.style.Title)

	listeners := s.snapshotListeners()
	s.mu.Unlock()

	deliver(listeners, []event{{score: 0}})

	// Started outside the lock; this may run on the driver's own goroutine.
	s.driver.Start(func() { s.driverTick(gen) })
	return nil
}

// Tick advances the running game by one fixed step.
func (s *Session) Tick() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state != StateRunning {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: tick while %s", ErrInvalidState, state)
	}

	events, err := s.tickLocked()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	deliver(listeners, events)
	return err
}

func (s *Session) driverTick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	if s.state != StateRunning {
		s.driver.Stop()
		s.mu.Unlock()
		return
	}

	// Faults are kept in s.err for Err.
	events, _ := s.tickLocked()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	deliver(listeners, events)
}

// tickLocked runs one step. The caller holds s.mu.
func (s *Session) tickLocked() ([]event, error) {
	var events []event

	s.player.Update()

	out := s.obstacles.UpdateAll(s.player.Box())
	for i := 0; i < out.Scored; i++ {
		s.score++
		events = append(events, event{score: s.score})
	}

	if out.Collided {
		s.endLocked()
		s.logger.Info("collision", "tick", s.tickCount, "score", s.score)
		return append(events, event{gameOver: true, score: s.score}), nil
	}

	s.ground.Update()

	if err := s.obstacles.SpawnIfDue(s.tickCount); err != nil {
		s.err = fmt.Errorf("flappy: %w", err)
		s.endLocked()
		s.logger.Error("session halted", "tick", s.tickCount, "err", err)
		return append(events, event{gameOver: true, score: s.score}), s.err
	}

	s.tickCount++
	return events, nil
}

func (s *Session) endLocked() {
	s.state = StateGameOver
	s.driver.Stop()
}

// Stop ends a running game without a game-over and returns to Idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state != StateRunning {
		return fmt.Errorf("%w: stop while %s", ErrInvalidState, s.state)
	}

	s.driver.Stop()
	s.state = StateIdle
	s.logger.Info("session stopped", "tick", s.tickCount, "score", s.score)
	return nil
}

// Close halts the driver and detaches every visual. It is idempotent and
// valid in any state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.driver.Stop()
	s.obstacles.Reset()
	s.ground.Detach()
	s.state = StateIdle
	s.closed = true
	s.logger.Debug("session closed")
}

// Flap gives the player an upward impulse. It is ignored unless running.
func (s *Session) Flap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		s.player.Flap()
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// TickCount returns the number of completed ticks in this run.
func (s *Session) TickCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickCount
}

// Err returns the fault that halted the run, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Player returns a copy of the player's state.
func (s *Session) Player() PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.view()
}

// Obstacles returns copies of the active obstacles, oldest first.
func (s *Session) Obstacles() []ObstacleView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obstacles.Active()
}

// ObstacleCapacity returns the size of the obstacle pool.
func (s *Session) ObstacleCapacity() int {
	return s.obstacles.Cap()
}

// GroundView is a read-only copy of the ground's state.
type GroundView struct {
	Offset float64
	Tiles  []core.Box
}

// Ground returns a copy of the ground's state.
func (s *Session) Ground() GroundView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GroundView{Offset: s.ground.Offset(), Tiles: s.ground.Tiles()}
}

// Style returns the obstacle style the session plays with.
func (s *Session) Style() config.ObstacleStyle {
	return s.style
}

// Config returns the session configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}

func (s *Session) snapshotListeners() []Listener {
	if len(s.listeners) == 0 {
		return nil
	}
	out := make([]Listener, len(s.listeners))
	copy(out, s.listeners)
	return out
}

func deliver(listeners []Listener, events []event) {
	for _, ev := range events {
		for _, l := range listeners {
			if ev.gameOver {
				l.GameOver(ev.score)
			} else {
				l.ScoreChanged(ev.score)
			}
		}
	}
}
