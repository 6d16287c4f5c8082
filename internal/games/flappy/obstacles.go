package flappy

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/pool"
)

// ObstacleManager spawns, scrolls and retires obstacles.
// Active obstacles form a FIFO queue; the head is the oldest and leftmost.
type ObstacleManager struct {
	pool     *pool.Pool[Obstacle]
	active   []*Obstacle
	surface  Surface
	rng      *rand.Rand
	interval uint32
	drain    bool
	logger   *log.Logger
}

// NewObstacleManager creates a manager with a pool sized from the config.
// Every pooled obstacle gets its own block of entity IDs on the surface.
func NewObstacleManager(cfg config.FlappyConfig, style config.ObstacleStyle, surface Surface, rng *rand.Rand) *ObstacleManager {
	shape := newObstacleShape(cfg, style)
	next := obstacleIDBase
	p := pool.New(cfg.Obstacles.PoolCapacity, func(o *Obstacle) {
		o.init(shape, next)
		next += maxSegments
	})

	return &ObstacleManager{
		pool:     p,
		active:   make([]*Obstacle, 0, p.Cap()),
		surface:  surface,
		rng:      rng,
		interval: cfg.Obstacles.SpawnInterval,
		drain:    cfg.Obstacles.DrainRetired,
		logger:   log.New(io.Discard),
	}
}

// SetLogger sets the logger for spawn and retire events.
func (m *ObstacleManager) SetLogger(l *log.Logger) {
	m.logger = l
}

// SpawnIfDue spawns an obstacle when tick falls on the spawn cadence.
// A full pool yields a wrapped pool.ErrExhausted and nothing is spawned.
func (m *ObstacleManager) SpawnIfDue(tick uint32) error {
	if tick%m.interval != 0 {
		return nil
	}

	o, err := m.pool.Acquire()
	if err != nil {
		return fmt.Errorf("spawn at tick %d: %w", tick, err)
	}
	o.Attach(m.surface, m.rng)
	m.active = append(m.active, o)

	m.logger.Debug("obstacle spawned", "tick", tick, "gap", o.gapStart, "active", len(m.active))
	return nil
}

// UpdateAll hit-tests and scrolls every active obstacle in queue order, then
// retires the head if it has left the field. Every obstacle is updated even
// after a collision has been found.
func (m *ObstacleManager) UpdateAll(target core.Box) TickOutcome {
	var out TickOutcome
	for _, o := range m.active {
		res := o.HitTest(target)
		if res.Scored {
			out.Scored++
		}
		if res.Collided {
			out.Collided = true
		}
		o.Update()
	}

	for len(m.active) > 0 && m.active[0].outOfBounds {
		m.retireHead()
		out.Retired++
		if !m.drain {
			break
		}
	}
	return out
}

func (m *ObstacleManager) retireHead() {
	head := m.active[0]
	copy(m.active, m.active[1:])
	m.active[len(m.active)-1] = nil
	m.active = m.active[:len(m.active)-1]

	head.Detach()
	m.pool.Release(head)
	m.logger.Debug("obstacle retired", "active", len(m.active))
}

// Reset detaches every active obstacle and returns all of them to the pool.
func (m *ObstacleManager) Reset() {
	for i, o := range m.active {
		o.Detach()
		m.active[i] = nil
	}
	m.active = m.active[:0]

	// Obstacles released without a detach, if any, still leave the surface.
	m.pool.Each(func(o *Obstacle, _ bool) {
		o.Detach()
	})
	m.pool.ReleaseAll()
}

// Len returns the number of active obstacles.
func (m *ObstacleManager) Len() int {
	return len(m.active)
}

// Cap returns the pool capacity.
func (m *ObstacleManager) Cap() int {
	return m.pool.Cap()
}

// Active returns read-only copies of the active obstacles, oldest first.
func (m *ObstacleManager) Active() []ObstacleView {
	out := make([]ObstacleView, len(m.active))
	for i, o := range m.active {
		out[i] = o.view()
	}
	return out
}
