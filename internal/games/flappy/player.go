package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Player is the gravity-bound entity the user keeps airborne.
// Velocity is positive upward; Y grows downward.
type Player struct {
	cfg   config.PlayerConfig
	field Field

	x, y         float64
	velocity     float64
	rotation     float64
	frameCounter uint32
	frame        int
}

// NewPlayer creates a player at its start position.
func NewPlayer(field Field, cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg, field: field}
	p.Reset()
	return p
}

// Reset puts the player back at the start position with no velocity.
func (p *Player) Reset() {
	p.x = (p.field.Width - p.cfg.SpriteSize) / 2
	p.y = (p.field.GroundPosition - p.cfg.SpriteSize) / 2
	p.velocity = 0
	p.rotation = 0
	p.frameCounter = 0
	p.frame = 0
}

// Flap sets the upward impulse. Several flaps before one update collapse into one.
func (p *Player) Flap() {
	p.velocity = p.cfg.FlapVelocity
}

// Update advances the player by one tick.
func (p *Player) Update() {
	p.velocity -= p.cfg.VelocityDecay
	if p.velocity < p.cfg.MaxFallVelocity {
		p.velocity = p.cfg.MaxFallVelocity
	}

	p.y = core.ClampF(p.y-p.velocity, 0, p.field.GroundPosition-p.cfg.SpriteSize)
	p.rotation = -p.velocity

	if p.frameCounter%p.cfg.FrameWindow > p.cfg.FrameSplit {
		p.frame = 1
	} else {
		p.frame = 0
	}
	p.frameCounter++
}

// Box returns the player's bounding box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.x, p.y, p.cfg.SpriteSize, p.cfg.SpriteSize)
}

// Velocity returns the current vertical velocity.
func (p *Player) Velocity() float64 { return p.velocity }

// Rotation returns the sprite tilt in degrees, nose down when positive.
func (p *Player) Rotation() float64 { return p.rotation }

// Frame returns the animation frame, 0 or 1.
func (p *Player) Frame() int { return p.frame }

// PlayerView is a read-only copy of the player's state for hosts.
type PlayerView struct {
	Box      core.Box
	Velocity float64
	Rotation float64
	Frame    int
}

func (p *Player) view() PlayerView {
	return PlayerView{
		Box:      p.Box(),
		Velocity: p.velocity,
		Rotation: p.rotation,
		Frame:    p.frame,
	}
}
