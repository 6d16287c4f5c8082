// Package config provides YAML-based configuration loading and validation
// for the flappy simulation.
package config

import (
	"math"
	"time"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Field     FieldConfig              `yaml:"field"`
	Player    PlayerConfig             `yaml:"player"`
	Ground    GroundConfig             `yaml:"ground"`
	Obstacles ObstacleConfig           `yaml:"obstacles"`
	Styles    map[string]ObstacleStyle `yaml:"styles"`
	Timing    TimingConfig             `yaml:"timing"`
}

// FieldConfig describes the playing field every moving entity reads.
type FieldConfig struct {
	GroundPosition float64 `yaml:"ground_position"` // Y of the ground line
	MoveSpeed      float64 `yaml:"move_speed"`      // Horizontal scroll per tick
	Width          float64 `yaml:"width"`           // Visible field width
	Height         float64 `yaml:"height"`          // Total height including the ground band, render only
}

// PlayerConfig defines the player's vertical motion model.
// Velocity is positive upward.
type PlayerConfig struct {
	SpriteSize      float64 `yaml:"sprite_size"`
	FlapVelocity    float64 `yaml:"flap_velocity"`
	MaxFallVelocity float64 `yaml:"max_fall_velocity"`
	VelocityDecay   float64 `yaml:"velocity_decay"`
	FrameWindow     uint32  `yaml:"frame_window"` // Animation cycle length in ticks
	FrameSplit      uint32  `yaml:"frame_split"`  // Ticks into the cycle where the frame flips
}

// GroundConfig defines the scrolling ground tiles.
type GroundConfig struct {
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
}

// ObstacleConfig defines spawning and geometry shared by all styles.
type ObstacleConfig struct {
	PoolCapacity  int     `yaml:"pool_capacity"`
	SpawnInterval uint32  `yaml:"spawn_interval"` // Ticks between spawns
	Width         float64 `yaml:"width"`
	Margin        float64 `yaml:"margin"`        // Minimum distance of the gap from the top
	DrainRetired  bool    `yaml:"drain_retired"` // Retire every off-field obstacle per tick instead of one
}

// ObstacleStyle is the visual/gameplay variant of an obstacle.
type ObstacleStyle struct {
	Title       string  `yaml:"title"`
	GapSize     float64 `yaml:"gap_size"`
	Caps        bool    `yaml:"caps"`         // Four segments instead of two
	CapHeight   float64 `yaml:"cap_height"`   // Cap thickness
	CapOverhang float64 `yaml:"cap_overhang"` // How far a cap sticks out on each side
	HitPadding  float64 `yaml:"hit_padding"`  // Vertical shrink of the player's hitbox
}

// Segments returns how many visual segments an obstacle of this style has.
func (s ObstacleStyle) Segments() int {
	if s.Caps {
		return 4
	}
	return 2
}

// Extent returns how far right of the obstacle's X its widest segment reaches.
func (s ObstacleStyle) Extent(width float64) float64 {
	if s.Caps {
		return width + s.CapOverhang
	}
	return width
}

// TimingConfig defines the host tick cadence.
type TimingConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms"`
}

// TickInterval returns the configured tick interval.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickIntervalMs) * time.Millisecond
}

// GapRange returns the half-open integer range [lo, hi) gap starts are drawn from.
func (c FlappyConfig) GapRange() (lo, hi int) {
	lo = int(math.Ceil(c.Obstacles.Margin))
	hi = int(math.Floor(c.Field.GroundPosition - 2*c.Obstacles.Margin))
	return lo, hi
}

// ObstacleLifetime returns how many ticks an obstacle stays in play:
// the number of updates until it has fully left the field.
func (c FlappyConfig) ObstacleLifetime(style ObstacleStyle) int {
	travel := c.Field.Width + style.Extent(c.Obstacles.Width)
	return int(math.Floor(travel/c.Field.MoveSpeed)) + 1
}

// MaxActiveObstacles returns the most obstacles that can be in play at once
// for the given style. Spawns happen every SpawnInterval ticks and each
// obstacle retires on a distinct tick, so the bound is lifetime/interval
// rounded up.
func (c FlappyConfig) MaxActiveObstacles(style ObstacleStyle) int {
	interval := int(c.Obstacles.SpawnInterval)
	lifetime := c.ObstacleLifetime(style)
	return (lifetime + interval - 1) / interval
}

// Style returns the named obstacle style.
func (c FlappyConfig) Style(name string) (ObstacleStyle, bool) {
	s, ok := c.Styles[name]
	return s, ok
}
