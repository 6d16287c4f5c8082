package config

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalid reports a configuration value outside its allowed range.
	ErrInvalid = errors.New("invalid configuration")

	// ErrDegenerateGap reports a field too short for the obstacle margins and gap.
	ErrDegenerateGap = errors.New("degenerate gap range")

	// ErrCapacity reports a spawn cadence that can outgrow the obstacle pool.
	ErrCapacity = errors.New("obstacle pool too small")
)

// Validate checks the configuration for values the simulation cannot run with.
func (c FlappyConfig) Validate() error {
	f := c.Field
	switch {
	case f.GroundPosition <= 0:
		return fmt.Errorf("%w: field.ground_position must be > 0, got %g", ErrInvalid, f.GroundPosition)
	case f.MoveSpeed <= 0:
		return fmt.Errorf("%w: field.move_speed must be > 0, got %g", ErrInvalid, f.MoveSpeed)
	case f.Width <= 0:
		return fmt.Errorf("%w: field.width must be > 0, got %g", ErrInvalid, f.Width)
	}

	p := c.Player
	switch {
	case p.SpriteSize <= 0 || p.SpriteSize >= f.GroundPosition:
		return fmt.Errorf("%w: player.sprite_size must be in (0, ground_position), got %g", ErrInvalid, p.SpriteSize)
	case p.MaxFallVelocity >= 0:
		return fmt.Errorf("%w: player.max_fall_velocity must be negative, got %g", ErrInvalid, p.MaxFallVelocity)
	case p.FlapVelocity <= 0:
		return fmt.Errorf("%w: player.flap_velocity must be positive, got %g", ErrInvalid, p.FlapVelocity)
	case p.VelocityDecay <= 0:
		return fmt.Errorf("%w: player.velocity_decay must be positive, got %g", ErrInvalid, p.VelocityDecay)
	case p.FrameWindow == 0 || p.FrameSplit >= p.FrameWindow:
		return fmt.Errorf("%w: player.frame_split must be below frame_window", ErrInvalid)
	}

	if c.Ground.TileWidth <= 0 {
		return fmt.Errorf("%w: ground.tile_width must be > 0, got %g", ErrInvalid, c.Ground.TileWidth)
	}

	o := c.Obstacles
	switch {
	case o.PoolCapacity <= 0:
		return fmt.Errorf("%w: obstacles.pool_capacity must be > 0, got %d", ErrInvalid, o.PoolCapacity)
	case o.SpawnInterval == 0:
		return fmt.Errorf("%w: obstacles.spawn_interval must be > 0", ErrInvalid)
	case o.Width <= 0:
		return fmt.Errorf("%w: obstacles.width must be > 0, got %g", ErrInvalid, o.Width)
	case o.Margin < 0:
		return fmt.Errorf("%w: obstacles.margin must not be negative, got %g", ErrInvalid, o.Margin)
	}

	if c.Timing.TickIntervalMs <= 0 {
		return fmt.Errorf("%w: timing.tick_interval_ms must be > 0, got %d", ErrInvalid, c.Timing.TickIntervalMs)
	}

	if len(c.Styles) == 0 {
		return fmt.Errorf("%w: no obstacle styles defined", ErrInvalid)
	}

	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.validateStyle(c.Styles[name]); err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
	}
	return nil
}

func (c FlappyConfig) validateStyle(s ObstacleStyle) error {
	if s.GapSize <= 0 {
		return fmt.Errorf("%w: gap_size must be > 0, got %g", ErrInvalid, s.GapSize)
	}
	if s.HitPadding < 0 || 2*s.HitPadding >= c.Player.SpriteSize {
		return fmt.Errorf("%w: hit_padding must be in [0, sprite_size/2), got %g", ErrInvalid, s.HitPadding)
	}
	if s.Caps && (s.CapHeight <= 0 || s.CapOverhang < 0) {
		return fmt.Errorf("%w: caps need cap_height > 0 and cap_overhang >= 0", ErrInvalid)
	}

	lo, hi := c.GapRange()
	if hi <= lo {
		return fmt.Errorf("%w: ground_position %g leaves no room for margin %g",
			ErrDegenerateGap, c.Field.GroundPosition, c.Obstacles.Margin)
	}
	// The lowest possible gap must still end above the ground.
	if float64(hi-1)+s.GapSize > c.Field.GroundPosition {
		return fmt.Errorf("%w: gap_size %g does not fit below gap start %d",
			ErrDegenerateGap, s.GapSize, hi-1)
	}
	if s.Caps && s.CapHeight > float64(lo) {
		return fmt.Errorf("%w: cap_height %g exceeds margin %d", ErrDegenerateGap, s.CapHeight, lo)
	}

	if need := c.MaxActiveObstacles(s); need > c.Obstacles.PoolCapacity {
		return fmt.Errorf("%w: up to %d obstacles in play, pool holds %d",
			ErrCapacity, need, c.Obstacles.PoolCapacity)
	}
	return nil
}
