// Package flappy implements the side-scrolling avoidance game: a player
// falling under gravity, a stream of pooled obstacles with gaps, a tiled
// scrolling ground, and the session state machine that ticks them.
//
// The simulation has no timing of its own. A Driver decides when Tick runs
// and a Surface receives the geometry of every visual the simulation owns.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Field is the immutable playing field every moving entity reads.
type Field struct {
	GroundPosition float64 // Y of the ground line
	MoveSpeed      float64 // Horizontal scroll per tick
	Width          float64 // Visible width; obstacles enter at this X
}

// NewField builds a field from its configuration section.
func NewField(cfg config.FieldConfig) Field {
	return Field{
		GroundPosition: cfg.GroundPosition,
		MoveSpeed:      cfg.MoveSpeed,
		Width:          cfg.Width,
	}
}
