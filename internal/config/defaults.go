package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// Style names shipped with the default configuration.
const (
	StyleClassic = "classic"
	StyleCapped  = "capped"
)

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			GroundPosition: 472,
			MoveSpeed:      10.5,
			Width:          480,
			Height:         600,
		},
		Player: PlayerConfig{
			SpriteSize:      60,
			FlapVelocity:    25,
			MaxFallVelocity: -25,
			VelocityDecay:   3,
			FrameWindow:     10,
			FrameSplit:      5,
		},
		Ground: GroundConfig{
			TileWidth:  128,
			TileHeight: 128,
		},
		Obstacles: ObstacleConfig{
			PoolCapacity:  10,
			SpawnInterval: 35,
			Width:         75,
			Margin:        100,
			DrainRetired:  false,
		},
		Styles: map[string]ObstacleStyle{
			StyleClassic: {
				Title:   "Flappy",
				GapSize: 200,
			},
			StyleCapped: {
				Title:       "Flappy (capped pipes)",
				GapSize:     150,
				Caps:        true,
				CapHeight:   30,
				CapOverhang: 5,
				HitPadding:  5,
			},
		},
		Timing: TimingConfig{
			TickIntervalMs: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
