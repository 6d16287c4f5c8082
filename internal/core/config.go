package core

import "time"

// RuntimeConfig contains host-side settings passed to a game at (re)start.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Fixed simulation step, 30ms by default
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 30 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// GameState is the host-facing summary of a running game.
type GameState struct {
	Score    int  // Current score
	Ticks    int  // Ticks simulated in the current run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the host paused ticking
}

// StepResult is returned after each host step.
type StepResult struct {
	State GameState
}
