package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Surface receives the visuals owned by the simulation.
// core.Scene is the in-memory implementation every host uses.
type Surface interface {
	Attach(id core.EntityID, v core.Visual)
	Place(id core.EntityID, b core.Box)
	Detach(id core.EntityID)
}

// Driver invokes the tick callback at a fixed interval until stopped.
// Stop must be idempotent and callable from inside the callback.
type Driver interface {
	Start(tick func())
	Stop()
}

// Listener is notified of session events.
// Callbacks run after the session has released its lock, on the goroutine
// that caused the event, so they may call back into the session.
type Listener interface {
	ScoreChanged(score int)
	GameOver(finalScore int)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnScoreChanged func(score int)
	OnGameOver     func(finalScore int)
}

// ScoreChanged implements Listener.
func (l ListenerFuncs) ScoreChanged(score int) {
	if l.OnScoreChanged != nil {
		l.OnScoreChanged(score)
	}
}

// GameOver implements Listener.
func (l ListenerFuncs) GameOver(finalScore int) {
	if l.OnGameOver != nil {
		l.OnGameOver(finalScore)
	}
}

// Entity ID layout on the surface. Ground tiles and obstacle segments
// live in disjoint ranges so one surface can hold both.
const (
	groundIDBase   core.EntityID = 1
	obstacleIDBase core.EntityID = 1000
	maxSegments                  = 4
)

// HitResult is what one obstacle reports about the player in a tick.
type HitResult struct {
	Scored   bool // The player just passed the obstacle; reported once per attachment
	Collided bool
}

// TickOutcome aggregates the hit results of every active obstacle.
type TickOutcome struct {
	Collided bool
	Scored   int
	Retired  int
}
