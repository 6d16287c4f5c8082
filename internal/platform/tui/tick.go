// Package tui provides the Bubble Tea host for the flappy simulation.
// It handles the terminal UI loop, input mapping, and run journaling.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg fires one host frame for the game model that scheduled it.
type TickMsg struct {
	Loop uint64 // Tick loop the message belongs to
	At   time.Time
}

// loopSeq numbers tick loops across every program in the process.
var loopSeq atomic.Uint64

func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd schedules the next frame of loop after interval.
// A model drops ticks of loops other than its own, so a tick still in
// flight when an SSH session swaps games cannot start a second loop.
func tickCmd(loop uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}
