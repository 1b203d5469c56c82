// Package tui provides the Bubble Tea front-end for blockfall.
// It handles the terminal UI loop, key bindings, history browsing and the
// Wish SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that scheduled it; a model ignores ticks
// scheduled by an earlier game of the same session.
type TickMsg struct {
	Time time.Time
	Loop int64
}

var loopSeq atomic.Int64

// nextLoop returns a fresh tick loop identifier.
func nextLoop() int64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
func tickCmd(interval time.Duration, loop int64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
