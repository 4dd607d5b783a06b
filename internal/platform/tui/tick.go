// Package tui provides the Bubble Tea host for geirtris.
// It handles the terminal UI loop, input mapping, menus and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one host frame of the game model that scheduled it.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var lastTickID atomic.Uint64

// newTickID returns an id for a new tick chain. A model drops ticks of
// any other chain, so a session never runs two loops for one game.
func newTickID() uint64 {
	return lastTickID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
