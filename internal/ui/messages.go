// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer/player"
)

// TickMsg drives time label and waveform refreshes.
type TickMsg time.Time

// EventMsg carries a controller event onto the update loop.
type EventMsg player.Event

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForEvent(events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg(<-events)
	}
}
