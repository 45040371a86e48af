// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/loudplayer/internal/cli"
	"github.com/ik5/loudplayer/player"
)

const barWidth = 24

var (
	labelStyle  = lipgloss.NewStyle().Foreground(cli.MutedColor).Width(8)
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor).Width(8)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.AccentColor)
	helpStyle   = lipgloss.NewStyle().Foreground(cli.MutedColor).Italic(true)
)

func renderPlayerView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderSeek(m))
	b.WriteString("\n\n")
	b.WriteString(renderSliders(m))
	b.WriteString("\n")
	b.WriteString(renderWaveform(m.wave, waveWidth, waveHeight))
	b.WriteString("\n\n")
	b.WriteString(renderPlaylist(m))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(cli.ErrorStyle.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("space play/pause · p/n prev/next · s stop · ←/→ seek · tab/+/- sliders · l limiter · r reset · ↑/↓ enter select · q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderHeader(m Model) string {
	title := cli.TitleStyle.UnsetMarginBottom().Render("loudplayer 🔊")

	name := "No track"
	if tr, ok := m.ctl.Current(); ok {
		name = tr.Name()
	}
	state := "⏸"
	if m.ctl.Playing() {
		state = "▶"
	}

	return title + "\n" + fmt.Sprintf("%s %s", state, cli.ValueStyle.Render(name))
}

func renderSeek(m Model) string {
	v := player.SeekValue(m.clock.Position, m.clock.Duration, m.clock.DurationKnown)

	return fmt.Sprintf("%s %s",
		renderBar(float64(v)/player.SeekSteps, barWidth*2),
		player.TimeLabel(m.clock.Position, m.clock.Duration, m.clock.DurationKnown))
}

// renderBar draws a fill bar for a fraction in [0, 1].
func renderBar(fraction float64, width int) string {
	fill := int(min(max(fraction, 0), 1) * float64(width))

	return "[" + activeStyle.Render(strings.Repeat("━", fill)) + strings.Repeat("─", width-fill) + "]"
}

func renderSliders(m Model) string {
	var b strings.Builder

	settings := m.ctl.Graph().Settings()
	for i, s := range sliders {
		style := labelStyle
		if i == m.focus {
			style = focusStyle
		}
		v := s.value(settings)
		b.WriteString(style.Render(s.label))
		b.WriteString(renderBar((v-s.min)/(s.max-s.min), barWidth))
		b.WriteString(" ")
		b.WriteString(s.display(v))
		b.WriteString("\n")
	}

	check := "[ ]"
	if settings.Limiter {
		check = "[x]"
	}
	b.WriteString(labelStyle.Render("Limiter"))
	b.WriteString(check)
	b.WriteString("\n")

	return b.String()
}

func renderPlaylist(m Model) string {
	s := m.ctl.Session()
	if s.Playlist.Len() == 0 {
		return helpStyle.Render("Playlist is empty")
	}

	var b strings.Builder
	for i, tr := range s.Playlist.Tracks() {
		marker := "  "
		if i == m.cursor {
			marker = "› "
		}
		line := fmt.Sprintf("%s%2d. %s", marker, i+1, tr.Name())
		if i == s.Playlist.Index() {
			line = activeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
