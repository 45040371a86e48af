// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var waveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#66d9ef"))

// renderWaveform plots byte time-domain data (128 is silence) as one dot
// per column, picking evenly spaced samples to fit width. Without data
// it draws a flat line.
func renderWaveform(data []byte, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	dot := '•'
	if len(data) == 0 {
		dot = '─'
	}
	for x := range width {
		v := byte(128)
		if len(data) > 0 {
			v = data[x*len(data)/width]
		}
		row := (255 - int(v)) * (height - 1) / 255
		grid[row][x] = dot
	}

	lines := make([]string, height)
	for r, line := range grid {
		lines[r] = string(line)
	}

	return waveStyle.Render(strings.Join(lines, "\n"))
}
