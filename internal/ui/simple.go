// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer/internal/cli"
	"github.com/ik5/loudplayer/player"
)

// SimpleModel drives player.Simple with three keys.
type SimpleModel struct {
	player *player.Simple
	name   string
	status string
}

func NewSimpleModel(p *player.Simple, name string) SimpleModel {
	return SimpleModel{player: p, name: name}
}

func (m SimpleModel) Init() tea.Cmd { return nil }

func (m SimpleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		m.player.Play()
	case " ":
		m.player.Pause()
	case "s":
		m.status = ""
		if err := m.player.Stop(); err != nil {
			m.status = err.Error()
		}
	}

	return m, nil
}

func (m SimpleModel) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("loudplayer 🔊"))
	b.WriteString("\n")

	state := "paused"
	if m.player.Playing() {
		state = "playing"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", cli.ValueStyle.Render(m.name), cli.KeyStyle.Render(state)))

	if m.status != "" {
		b.WriteString(cli.ErrorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("p play · space pause · s stop · q quit"))
	b.WriteString("\n")

	return b.String()
}
