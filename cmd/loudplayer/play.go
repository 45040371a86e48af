// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/internal/ui"
	"github.com/ik5/loudplayer/output"
	"github.com/ik5/loudplayer/player"
	"github.com/ik5/loudplayer/playlist"
)

type PlayCmd struct {
	Files []string `arg:"" optional:"" type:"existingfile" help:"Audio files to queue."`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	dev, err := output.Open(cfg.Output(logger))
	if err != nil {
		return err
	}

	gr := graph.New(loudplayer.NewRegistry(), cfg.Graph(logger), cfg.Settings())
	ctl := player.New(dev, gr, player.Config{Logger: logger})
	defer ctl.Close()

	// A bad first file is reported in the UI status line.
	if err := ctl.SelectFiles(playlist.Files(c.Files...)); err != nil {
		logger.Printf("play: %v", err)
	}

	p := tea.NewProgram(ui.NewModel(ctl, cfg.TimeUpdate, logger), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	return nil
}
