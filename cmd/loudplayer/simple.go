// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/loudplayer"
	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/internal/ui"
	"github.com/ik5/loudplayer/output"
	"github.com/ik5/loudplayer/player"
	"github.com/ik5/loudplayer/playlist"
)

type SimpleCmd struct {
	Asset string `arg:"" type:"existingfile" help:"Audio file to play."`
}

func (c *SimpleCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	dev, err := output.Open(cfg.Output(logger))
	if err != nil {
		return err
	}

	reg := loudplayer.NewRegistry()
	track := playlist.FileTrack{Path: c.Asset}
	open := func() (audio.Source, error) {
		return loudplayer.Open(reg, track, dev.SampleRate(), dev.Channels())
	}

	sp, err := player.NewSimple(dev, open, logger)
	if err != nil {
		return err
	}
	defer sp.Close()

	if _, err := tea.NewProgram(ui.NewSimpleModel(sp, track.Name())).Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	return nil
}
