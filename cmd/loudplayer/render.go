// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ik5/loudplayer"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/internal/cli"
	"github.com/ik5/loudplayer/internal/config"
	"github.com/ik5/loudplayer/player"
	"github.com/ik5/loudplayer/playlist"
)

var errUnknownSetting = errors.New("unknown setting")

type RenderCmd struct {
	In        string             `arg:"" type:"existingfile" help:"Audio file to render."`
	Out       string             `arg:"" type:"path" help:"Output WAV file."`
	Set       map[string]float64 `short:"s" placeholder:"KEY=VALUE" help:"Override boost, bass, mid or treble."`
	NoLimiter bool               `name:"no-limiter" help:"Disable the soft clipper."`
	Buffer    int                `default:"4096" help:"Samples per read."`
}

// settings applies the command line overrides to the configured values.
func (c *RenderCmd) settings(cfg config.Config) (graph.Settings, error) {
	s := cfg.Settings()
	if c.NoLimiter {
		s.Limiter = false
	}

	keys := make([]string, 0, len(c.Set))
	for k := range c.Set {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := c.Set[k]
		switch strings.ToLower(k) {
		case "boost":
			s.Boost = v
		case "bass":
			s.Bass = v
		case "mid":
			s.Mid = v
		case "treble":
			s.Treble = v
		default:
			return s, fmt.Errorf("%q: %w", k, errUnknownSetting)
		}
	}

	return s, nil
}

func (c *RenderCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	settings, err := c.settings(cfg)
	if err != nil {
		return err
	}

	out, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	gr := graph.New(loudplayer.NewRegistry(), cfg.Graph(logger), settings)
	frames, err := loudplayer.Render(gr, playlist.FileTrack{Path: c.In}, out, c.Buffer)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	cli.PrintKeyValue(os.Stdout, "Rendered", c.Out)
	cli.PrintKeyValue(os.Stdout, "Frames", fmt.Sprint(frames))
	cli.PrintKeyValue(os.Stdout, "Format", fmt.Sprintf("%d Hz, %d ch", cfg.SampleRate, cfg.Channels))
	cli.PrintKeyValue(os.Stdout, "Boost", player.BoostLabel(settings.Boost))

	return nil
}
