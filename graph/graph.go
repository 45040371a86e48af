// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"io"
	"log"

	"github.com/ik5/loudplayer/audio"
	"github.com/ik5/loudplayer/effects"
	"github.com/ik5/loudplayer/playlist"
)

// Graph builds chains and keeps the settings that survive rebuilds.
// Methods are meant to be called from a single goroutine.
type Graph struct {
	cfg      Config
	registry *audio.Registry
	log      *log.Logger

	settings Settings
	curve    effects.Curve
	chain    *Chain
}

func New(registry *audio.Registry, cfg Config, settings Settings) *Graph {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = def.Channels
	}
	if cfg.CurveStrength == 0 {
		cfg.CurveStrength = def.CurveStrength
	}
	if cfg.CurveResolution == 0 {
		cfg.CurveResolution = def.CurveResolution
	}
	if cfg.Oversample == 0 {
		cfg.Oversample = def.Oversample
	}
	if cfg.FFTSize == 0 {
		cfg.FFTSize = def.FFTSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	g := &Graph{
		cfg:      cfg,
		registry: registry,
		log:      logger,
		settings: settings,
	}
	g.curve = g.makeCurve(settings.Limiter)

	return g
}

func (g *Graph) Config() Config { return g.cfg }

// Settings returns the current parameters.
func (g *Graph) Settings() Settings { return g.settings }

// Chain returns the live chain, or nil.
func (g *Graph) Chain() *Chain { return g.chain }

// Curve returns the waveshaper table generated by the last limiter change.
func (g *Graph) Curve() effects.Curve { return g.curve }

func (g *Graph) makeCurve(limiter bool) effects.Curve {
	return effects.SoftClipCurve(limiter, g.cfg.CurveResolution, g.cfg.CurveStrength)
}

// Teardown closes the live chain. Failures are logged and otherwise
// ignored; the chain is gone either way.
func (g *Graph) Teardown() {
	if g.chain == nil {
		return
	}
	if err := g.chain.Close(); err != nil {
		g.log.Printf("graph: teardown %q: %v", g.chain.track.Name(), err)
	}
	g.chain = nil
}

// Build tears down the previous chain and builds a new one for track with
// the current settings.
func (g *Graph) Build(track playlist.Track) (*Chain, error) {
	g.Teardown()

	if track == nil {
		return nil, ErrNoTrack
	}

	dec, err := g.registry.Lookup(track.Name())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}

	input, err := track.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}

	src, err := dec.Decode(input)
	if err != nil {
		_ = input.Close()
		return nil, fmt.Errorf("decoding %s: %w", track.Name(), err)
	}

	chain, err := g.assemble(track, input, src)
	if err != nil {
		_ = src.Close()
		_ = input.Close()
		return nil, err
	}

	g.chain = chain
	g.log.Printf("graph: built %q (%d Hz, %d ch -> %d Hz, %d ch)",
		track.Name(), src.SampleRate(), src.Channels(), g.cfg.SampleRate, g.cfg.Channels)

	return chain, nil
}

func (g *Graph) assemble(track playlist.Track, input io.Closer, src audio.Source) (*Chain, error) {
	c := &Chain{track: track, input: input}

	c.cursor = audio.NewCursor(src)
	var stage audio.Source = c.cursor

	if src.SampleRate() != g.cfg.SampleRate {
		c.resampler = audio.NewResampler(stage, g.cfg.SampleRate)
		stage = c.resampler
	}

	mixer, err := audio.NewChannelMixer(stage, g.cfg.Channels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", track.Name(), err)
	}
	stage = mixer

	c.gain = effects.NewGain(stage, g.settings.Boost)
	stage = c.gain

	for i, b := range Bands {
		kind, freq, q := b.filter()
		c.bands[i] = effects.NewBiquad(stage, kind, freq, q, g.settings.Band(b))
		stage = c.bands[i]
	}

	c.shaper = effects.NewWaveShaper(stage, g.curve, g.cfg.Oversample)
	stage = c.shaper

	c.analyser, err = effects.NewAnalyser(stage, g.cfg.FFTSize)
	if err != nil {
		return nil, err
	}
	c.tail = c.analyser

	return c, nil
}

// SetBoost changes the linear gain.
func (g *Graph) SetBoost(gain float64) {
	g.settings.Boost = gain
	if g.chain != nil {
		g.chain.gain.SetGain(gain)
	}
}

// SetBand changes one tone control, in dB.
func (g *Graph) SetBand(b Band, db float64) {
	g.settings.setBand(b, db)
	if g.chain != nil && b >= Bass && b <= Treble {
		g.chain.bands[b].SetGain(db)
	}
}

// ResetBands sets all tone controls to 0 dB.
func (g *Graph) ResetBands() {
	for _, b := range Bands {
		g.SetBand(b, 0)
	}
}

// ToggleLimiter regenerates the waveshaper curve for on and swaps it into
// the live chain.
func (g *Graph) ToggleLimiter(on bool) {
	g.settings.Limiter = on
	g.curve = g.makeCurve(on)
	if g.chain != nil {
		g.chain.shaper.SetCurve(g.curve)
	}
}

// Close tears down the live chain.
func (g *Graph) Close() {
	g.Teardown()
}
