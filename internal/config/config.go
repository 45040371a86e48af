// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings: built-in defaults, then an
// optional YAML file, then LOUDPLAYER_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/loudplayer/effects"
	"github.com/ik5/loudplayer/graph"
	"github.com/ik5/loudplayer/output"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "loudplayer"
	fileName = "config.yml"
)

var (
	ErrSampleRate = errors.New("sample rate must be positive")
	ErrChannels   = errors.New("channel count must be positive")
	ErrBoost      = errors.New("boost must not be negative")
	ErrInterval   = errors.New("time update interval must be positive")

	ErrCurveStrength   = errors.New("curve strength must be a positive finite number")
	ErrCurveResolution = errors.New("curve resolution must be at least 2")
	ErrOversample      = errors.New("oversample must be 1, 2 or 4")
)

// Config holds all runtime configuration.
type Config struct {
	// Output
	SampleRate int           `yaml:"sample_rate"`
	Channels   int           `yaml:"channels"`
	BufferSize time.Duration `yaml:"buffer_size"`

	// Initial chain settings
	Boost   float64 `yaml:"boost"`
	Bass    float64 `yaml:"bass"`
	Mid     float64 `yaml:"mid"`
	Treble  float64 `yaml:"treble"`
	Limiter bool    `yaml:"limiter"`

	// Soft clipper and analyser
	CurveStrength   float64 `yaml:"curve_strength"`
	CurveResolution int     `yaml:"curve_resolution"`
	Oversample      int     `yaml:"oversample"`
	FFTSize         int     `yaml:"fft_size"`

	// UI
	TimeUpdate time.Duration `yaml:"time_update"`
}

func Default() Config {
	g := graph.DefaultConfig()
	s := graph.DefaultSettings()

	return Config{
		SampleRate:      g.SampleRate,
		Channels:        g.Channels,
		BufferSize:      100 * time.Millisecond,
		Boost:           s.Boost,
		Bass:            s.Bass,
		Mid:             s.Mid,
		Treble:          s.Treble,
		Limiter:         s.Limiter,
		CurveStrength:   g.CurveStrength,
		CurveResolution: g.CurveResolution,
		Oversample:      int(g.Oversample),
		FFTSize:         g.FFTSize,
		TimeUpdate:      250 * time.Millisecond,
	}
}

// DefaultPath is the config file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, appDir, fileName), nil
}

// Load builds the configuration. An explicit path must exist; with an
// empty path the file at DefaultPath is read if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, &cfg); err != nil {
				return cfg, fmt.Errorf("%s: %w", path, err)
			}
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg = applyEnv(cfg)

	return cfg, cfg.Validate()
}

// decode overlays YAML onto cfg; unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func applyEnv(c Config) Config {
	c.SampleRate = envInt("LOUDPLAYER_SAMPLE_RATE", c.SampleRate)
	c.Channels = envInt("LOUDPLAYER_CHANNELS", c.Channels)
	c.BufferSize = envDuration("LOUDPLAYER_BUFFER_SIZE", c.BufferSize)
	c.Boost = envFloat("LOUDPLAYER_BOOST", c.Boost)
	c.Bass = envFloat("LOUDPLAYER_BASS", c.Bass)
	c.Mid = envFloat("LOUDPLAYER_MID", c.Mid)
	c.Treble = envFloat("LOUDPLAYER_TREBLE", c.Treble)
	c.Limiter = envBool("LOUDPLAYER_LIMITER", c.Limiter)
	c.CurveStrength = envFloat("LOUDPLAYER_CURVE_STRENGTH", c.CurveStrength)
	c.CurveResolution = envInt("LOUDPLAYER_CURVE_RESOLUTION", c.CurveResolution)
	c.Oversample = envInt("LOUDPLAYER_OVERSAMPLE", c.Oversample)
	c.FFTSize = envInt("LOUDPLAYER_FFT_SIZE", c.FFTSize)
	c.TimeUpdate = envDuration("LOUDPLAYER_TIME_UPDATE", c.TimeUpdate)

	return c
}

func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, ErrSampleRate)
	}
	if c.Channels <= 0 {
		errs = append(errs, ErrChannels)
	}
	if c.Boost < 0 {
		errs = append(errs, ErrBoost)
	}
	if c.TimeUpdate <= 0 {
		errs = append(errs, ErrInterval)
	}
	if c.CurveStrength <= 0 || math.IsNaN(c.CurveStrength) || math.IsInf(c.CurveStrength, 0) {
		errs = append(errs, ErrCurveStrength)
	}
	if c.CurveResolution < 2 {
		errs = append(errs, ErrCurveResolution)
	}
	if !effects.Oversample(c.Oversample).Valid() {
		errs = append(errs, ErrOversample)
	}
	if !effects.ValidFFTSize(c.FFTSize) {
		errs = append(errs, effects.ErrInvalidFFTSize)
	}

	return errors.Join(errs...)
}

// Settings returns the initial chain settings.
func (c Config) Settings() graph.Settings {
	return graph.Settings{
		Boost:   c.Boost,
		Bass:    c.Bass,
		Mid:     c.Mid,
		Treble:  c.Treble,
		Limiter: c.Limiter,
	}
}

func (c Config) Graph(logger *log.Logger) graph.Config {
	return graph.Config{
		SampleRate:      c.SampleRate,
		Channels:        c.Channels,
		CurveResolution: c.CurveResolution,
		CurveStrength:   c.CurveStrength,
		Oversample:      effects.Oversample(c.Oversample),
		FFTSize:         c.FFTSize,
		Logger:          logger,
	}
}

func (c Config) Output(logger *log.Logger) output.Config {
	return output.Config{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BufferSize: c.BufferSize,
		Logger:     logger,
	}
}
