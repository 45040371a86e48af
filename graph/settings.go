// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"log"

	"github.com/ik5/loudplayer/effects"
)

// Band identifies one of the three tone controls.
type Band int

const (
	Bass Band = iota
	Mid
	Treble
)

// Bands lists the tone controls in chain order.
var Bands = [...]Band{Bass, Mid, Treble}

func (b Band) String() string {
	switch b {
	case Bass:
		return "bass"
	case Mid:
		return "mid"
	case Treble:
		return "treble"
	}

	return "unknown"
}

// Fixed filter placement.
const (
	BassFrequency   = 120.0
	MidFrequency    = 1000.0
	MidQ            = 1.0
	TrebleFrequency = 6000.0
)

func (b Band) filter() (effects.FilterType, float64, float64) {
	switch b {
	case Bass:
		return effects.LowShelf, BassFrequency, 0
	case Mid:
		return effects.Peaking, MidFrequency, MidQ
	default:
		return effects.HighShelf, TrebleFrequency, 0
	}
}

// Settings are the user-facing parameters of the chain.
type Settings struct {
	Boost   float64 // linear gain
	Bass    float64 // dB
	Mid     float64 // dB
	Treble  float64 // dB
	Limiter bool
}

func DefaultSettings() Settings {
	return Settings{Boost: 1, Limiter: true}
}

func (s Settings) Band(b Band) float64 {
	switch b {
	case Bass:
		return s.Bass
	case Mid:
		return s.Mid
	case Treble:
		return s.Treble
	}

	return 0
}

func (s *Settings) setBand(b Band, db float64) {
	switch b {
	case Bass:
		s.Bass = db
	case Mid:
		s.Mid = db
	case Treble:
		s.Treble = db
	}
}

// Config fixes the output format and the processing constants.
type Config struct {
	SampleRate      int
	Channels        int
	CurveResolution int
	CurveStrength   float64
	Oversample      effects.Oversample
	FFTSize         int
	Logger          *log.Logger
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      48000,
		Channels:        2,
		CurveResolution: effects.DefaultCurveResolution,
		CurveStrength:   effects.DefaultCurveStrength,
		Oversample:      effects.Oversample4x,
		FFTSize:         effects.DefaultFFTSize,
	}
}
