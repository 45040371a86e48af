// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"sync/atomic"

	"github.com/ik5/loudplayer/audio"
)

// Oversample is the factor the curve runs at relative to the stream.
type Oversample int

const (
	OversampleNone Oversample = 1
	Oversample2x   Oversample = 2
	Oversample4x   Oversample = 4
)

func (o Oversample) String() string {
	switch o {
	case OversampleNone:
		return "none"
	case Oversample2x:
		return "2x"
	case Oversample4x:
		return "4x"
	}

	return "unknown"
}

// antiAliasCutoff is the lowpass corner as a fraction of the stream rate.
const antiAliasCutoff = 0.45

type shaperChannel struct {
	prev float32
	lp   [2]section
}

// WaveShaper maps every sample through a Curve.
type WaveShaper struct {
	src      audio.Source
	curve    atomic.Pointer[Curve]
	factor   int
	lp       Coefficients
	channels []shaperChannel
}

// Valid reports whether o is one of the supported factors.
func (o Oversample) Valid() bool {
	return o == OversampleNone || o == Oversample2x || o == Oversample4x
}

func NewWaveShaper(src audio.Source, curve Curve, oversample Oversample) *WaveShaper {
	factor := 1
	if oversample.Valid() {
		factor = int(oversample)
	}

	w := &WaveShaper{
		src:      src,
		factor:   factor,
		channels: make([]shaperChannel, src.Channels()),
	}
	if factor > 1 {
		rate := float64(src.SampleRate())
		w.lp = Design(Lowpass, rate*antiAliasCutoff, shelfQ, 0, rate*float64(factor))
	}
	w.SetCurve(curve)

	return w
}

func (w *WaveShaper) SampleRate() int { return w.src.SampleRate() }
func (w *WaveShaper) Channels() int   { return w.src.Channels() }
func (w *WaveShaper) BufSize() int    { return w.src.BufSize() }
func (w *WaveShaper) Close() error    { return w.src.Close() }

func (w *WaveShaper) Oversample() Oversample { return Oversample(w.factor) }

// SetCurve swaps the table used from the next read on. The slice must not
// be modified afterwards.
func (w *WaveShaper) SetCurve(c Curve) {
	w.curve.Store(&c)
}

func (w *WaveShaper) Curve() Curve {
	return *w.curve.Load()
}

// Reset clears the interpolation and anti-alias filter memory.
func (w *WaveShaper) Reset() {
	clear(w.channels)
}

func (w *WaveShaper) ReadSamples(dst []float32) (int, error) {
	n, err := w.src.ReadSamples(dst)
	if n == 0 {
		return n, err
	}

	curve := *w.curve.Load()
	if w.factor == 1 {
		for i, x := range dst[:n] {
			dst[i] = curve.Apply(x)
		}

		return n, err
	}

	ch := len(w.channels)
	step := 1 / float32(w.factor)
	for i, x := range dst[:n] {
		c := &w.channels[i%ch]

		// Linear upsampling between the previous and current input, two
		// cascaded lowpass sections, and the last sub-sample kept.
		var y float64
		for j := 1; j <= w.factor; j++ {
			u := c.prev + (x-c.prev)*float32(j)*step
			y = float64(curve.Apply(u))
			y = c.lp[0].process(&w.lp, y)
			y = c.lp[1].process(&w.lp, y)
		}
		c.prev = x
		dst[i] = float32(y)
	}

	return n, err
}
