// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"sync/atomic"

	"github.com/ik5/loudplayer/audio"
	"github.com/viterin/vek/vek32"
)

// Gain multiplies every sample by a linear factor.
type Gain struct {
	src  audio.Source
	bits atomic.Uint32
}

func NewGain(src audio.Source, gain float64) *Gain {
	g := &Gain{src: src}
	g.SetGain(gain)

	return g
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }
func (g *Gain) Close() error    { return g.src.Close() }

// SetGain is safe to call while another goroutine reads.
func (g *Gain) SetGain(gain float64) {
	g.bits.Store(math.Float32bits(float32(gain)))
}

func (g *Gain) Gain() float64 {
	return float64(math.Float32frombits(g.bits.Load()))
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)
	if n > 0 {
		if gain := math.Float32frombits(g.bits.Load()); gain != 1 {
			vek32.MulNumber_Inplace(dst[:n], gain)
		}
	}

	return n, err
}
