// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"sync/atomic"

	"github.com/ik5/loudplayer/audio"
)

// shelfQ is the Q equivalent of a shelf slope of 1.
const shelfQ = 1 / math.Sqrt2

// Coefficients of a normalised second-order section (a0 = 1), in Direct
// Form II Transposed sign convention:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// passthrough is returned for parameters a biquad cannot realise.
var passthrough = Coefficients{B0: 1}

// MagnitudeDB is the response at freq in dB.
func (c Coefficients) MagnitudeDB(freq, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freq/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return 10 * math.Log10(num/den)
}

// FilterType selects the biquad design.
type FilterType int

const (
	LowShelf FilterType = iota
	Peaking
	HighShelf
	Lowpass
)

func (t FilterType) String() string {
	switch t {
	case LowShelf:
		return "lowshelf"
	case Peaking:
		return "peaking"
	case HighShelf:
		return "highshelf"
	case Lowpass:
		return "lowpass"
	}

	return "unknown"
}

// Design computes coefficients for t. q is ignored by the shelves and
// gainDB by the lowpass.
func Design(t FilterType, freq, q, gainDB, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return passthrough
	}
	if t == LowShelf || t == HighShelf || q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = shelfQ
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	var b0, b1, b2, a0, a1, a2 float64
	switch t {
	case LowShelf:
		b0 = a * ((a + 1) - (a-1)*cw + beta)
		b1 = 2 * a * ((a - 1) - (a+1)*cw)
		b2 = a * ((a + 1) - (a-1)*cw - beta)
		a0 = (a + 1) + (a-1)*cw + beta
		a1 = -2 * ((a - 1) + (a+1)*cw)
		a2 = (a + 1) + (a-1)*cw - beta
	case HighShelf:
		b0 = a * ((a + 1) + (a-1)*cw + beta)
		b1 = -2 * a * ((a - 1) + (a+1)*cw)
		b2 = a * ((a + 1) + (a-1)*cw - beta)
		a0 = (a + 1) - (a-1)*cw + beta
		a1 = 2 * ((a - 1) - (a+1)*cw)
		a2 = (a + 1) - (a-1)*cw - beta
	case Peaking:
		b0 = 1 + alpha*a
		b1 = -2 * cw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cw
		a2 = 1 - alpha/a
	case Lowpass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = (1 - cw) / 2
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	default:
		return passthrough
	}

	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return passthrough
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

// section is one channel's filter state.
type section struct {
	d0, d1 float64
}

func (s *section) process(c *Coefficients, x float64) float64 {
	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// Biquad filters every channel of src with the same live coefficients.
type Biquad struct {
	src    audio.Source
	kind   FilterType
	freq   float64
	q      float64
	gain   atomic.Uint64
	coeffs atomic.Pointer[Coefficients]
	state  []section
}

func NewBiquad(src audio.Source, kind FilterType, freq, q, gainDB float64) *Biquad {
	b := &Biquad{
		src:   src,
		kind:  kind,
		freq:  freq,
		q:     q,
		state: make([]section, src.Channels()),
	}
	b.SetGain(gainDB)

	return b
}

func (b *Biquad) SampleRate() int { return b.src.SampleRate() }
func (b *Biquad) Channels() int   { return b.src.Channels() }
func (b *Biquad) BufSize() int    { return b.src.BufSize() }
func (b *Biquad) Close() error    { return b.src.Close() }

func (b *Biquad) Type() FilterType   { return b.kind }
func (b *Biquad) Frequency() float64 { return b.freq }

// SetGain redesigns the filter for gainDB; the running state is kept so
// the change does not click.
func (b *Biquad) SetGain(gainDB float64) {
	c := Design(b.kind, b.freq, b.q, gainDB, float64(b.src.SampleRate()))
	b.gain.Store(math.Float64bits(gainDB))
	b.coeffs.Store(&c)
}

func (b *Biquad) Gain() float64 {
	return math.Float64frombits(b.gain.Load())
}

func (b *Biquad) Coefficients() Coefficients {
	return *b.coeffs.Load()
}

// Reset clears the filter memory, e.g. after a seek.
func (b *Biquad) Reset() {
	clear(b.state)
}

func (b *Biquad) ReadSamples(dst []float32) (int, error) {
	n, err := b.src.ReadSamples(dst)
	if n == 0 {
		return n, err
	}

	c := b.coeffs.Load()
	ch := len(b.state)
	for i := range dst[:n] {
		s := &b.state[i%ch]
		dst[i] = float32(s.process(c, float64(dst[i])))
	}

	return n, err
}
