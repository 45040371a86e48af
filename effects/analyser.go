// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/ik5/loudplayer/audio"
)

const (
	DefaultFFTSize   = 2048
	DefaultSmoothing = 0.8
	DefaultMinDB     = -100.0
	DefaultMaxDB     = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// Analyser passes samples through unchanged while keeping the last
// FFTSize frames, mixed to mono, for visualisation.
type Analyser struct {
	src      audio.Source
	channels int
	size     int

	mu   sync.Mutex
	ring []float32
	pos  int

	// frequency analysis state, owned by whoever holds fftMu
	fftMu    sync.Mutex
	plan     *algofft.Plan[complex128]
	window   []float64
	frame    []float64
	spectrum []complex128
	re, im   []float64
	mag      []float64
	smoothed []float64

	Smoothing float64
	MinDB     float64
	MaxDB     float64
}

// ValidFFTSize reports whether n is a power of two the analyser accepts.
func ValidFFTSize(n int) bool {
	return n >= minFFTSize && n <= maxFFTSize && n&(n-1) == 0
}

func NewAnalyser(src audio.Source, fftSize int) (*Analyser, error) {
	if !ValidFFTSize(fftSize) {
		return nil, ErrInvalidFFTSize
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analyser: failed to create FFT plan: %w", err)
	}

	bins := fftSize / 2

	return &Analyser{
		src:       src,
		channels:  src.Channels(),
		size:      fftSize,
		ring:      make([]float32, fftSize),
		plan:      plan,
		window:    blackman(fftSize),
		frame:     make([]float64, fftSize),
		spectrum:  make([]complex128, fftSize),
		re:        make([]float64, bins),
		im:        make([]float64, bins),
		mag:       make([]float64, bins),
		smoothed:  make([]float64, bins),
		Smoothing: DefaultSmoothing,
		MinDB:     DefaultMinDB,
		MaxDB:     DefaultMaxDB,
	}, nil
}

// blackman returns the classic Blackman window (alpha 0.16) of length n.
func blackman(n int) []float64 {
	const (
		a0 = 0.42
		a1 = 0.5
		a2 = 0.08
	)

	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}

	return w
}

func (a *Analyser) SampleRate() int { return a.src.SampleRate() }
func (a *Analyser) Channels() int   { return a.src.Channels() }
func (a *Analyser) BufSize() int    { return a.src.BufSize() }
func (a *Analyser) Close() error    { return a.src.Close() }

func (a *Analyser) FFTSize() int           { return a.size }
func (a *Analyser) FrequencyBinCount() int { return a.size / 2 }

func (a *Analyser) ReadSamples(dst []float32) (int, error) {
	n, err := a.src.ReadSamples(dst)
	if n == 0 {
		return n, err
	}

	ch := a.channels
	inv := 1 / float32(ch)

	a.mu.Lock()
	for f := 0; f+ch <= n; f += ch {
		var sum float32
		for _, v := range dst[f : f+ch] {
			sum += v
		}
		a.ring[a.pos] = sum * inv
		a.pos = (a.pos + 1) % a.size
	}
	a.mu.Unlock()

	return n, err
}

// Reset forgets captured samples and spectral history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	clear(a.ring)
	a.pos = 0
	a.mu.Unlock()

	a.fftMu.Lock()
	clear(a.smoothed)
	a.fftMu.Unlock()
}

// TimeDomainData copies the most recent min(len(dst), FFTSize) samples in
// chronological order and returns how many were written.
func (a *Analyser) TimeDomainData(dst []float32) int {
	n := min(len(dst), a.size)

	a.mu.Lock()
	start := (a.pos - n + a.size) % a.size
	for i := range n {
		dst[i] = a.ring[(start+i)%a.size]
	}
	a.mu.Unlock()

	return n
}

// ByteTimeDomainData is TimeDomainData scaled so that 128 is silence and
// the range [-1, 1] maps onto [0, 255].
func (a *Analyser) ByteTimeDomainData(dst []byte) int {
	n := min(len(dst), a.size)
	buf := make([]float32, n)
	a.TimeDomainData(buf)

	for i, v := range buf {
		dst[i] = byte(min(max(math.Floor(128*(1+float64(v))), 0), 255))
	}

	return n
}

// FloatFrequencyData writes the smoothed magnitude spectrum in dB, one
// value per bin, up to len(dst) bins.
func (a *Analyser) FloatFrequencyData(dst []float32) int {
	a.fftMu.Lock()
	defer a.fftMu.Unlock()

	if err := a.analyse(); err != nil {
		return 0
	}

	n := min(len(dst), len(a.smoothed))
	for i := range n {
		dst[i] = float32(20 * math.Log10(a.smoothed[i]))
	}

	return n
}

// ByteFrequencyData maps the dB spectrum linearly from [MinDB, MaxDB] onto
// [0, 255].
func (a *Analyser) ByteFrequencyData(dst []byte) int {
	a.fftMu.Lock()
	defer a.fftMu.Unlock()

	if err := a.analyse(); err != nil {
		return 0
	}

	scale := 255 / (a.MaxDB - a.MinDB)
	n := min(len(dst), len(a.smoothed))
	for i := range n {
		db := 20 * math.Log10(a.smoothed[i])
		dst[i] = byte(min(max(math.Floor(scale*(db-a.MinDB)), 0), 255))
	}

	return n
}

// analyse windows the current frame, transforms it and folds the new
// magnitudes into the smoothed spectrum. fftMu must be held.
func (a *Analyser) analyse() error {
	a.mu.Lock()
	start := a.pos
	for i := range a.size {
		a.frame[i] = float64(a.ring[(start+i)%a.size])
	}
	a.mu.Unlock()

	vecmath.MulBlockInPlace(a.frame, a.window)
	for i, v := range a.frame {
		a.spectrum[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.spectrum, a.spectrum); err != nil {
		return fmt.Errorf("analyser: forward FFT: %w", err)
	}

	norm := 1 / float64(a.size)
	for k := range a.re {
		a.re[k] = real(a.spectrum[k]) * norm
		a.im[k] = imag(a.spectrum[k]) * norm
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	tau := min(max(a.Smoothing, 0), 1)
	for k, m := range a.mag {
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*m
	}

	return nil
}
