// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/ik5/loudplayer/internal/audiotest"
)

func TestNewAnalyser_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 16, 1000, 2047, 65536} {
		if _, err := NewAnalyser(audiotest.NewSilentSource(8000, 1, 1), size); !errors.Is(err, ErrInvalidFFTSize) {
			t.Errorf("NewAnalyser(%d) error = %v, want ErrInvalidFFTSize", size, err)
		}
	}
}

func TestAnalyser_PassThrough(t *testing.T) {
	t.Parallel()

	a, err := NewAnalyser(audiotest.NewRampSource(8000, 2, 300), DefaultFFTSize)
	if err != nil {
		t.Fatalf("NewAnalyser() error = %v", err)
	}
	if a.FrequencyBinCount() != 1024 {
		t.Errorf("FrequencyBinCount() = %d, want 1024", a.FrequencyBinCount())
	}

	got := drain(t, a, 64)
	want := drain(t, audiotest.NewRampSource(8000, 2, 300), 64)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAnalyser_TimeDomainData(t *testing.T) {
	t.Parallel()

	// Left 0.5, right 0: the mono mix is 0.25.
	src := audiotest.NewMockSource(8000, 2, 100, func(_, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return 0
	})
	a, _ := NewAnalyser(src, 32)
	drain(t, a, 20)

	buf := make([]float32, 64)
	if n := a.TimeDomainData(buf); n != 32 {
		t.Fatalf("TimeDomainData() n = %d, want 32", n)
	}
	for i, v := range buf[:32] {
		if v != 0.25 {
			t.Fatalf("buf[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestAnalyser_TimeDomainOrder(t *testing.T) {
	t.Parallel()

	a, _ := NewAnalyser(audiotest.NewRampSource(8000, 1, 100), 32)
	drain(t, a, 7)

	buf := make([]float32, 4)
	a.TimeDomainData(buf)

	for i, v := range buf {
		if want := float32(96+i) / 100; v != want {
			t.Errorf("buf[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestAnalyser_ByteTimeDomainData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want byte
	}{
		{0, 128},
		{0.25, 160},
		{-1, 0},
		{1, 255},
		{-3, 0},
	}

	for _, tt := range tests {
		a, _ := NewAnalyser(audiotest.NewConstantSource(8000, 1, 64, tt.in), 32)
		drain(t, a, 16)

		buf := make([]byte, 32)
		a.ByteTimeDomainData(buf)
		if buf[31] != tt.want {
			t.Errorf("in %v: byte = %d, want %d", tt.in, buf[31], tt.want)
		}
	}
}

func TestAnalyser_FloatFrequencyData(t *testing.T) {
	t.Parallel()

	const (
		rate = 48000
		size = 2048
		bin  = 64
	)
	freq := float64(rate) * bin / size // centred on bin 64

	a, _ := NewAnalyser(audiotest.NewSineSource(rate, 1, 2*size, freq), size)
	drain(t, a, 512)

	spectrum := make([]float32, a.FrequencyBinCount())
	if n := a.FloatFrequencyData(spectrum); n != size/2 {
		t.Fatalf("FloatFrequencyData() n = %d, want %d", n, size/2)
	}

	peak := 0
	for k, v := range spectrum {
		if v > spectrum[peak] {
			peak = k
		}
	}
	if peak != bin {
		t.Errorf("peak bin = %d, want %d", peak, bin)
	}
	if spectrum[bin] < spectrum[bin+10]+40 {
		t.Errorf("peak %v dB not well above neighbour %v dB", spectrum[bin], spectrum[bin+10])
	}
}

func TestAnalyser_Smoothing(t *testing.T) {
	t.Parallel()

	a, _ := NewAnalyser(audiotest.NewSineSource(48000, 1, 4096, 3000), 256)
	drain(t, a, 256)

	first := make([]float32, 128)
	second := make([]float32, 128)
	a.FloatFrequencyData(first)
	a.FloatFrequencyData(second)

	// Same input twice: smoothed magnitude grows from 0.2x to 0.36x,
	// i.e. 20*log10(1.8) dB.
	k := 16
	if d := float64(second[k] - first[k]); !near(d, 20*math.Log10(1.8), 1e-3) {
		t.Errorf("second - first = %v dB, want %v", d, 20*math.Log10(1.8))
	}
}

func TestAnalyser_Silence(t *testing.T) {
	t.Parallel()

	a, _ := NewAnalyser(audiotest.NewSilentSource(48000, 2, 100), 64)
	drain(t, a, 32)

	spectrum := make([]float32, 32)
	a.FloatFrequencyData(spectrum)
	for k, v := range spectrum {
		if !math.IsInf(float64(v), -1) {
			t.Fatalf("bin %d = %v, want -Inf", k, v)
		}
	}

	bytes := make([]byte, 32)
	a.ByteFrequencyData(bytes)
	for k, v := range bytes {
		if v != 0 {
			t.Fatalf("byte bin %d = %d, want 0", k, v)
		}
	}
}

func TestAnalyser_Reset(t *testing.T) {
	t.Parallel()

	a, _ := NewAnalyser(audiotest.NewConstantSource(8000, 1, 64, 0.5), 32)
	drain(t, a, 16)
	a.Reset()

	buf := make([]float32, 32)
	a.TimeDomainData(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v after Reset, want 0", i, v)
		}
	}
}

func TestAnalyser_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	a, _ := NewAnalyser(audiotest.NewSineSource(48000, 2, 48000, 440), 512)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]float32, 256)
		for {
			if _, err := a.ReadSamples(buf); err != nil {
				return
			}
		}
	}()

	spectrum := make([]float32, a.FrequencyBinCount())
	wave := make([]byte, a.FFTSize())
	for range 50 {
		a.FloatFrequencyData(spectrum)
		a.ByteTimeDomainData(wave)
	}

	wg.Wait()
}

func BenchmarkAnalyser_FloatFrequencyData(b *testing.B) {
	a, _ := NewAnalyser(audiotest.NewSineSource(48000, 2, 1<<20, 440), DefaultFFTSize)
	buf := make([]float32, 8192)
	_, _ = a.ReadSamples(buf)
	spectrum := make([]float32, a.FrequencyBinCount())

	b.ReportAllocs()

	for range b.N {
		a.FloatFrequencyData(spectrum)
	}
}
