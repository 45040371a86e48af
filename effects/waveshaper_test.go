// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"testing"

	"github.com/ik5/loudplayer/internal/audiotest"
)

func TestWaveShaper_NoOversample(t *testing.T) {
	t.Parallel()

	curve := SoftClipCurve(true, DefaultCurveResolution, DefaultCurveStrength)
	src := audiotest.NewSineSource(44100, 2, 500, 220)
	ref := audiotest.NewSineSource(44100, 2, 500, 220)

	got := drain(t, NewWaveShaper(src, curve, OversampleNone), 128)
	in := drain(t, ref, 128)

	for i, x := range in {
		if want := curve.Apply(x); got[i] != want {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestWaveShaper_OversampledSettles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		oversample Oversample
		enabled    bool
		in         float32
		want       float64
	}{
		{"identity 2x", Oversample2x, false, 0.5, 0.5},
		{"identity 4x", Oversample4x, false, -0.3, -0.3},
		{"soft clip 4x", Oversample4x, true, 0.5, 0.8},
		{"soft clip 4x over range", Oversample4x, true, 2.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			curve := SoftClipCurve(tt.enabled, DefaultCurveResolution, DefaultCurveStrength)
			w := NewWaveShaper(audiotest.NewConstantSource(48000, 1, 2000, tt.in), curve, tt.oversample)

			out := drain(t, w, 256)
			if last := float64(out[len(out)-1]); !near(last, tt.want, 2e-3) {
				t.Errorf("settled output = %v, want %v", last, tt.want)
			}
		})
	}
}

func TestWaveShaper_SetCurve(t *testing.T) {
	t.Parallel()

	w := NewWaveShaper(audiotest.NewConstantSource(48000, 1, 100, 0.5), SoftClipCurve(false, 1024, 3), OversampleNone)
	buf := make([]float32, 4)

	_, _ = w.ReadSamples(buf)
	if !near(float64(buf[0]), 0.5, 1e-6) {
		t.Fatalf("identity output = %v, want 0.5", buf[0])
	}

	on := SoftClipCurve(true, 1024, 3)
	w.SetCurve(on)
	if got := w.Curve(); &got[0] != &on[0] {
		t.Error("Curve() does not return the table passed to SetCurve")
	}

	_, _ = w.ReadSamples(buf)
	if !near(float64(buf[0]), 0.8, 1e-3) {
		t.Errorf("soft clip output = %v, want about 0.8", buf[0])
	}
}

func TestWaveShaper_InvalidOversample(t *testing.T) {
	t.Parallel()

	w := NewWaveShaper(audiotest.NewSilentSource(8000, 1, 1), Curve{-1, 1}, Oversample(3))
	if w.Oversample() != OversampleNone {
		t.Errorf("Oversample() = %v, want none", w.Oversample())
	}
}

func TestWaveShaper_HighFrequencyAttenuated(t *testing.T) {
	t.Parallel()

	// A hard-driven tone near Nyquist; the anti-alias filter may ring but
	// must stay close to the curve range.
	curve := SoftClipCurve(true, DefaultCurveResolution, 50)
	src := audiotest.NewMockSource(48000, 1, 4800, func(i, _ int) float32 {
		return float32(3 * math.Sin(2*math.Pi*15000*float64(i)/48000))
	})

	for i, v := range drain(t, NewWaveShaper(src, curve, Oversample4x), 480) {
		if v > 1.5 || v < -1.5 {
			t.Fatalf("sample %d = %v escapes the curve range", i, v)
		}
	}
}

func BenchmarkWaveShaper_4x(b *testing.B) {
	curve := SoftClipCurve(true, DefaultCurveResolution, DefaultCurveStrength)
	w := NewWaveShaper(audiotest.NewSineSource(48000, 2, 1<<30, 440), curve, Oversample4x)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for range b.N {
		_, _ = w.ReadSamples(buf)
	}
}
