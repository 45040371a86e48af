// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"silence", 0, 0},
		{"full scale", 1, math.MaxInt16},
		{"negative full scale", -1, -math.MaxInt16},
		{"half rounds away from zero", 0.5, 16384},
		{"negative half", -0.5, -16384},
		{"quarter", 0.25, 8192},
		{"clipped boost", 1.8, math.MaxInt16},
		{"clipped negative boost", -3, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.in); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16_Symmetric(t *testing.T) {
	t.Parallel()

	for f := float32(0); f <= 1; f += 1.0 / 64 {
		if pos, neg := Float32ToInt16(f), Float32ToInt16(-f); pos != -neg {
			t.Errorf("Float32ToInt16(±%v) = %d, %d", f, pos, neg)
		}
	}
}

func TestPutFloat32ToInt16(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -0.5, 2}
	dst := make([]int16, len(src)+1)
	dst[len(src)] = 7

	PutFloat32ToInt16(dst, src)

	want := []int16{0, 16384, -16384, math.MaxInt16, 7}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestPutFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := make([]float32, 1024)
	dst := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		PutFloat32ToInt16(dst, src)
	})
	if allocs > 0 {
		t.Errorf("PutFloat32ToInt16 allocated %v times, want 0", allocs)
	}
}

func BenchmarkPutFloat32ToInt16(b *testing.B) {
	src := make([]float32, 4096)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.05))
	}
	dst := make([]int16, len(src))

	b.ReportAllocs()

	for range b.N {
		PutFloat32ToInt16(dst, src)
	}
}
