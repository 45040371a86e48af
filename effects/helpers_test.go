// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"io"
	"testing"

	"github.com/ik5/loudplayer/audio"
)

func drain(t *testing.T, src audio.Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for range 100000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("source never reached EOF")

	return nil
}

func near(a, b, tol float64) bool {
	d := a - b
	return d <= tol && d >= -tol
}
