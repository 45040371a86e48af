// SPDX-License-Identifier: EPL-2.0

package effects

import "math"

const (
	DefaultCurveResolution = 1024
	DefaultCurveStrength   = 3.0
)

// Curve is a waveshaping table spanning inputs -1 to 1.
type Curve []float32

// SoftClipCurve builds a table of resolution points. With enabled set each
// point is ((1+k)x)/(1+k|x|); otherwise the table is the identity. A
// resolution below 2 yields the two-point identity.
func SoftClipCurve(enabled bool, resolution int, k float64) Curve {
	if resolution < 2 {
		return Curve{-1, 1}
	}

	c := make(Curve, resolution)
	last := float64(resolution - 1)
	for i := range c {
		x := float64(i)/last*2 - 1
		if enabled {
			x = ((1 + k) * x) / (1 + k*math.Abs(x))
		}
		c[i] = float32(x)
	}

	return c
}

// Apply maps x through the table. An empty curve passes x unchanged.
func (c Curve) Apply(x float32) float32 {
	n := len(c)
	switch n {
	case 0:
		return x
	case 1:
		return c[0]
	}

	v := float32(n-1) / 2 * (x + 1)
	if v <= 0 {
		return c[0]
	}
	if v >= float32(n-1) {
		return c[n-1]
	}

	i := int(v)
	f := v - float32(i)

	return c[i] + (c[i+1]-c[i])*f
}
