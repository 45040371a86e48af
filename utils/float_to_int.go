// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clamping to
// [-1, 1] and rounding to the nearest step.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(math.Round(float64(x) * math.MaxInt16))
}

// PutFloat32ToInt16 converts src into dst, which must be at least as long.
func PutFloat32ToInt16(dst []int16, src []float32) {
	for i, x := range src {
		dst[i] = Float32ToInt16(x)
	}
}
