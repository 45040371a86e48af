// SPDX-License-Identifier: EPL-2.0

package effects

import "errors"

var ErrInvalidFFTSize = errors.New("fft size must be a power of two in [32, 32768]")
