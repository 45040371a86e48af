// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"fmt"
	"time"
)

// FormatClock renders d as zero-padded minutes and seconds ("03:07").
// Negative durations print as "00:00"; minutes keep counting past an hour.
func FormatClock(d time.Duration) string {
	s := max(0, int64(d/time.Second))

	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
