// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ik5/loudplayer/utils"
)

const unknownClock = "--:--"

// BoostLabel renders a gain multiplier, e.g. "1.50×".
func BoostLabel(gain float64) string {
	return fmt.Sprintf("%.2f×", gain)
}

// BandLabel renders a band gain with the shortest exact decimal, e.g.
// "-4.5 dB".
func BandLabel(db float64) string {
	return strconv.FormatFloat(db, 'f', -1, 64) + " dB"
}

// TimeLabel renders "mm:ss / mm:ss"; an unknown duration shows as --:--.
func TimeLabel(pos, dur time.Duration, known bool) string {
	total := unknownClock
	if known {
		total = utils.FormatClock(dur)
	}

	return utils.FormatClock(pos) + " / " + total
}

// SeekValue maps a position onto the 0..SeekSteps seek control, rounded
// to the nearest step.
func SeekValue(pos, dur time.Duration, known bool) int {
	if !known || dur <= 0 || pos <= 0 {
		return 0
	}
	if pos >= dur {
		return SeekSteps
	}

	return int((int64(pos)*SeekSteps + int64(dur)/2) / int64(dur))
}
