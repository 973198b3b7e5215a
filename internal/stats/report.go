// Package stats contains encounter report formatting and tabulation.
package stats

import (
	"fmt"
	"math"
	"time"
)

// FormatReport builds the one-line summary printed when an encounter ends.
func FormatReport(elapsed time.Duration, clip, waste float64, inSeconds bool) string {
	return fmt.Sprintf("in %s, clipped: %.2f, wasted: %.2f", FormatElapsed(elapsed, inSeconds), clip, waste)
}

// FormatElapsed renders an encounter duration as SS.S or MMmSSs.
func FormatElapsed(elapsed time.Duration, inSeconds bool) string {
	if elapsed < 0 {
		elapsed = 0
	}
	if inSeconds {
		return fmt.Sprintf("%04.1f", elapsed.Seconds())
	}
	minutes := int(math.Floor(elapsed.Minutes()))
	seconds := int(elapsed/time.Second) % 60
	return fmt.Sprintf("%02dm%02ds", minutes, seconds)
}

// SecondsToMs converts fractional seconds to whole milliseconds.
func SecondsToMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

// FormatClip builds the per-event clip line.
func FormatClip(seconds float64) string {
	return fmt.Sprintf("clipped: %d ms", SecondsToMs(seconds))
}

// FormatWaste builds the per-event waste line.
func FormatWaste(seconds float64) string {
	return fmt.Sprintf("wasted: %d ms", SecondsToMs(seconds))
}
