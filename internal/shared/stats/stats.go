// Package stats holds the arithmetic used by the statistics endpoints.
// Every ratio resolves a zero denominator to 0 instead of erroring.
package stats

import (
	"math"
	"time"
)

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/total as a percentage rounded to two decimals,
// or 0 when total is zero.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Growth returns the relative growth from last to current as a percentage
// rounded to two decimals, or 0 when last is zero.
func Growth(current, last int64) float64 {
	if last == 0 {
		return 0
	}
	return Round2(float64(current-last) / float64(last) * 100)
}

// MeanMinutes returns the mean of the given durations in minutes rounded
// to two decimals, or 0 when the slice is empty.
func MeanMinutes(durations []time.Duration) float64 {
	if len(durations) == 0 {
		return 0
	}
	var total float64
	for _, d := range durations {
		total += d.Minutes()
	}
	return Round2(total / float64(len(durations)))
}
