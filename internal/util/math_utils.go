package util

import "math"

// RoundPercentage rounds a ratio expressed as a percentage to 2 decimals.
func RoundPercentage(value float64) float64 {
	return math.Round(value*100) / 100
}

// Percentage computes part/total as a percentage rounded to 2 decimals,
// returning 0 for an empty total.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return RoundPercentage(float64(part) / float64(total) * 100)
}
