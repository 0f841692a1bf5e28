package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether v is neither NaN nor Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FlooredDB converts a magnitude to dB after flooring it at floor, so silent
// bins map to a finite level instead of -Inf.
func FlooredDB(linear, floor float64) float64 {
	return 20 * math.Log10(math.Max(linear, floor))
}
