// Package numeric holds the rounding and clamping rules shared by every score producer.
package numeric

import (
	"math"
	"strconv"
)

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Round4 rounds v to 4 decimal places, the precision of every stored score.
func Round4(v float64) float64 {
	return Round(v, 4)
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Percent returns part/whole*100 rounded to 2 places, or fallback when whole is zero.
func Percent(part, whole int, fallback float64) float64 {
	if whole == 0 {
		return fallback
	}
	return Round(float64(part)/float64(whole)*100, 2)
}

// FormatPercent renders a fraction as a percentage with the given number of decimals, e.g. 0.853 -> "85%".
func FormatPercent(v float64, decimals int) string {
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}
