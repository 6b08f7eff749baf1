package util

import (
	"math"
	"strconv"
)

// FormatNumber prints v in its shortest round-trip form, so 5 prints as "5"
// and 0.5 as "0.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundTo rounds v half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
