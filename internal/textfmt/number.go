package textfmt

import (
	"math"
	"strconv"
	"strings"
)

// Seconds formats an elapsed time in seconds using the shortest
// round-trip digits: fixed notation with at least one fractional digit,
// or exponent notation below 1e-4 and from 1e16 up ("5e-05", "1.5").
func Seconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
