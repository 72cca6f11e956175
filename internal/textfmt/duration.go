package textfmt

import (
	"errors"
	"fmt"
	"math"
)

// ErrDurationRange is returned for NaN, infinite or out-of-range durations.
var ErrDurationRange = errors.New("duration out of range")

// maxMicros keeps the rounded value inside int64.
const maxMicros = float64(math.MaxInt64 / 2)

// Duration renders seconds as "[D day[s], ]H:MM:SS[.ffffff]", rounding
// half-to-even to whole microseconds. Negative values carry a negative day
// count and a positive clock, so -1s is "-1 day, 23:59:59".
func Duration(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("%w: %v", ErrDurationRange, seconds)
	}
	rounded := math.RoundToEven(seconds * 1e6)
	if math.Abs(rounded) > maxMicros {
		return "", fmt.Errorf("%w: %v seconds", ErrDurationRange, seconds)
	}
	micros := int64(rounded)

	const (
		perSecond = int64(1_000_000)
		perDay    = 86400 * perSecond
	)
	days := micros / perDay
	rest := micros % perDay
	if rest < 0 {
		days--
		rest += perDay
	}
	secs := rest / perSecond
	frac := rest % perSecond

	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	if frac != 0 {
		clock += fmt.Sprintf(".%06d", frac)
	}
	if days == 0 {
		return clock, nil
	}
	unit := "days"
	if days == 1 || days == -1 {
		unit = "day"
	}
	return fmt.Sprintf("%d %s, %s", days, unit, clock), nil
}
