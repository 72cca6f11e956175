package stats

import (
	"strings"

	"github.com/verte-zerg/bikeshare/internal/trips"
)

// sparkLevels goes from no trips to the busiest bucket.
const sparkLevels = " .:-=+*#%@"

// HourlyCounts returns the number of trips starting in each hour 0-23.
func HourlyCounts(t trips.Table) []int {
	out := make([]int, 24)
	for _, h := range t.Hours() {
		if h >= 0 && h < len(out) {
			out[h]++
		}
	}
	return out
}

// Sparkline draws one character per bucket, scaled against the busiest
// bucket. Empty buckets are blank and any non-empty bucket shows at least
// the lowest mark.
func Sparkline(counts []int) string {
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	top := len(sparkLevels) - 1
	var b strings.Builder
	for _, c := range counts {
		level := 0
		if c > 0 && peak > 0 {
			// Round to nearest: level = c*top/peak.
			level = (c*top*2 + peak) / (peak * 2)
			if level == 0 {
				level = 1
			}
		}
		b.WriteByte(sparkLevels[level])
	}
	return b.String()
}
