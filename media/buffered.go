package media

import (
	"math"

	"github.com/samber/lo"
)

// TimeRange is a contiguous buffered interval in seconds.
type TimeRange struct {
	Start, End float64
}

// TimeRanges is an ordered list of buffered intervals.
type TimeRanges []TimeRange

// Last returns the final range and whether there is one.
func (r TimeRanges) Last() (TimeRange, bool) {
	if len(r) == 0 {
		return TimeRange{}, false
	}
	return r[len(r)-1], true
}

// BufferedFraction returns how much of duration is buffered, judged by the
// end of the last range. It is 0 without ranges or without a finite positive
// duration, and always within [0, 1].
func BufferedFraction(ranges TimeRanges, duration float64) float64 {
	last, ok := ranges.Last()
	if !ok || duration <= 0 || math.IsInf(duration, 0) || math.IsNaN(duration) {
		return 0
	}
	return lo.Clamp(last.End/duration, 0, 1)
}
