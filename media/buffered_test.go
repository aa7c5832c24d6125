package media

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBufferedFraction(t *testing.T) {
	Convey("BufferedFraction", t, func() {
		Convey("Should be 0 without buffered ranges", func() {
			So(BufferedFraction(nil, 100), ShouldEqual, 0)
			So(BufferedFraction(TimeRanges{}, 100), ShouldEqual, 0)
		})

		Convey("Should be 0 for unusable durations", func() {
			ranges := TimeRanges{{Start: 0, End: 10}}
			So(BufferedFraction(ranges, 0), ShouldEqual, 0)
			So(BufferedFraction(ranges, -5), ShouldEqual, 0)
			So(BufferedFraction(ranges, math.Inf(1)), ShouldEqual, 0)
			So(BufferedFraction(ranges, math.NaN()), ShouldEqual, 0)
		})

		Convey("Should use the end of the last range", func() {
			ranges := TimeRanges{{Start: 0, End: 10}, {Start: 40, End: 50}}
			So(BufferedFraction(ranges, 100), ShouldEqual, 0.5)
		})

		Convey("Should clamp to 1", func() {
			ranges := TimeRanges{{Start: 0, End: 120}}
			So(BufferedFraction(ranges, 100), ShouldEqual, 1)
		})
	})
}

func TestEventString(t *testing.T) {
	Convey("Every raw event has a name", t, func() {
		for _, e := range Events() {
			So(e.String(), ShouldNotEqual, "unknown")
		}
		So(Event(0).String(), ShouldEqual, "unknown")
	})
}
