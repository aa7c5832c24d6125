package history

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/steadyplay/steadyplay/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a saved record", t, func() {
		record := Record{
			Target:   "https://cdn.example.com/master.m3u8",
			Resolver: "hls",
			Title:    "master",
			Position: 95,
			Duration: 600,
		}
		So(Save(record), ShouldBeNil)
		Reset(func() { _ = Remove(record.Target) })

		Convey("Its position can be resumed", func() {
			So(Position(record.Target).OrEmpty(), ShouldEqual, 95)
			So(Position("other").IsPresent(), ShouldBeFalse)
		})

		Convey("Saving again replaces it", func() {
			record.Position = 120
			So(Save(record), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved, ShouldHaveLength, 1)
			So(saved[record.Target].Position, ShouldEqual, 120)
			So(saved[record.Target].UpdatedAt.IsZero(), ShouldBeFalse)
		})

		Convey("Recent lists the newest first", func() {
			So(Save(Record{Target: "older", Position: 1, UpdatedAt: time.Now().Add(-time.Hour)}), ShouldBeNil)
			Reset(func() { _ = Remove("older") })

			recent, err := Recent()
			So(err, ShouldBeNil)
			So(recent, ShouldHaveLength, 2)
			So(recent[0].Target, ShouldEqual, record.Target)
		})

		Convey("Removing forgets it", func() {
			So(Remove(record.Target), ShouldBeNil)
			So(Position(record.Target).IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Progress and formatting", t, func() {
		r := Record{Title: "x", Position: 90, Duration: 360}
		So(r.Progress(), ShouldEqual, 0.25)
		So(r.String(), ShouldEqual, "x : 1:30 / 6:00")
		So((&Record{Position: 5}).Progress(), ShouldEqual, 0)
	})
}
