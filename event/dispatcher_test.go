package event

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDispatcher(t *testing.T) {
	Convey("Given an open dispatcher", t, func() {
		open := true
		d := NewDispatcher(func() bool { return open })

		var got []Type
		record := func(e Event) { got = append(got, e.Type) }

		Convey("On delivers every matching notification", func() {
			d.On(Time, record)
			d.Emit(Time, TimeData{Position: 1})
			d.Emit(Seek, nil)
			d.Emit(Time, TimeData{Position: 2})
			So(got, ShouldResemble, []Type{Time, Time})
		})

		Convey("Once delivers a single notification", func() {
			d.Once(Seeked, record)
			d.Emit(Seeked, nil)
			d.Emit(Seeked, nil)
			So(got, ShouldResemble, []Type{Seeked})
			So(d.Len(), ShouldEqual, 0)
		})

		Convey("OnAll sees every type", func() {
			d.OnAll(record)
			d.Emit(Time, nil)
			d.Emit(Complete, nil)
			So(got, ShouldResemble, []Type{Time, Complete})
		})

		Convey("Off stops delivery", func() {
			off := d.On(Time, record)
			off()
			d.Emit(Time, nil)
			So(got, ShouldBeEmpty)
		})

		Convey("A closed gate drops notifications", func() {
			d.OnAll(record)
			open = false
			So(d.Emit(Complete, nil), ShouldBeFalse)
			So(got, ShouldBeEmpty)
		})

		Convey("A handler closing the gate blocks later emissions only", func() {
			d.On(BeforeComplete, func(Event) { open = false })
			d.OnAll(record)
			So(d.Emit(BeforeComplete, nil), ShouldBeTrue)
			So(d.Emit(Complete, nil), ShouldBeFalse)
			So(got, ShouldResemble, []Type{BeforeComplete})
		})

		Convey("Clear removes every subscription", func() {
			d.On(Time, record)
			d.OnAll(record)
			d.Clear()
			d.Emit(Time, nil)
			So(got, ShouldBeEmpty)
			So(d.Len(), ShouldEqual, 0)
		})
	})

	Convey("A nil gate is always open", t, func() {
		d := NewDispatcher(nil)
		So(d.Emit(Time, nil), ShouldBeTrue)
	})
}
