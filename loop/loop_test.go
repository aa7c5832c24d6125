package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func start() (*Loop, context.CancelFunc) {
	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	return l, cancel
}

func TestLoop(t *testing.T) {
	Convey("Given a running loop", t, func() {
		l, cancel := start()
		defer cancel()

		Convey("Call runs work and returns its error", func() {
			ran := false
			err := l.Call(context.Background(), func() error {
				ran = true
				return errors.New("boom")
			})
			So(err, ShouldBeError, "boom")
			So(ran, ShouldBeTrue)
		})

		Convey("Posted tasks run in order", func() {
			var order []int
			for i := 0; i < 5; i++ {
				i := i
				So(l.Post(func() { order = append(order, i) }), ShouldBeNil)
			}
			So(l.Call(context.Background(), func() error { return nil }), ShouldBeNil)
			So(order, ShouldResemble, []int{0, 1, 2, 3, 4})
		})

		Convey("Timers fire on the loop", func() {
			fired := make(chan struct{})
			So(l.Call(context.Background(), func() error {
				l.AfterFunc(time.Millisecond, func() { close(fired) })
				return nil
			}), ShouldBeNil)

			select {
			case <-fired:
			case <-time.After(time.Second):
				So("timer did not fire", ShouldBeEmpty)
			}
		})

		Convey("Stopped timers never fire", func() {
			fired := false
			var first, second bool
			So(l.Call(context.Background(), func() error {
				timer := l.AfterFunc(5*time.Millisecond, func() { fired = true })
				first, second = timer.Stop(), timer.Stop()
				return nil
			}), ShouldBeNil)
			So(first, ShouldBeTrue)
			So(second, ShouldBeFalse)

			time.Sleep(20 * time.Millisecond)
			So(l.Call(context.Background(), func() error { return nil }), ShouldBeNil)
			So(fired, ShouldBeFalse)
		})
	})

	Convey("Given a stopped loop", t, func() {
		l, cancel := start()
		cancel()
		<-l.Done()

		Convey("Submitting work fails", func() {
			So(errors.Is(l.Post(func() {}), ErrStopped), ShouldBeTrue)
			So(errors.Is(l.Call(context.Background(), func() error { return nil }), ErrStopped), ShouldBeTrue)
		})
	})
}
