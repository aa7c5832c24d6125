package provider

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/layout"
	"github.com/steadyplay/steadyplay/media"
	"github.com/steadyplay/steadyplay/mediatest"
	"github.com/steadyplay/steadyplay/platform"
	"github.com/steadyplay/steadyplay/scheduler"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) record(e event.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t event.Type) int {
	return lo.CountBy(r.events, func(e event.Event) bool { return e.Type == t })
}

func (r *recorder) types() []event.Type {
	return lo.Map(r.events, func(e event.Event, _ int) event.Type { return e.Type })
}

func (r *recorder) last(t event.Type) (event.Event, bool) {
	e, _, ok := lo.FindLastIndexOf(r.events, func(e event.Event) bool { return e.Type == t })
	return e, ok
}

func (r *recorder) reset() {
	r.events = nil
}

type fixture struct {
	p     *Provider
	el    *mediatest.Element
	clock *scheduler.Manual
	rec   *recorder
}

func newFixture(opts Options) *fixture {
	el := mediatest.New()
	clock := scheduler.NewManual()
	p := New(el, clock, opts)
	rec := &recorder{}
	p.OnAll(rec.record)
	return &fixture{p: p, el: el, clock: clock, rec: rec}
}

func profile(name string) platform.Profile {
	return lo.Must(platform.Lookup(name))
}

func threeLevels() *source.Item {
	return &source.Item{
		Sources: []source.Level{
			{File: "a.mp4", Label: "A", Type: "mp4"},
			{File: "b.mp4", Label: "B", Type: "mp4", Default: true},
			{File: "c.mp4", Label: "C", Type: "mp4"},
		},
	}
}

// startPlaying loads item and drives the element to a playing state at 1s.
func (f *fixture) startPlaying(item *source.Item) {
	So(f.p.Load(item), ShouldBeNil)
	f.el.Dur = 60
	f.el.Fire(media.LoadedMetadata, media.CanPlay)
	So(f.p.Play(), ShouldBeNil)
	f.el.Fire(media.Playing)
	f.el.Time = 1
	f.el.Fire(media.TimeUpdate)
}

func TestNew(t *testing.T) {
	Convey("Given a new provider", t, func() {
		f := newFixture(Options{})

		Convey("It is idle with no level selected", func() {
			So(f.p.State(), ShouldEqual, state.Idle)
			So(f.p.CurrentQuality(), ShouldEqual, -1)
			So(f.p.QualityLevels(), ShouldBeNil)
			So(f.p.BufferedFraction(), ShouldEqual, 0)
		})

		Convey("It listens to the element", func() {
			So(f.el.Subscribers(), ShouldEqual, 1)
			So(f.p.Attached(), ShouldBeTrue)
		})

		Convey("It applies defaults", func() {
			So(f.p.Name(), ShouldEqual, DefaultName)
			So(f.p.opts.StallDelay, ShouldEqual, DefaultStallDelay)
		})
	})
}

func TestPickInitialQuality(t *testing.T) {
	Convey("Given levels A, B (default) and C", t, func() {
		levels := threeLevels().Sources

		Convey("Without a preferred label the default wins", func() {
			p := newFixture(Options{}).p
			So(p.pickInitialQuality(levels), ShouldEqual, 1)
		})

		Convey("A matching label wins regardless of the default flag", func() {
			p := newFixture(Options{QualityLabel: "C"}).p
			So(p.pickInitialQuality(levels), ShouldEqual, 2)
		})

		Convey("An earlier label match is not overridden by a later default", func() {
			p := newFixture(Options{QualityLabel: "A"}).p
			So(p.pickInitialQuality(levels), ShouldEqual, 0)
		})

		Convey("A later default overrides an earlier non-matching level", func() {
			p := newFixture(Options{QualityLabel: "Z"}).p
			So(p.pickInitialQuality(levels), ShouldEqual, 1)
		})

		Convey("The current index is the fallback, clamped into the list", func() {
			p := newFixture(Options{}).p
			plain := []source.Level{{File: "x"}, {File: "y"}}

			So(p.pickInitialQuality(plain), ShouldEqual, 0)

			p.currentQuality = 1
			So(p.pickInitialQuality(plain), ShouldEqual, 1)

			p.currentQuality = 5
			So(p.pickInitialQuality(plain), ShouldEqual, 1)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a desktop provider", t, func() {
		f := newFixture(Options{})

		Convey("Load announces levels and starts loading", func() {
			So(f.p.Load(threeLevels()), ShouldBeNil)

			So(f.p.CurrentQuality(), ShouldEqual, 1)
			So(f.p.State(), ShouldEqual, state.Loading)
			So(f.el.Src(), ShouldEqual, "b.mp4")
			So(f.el.Called("load"), ShouldBeTrue)

			levels, ok := f.rec.last(event.Levels)
			So(ok, ShouldBeTrue)
			So(levels.Data, ShouldResemble, event.LevelsData{
				Levels:         []source.PublicLevel{{Label: "A"}, {Label: "B"}, {Label: "C"}},
				CurrentQuality: 1,
			})

			mediaType, _ := f.rec.last(event.MediaType)
			So(mediaType.Data, ShouldResemble, event.MediaTypeData{MediaType: source.Video})

			st, _ := f.rec.last(event.State)
			So(st.Data, ShouldResemble, event.StateData{New: state.Loading, Old: state.Idle})
		})

		Convey("Load rejects items without levels", func() {
			err := f.p.Load(&source.Item{})
			So(errors.Is(err, ErrNoSources), ShouldBeTrue)
			So(errors.Is(err, source.ErrInvalidItem), ShouldBeTrue)
			So(f.p.State(), ShouldEqual, state.Idle)
		})

		Convey("Load rejects levels without a file", func() {
			err := f.p.Load(&source.Item{Sources: []source.Level{{Label: "x"}}})
			So(errors.Is(err, source.ErrInvalidItem), ShouldBeTrue)
		})

		Convey("Audio items are announced as audio", func() {
			So(f.p.Load(&source.Item{Sources: []source.Level{{File: "a.mp3", Type: "mp3"}}}), ShouldBeNil)
			mediaType, _ := f.rec.last(event.MediaType)
			So(mediaType.Data, ShouldResemble, event.MediaTypeData{MediaType: source.Audio})
		})

		Convey("A start time is sought once the element can seek", func() {
			item := threeLevels()
			item.StartTime = mo.Some(30.0)
			So(f.p.Load(item), ShouldBeNil)

			So(f.rec.count(event.Seek), ShouldEqual, 1)
			So(f.el.Count("seek="), ShouldEqual, 0)

			f.el.Fire(media.CanPlay)
			f.el.Dur = 120
			f.el.Fire(media.DurationChange)
			So(f.el.Calls, ShouldContain, "seek=30")
			So(f.rec.count(event.Seek), ShouldEqual, 1)
		})

		Convey("Reloading the same locator restarts silently in place", func() {
			f.startPlaying(threeLevels())
			f.el.Time = 30
			f.el.Reset()
			f.rec.reset()

			So(f.p.Load(threeLevels()), ShouldBeNil)

			So(f.el.Called("load"), ShouldBeFalse)
			So(f.el.Calls, ShouldContain, "seek=0")
			So(f.el.Calls, ShouldContain, "play")
			So(f.rec.count(event.Seek), ShouldEqual, 0)
		})

		Convey("A silent restart refused by the element is retried", func() {
			f.startPlaying(threeLevels())
			f.el.Time = 30
			f.el.SeekErr = errors.New("not ready")

			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.p.delayed, ShouldResemble, delayedSeek{mode: seekPending, target: 0})

			f.el.SeekErr = nil
			f.el.Fire(media.DurationChange)
			So(f.el.CurrentTime(), ShouldEqual, 0)
			So(f.p.delayed.mode, ShouldEqual, seekNone)
			So(f.rec.count(event.Seek), ShouldEqual, 0)
		})

		Convey("Init binds without loading or announcing levels", func() {
			item := threeLevels()
			item.StartTime = mo.Some(5.0)
			item.Duration = mo.Some(100.0)
			So(f.p.Init(item), ShouldBeNil)

			So(f.el.Src(), ShouldEqual, "b.mp4")
			So(f.el.Called("load"), ShouldBeFalse)
			So(f.rec.count(event.Levels), ShouldEqual, 0)
			So(f.rec.count(event.MediaType), ShouldEqual, 1)
			So(f.p.Position(), ShouldEqual, 5)
			So(f.p.Duration(), ShouldEqual, 100)
			So(f.p.State(), ShouldEqual, state.Idle)
		})

		Convey("Preload hints are applied when binding", func() {
			item := &source.Item{Sources: []source.Level{{File: "a.mp4", Preload: "metadata"}}}
			So(f.p.Load(item), ShouldBeNil)
			So(f.el.Preload, ShouldEqual, "metadata")
		})
	})

	Convey("Given a mobile provider", t, func() {
		f := newFixture(Options{Platform: profile("mobile")})

		Convey("Load does not imply playback", func() {
			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.p.State(), ShouldEqual, state.Idle)
			So(f.rec.count(event.BufferFull), ShouldEqual, 1)
		})

		Convey("The same locator is reloaded anyway", func() {
			So(f.p.Load(threeLevels()), ShouldBeNil)
			f.el.Reset()
			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.el.Called("load"), ShouldBeTrue)
		})
	})
}

func TestStopAndLoad(t *testing.T) {
	Convey("Given a playing provider", t, func() {
		f := newFixture(Options{})
		f.startPlaying(threeLevels())

		Convey("Stop clears the source and returns to idle", func() {
			f.el.Reset()
			f.p.Stop()

			So(f.p.State(), ShouldEqual, state.Idle)
			So(f.p.CurrentQuality(), ShouldEqual, -1)
			So(f.el.Calls, ShouldResemble, []string{"clearsrc", "load"})
			So(f.clock.Pending(), ShouldEqual, 0)
		})

		Convey("Load after stop selects a valid level", func() {
			f.p.Stop()
			item := &source.Item{Sources: []source.Level{{File: "x.mp4"}, {File: "y.mp4"}}}
			So(f.p.Load(item), ShouldBeNil)
			So(f.p.CurrentQuality(), ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("Load after completion selects a valid level", func() {
			f.el.Fire(media.Ended)
			So(f.p.CurrentQuality(), ShouldEqual, -1)
			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.p.CurrentQuality(), ShouldEqual, 1)
		})
	})

	Convey("Given an Internet Explorer provider", t, func() {
		f := newFixture(Options{Platform: profile("msie")})
		So(f.p.Load(threeLevels()), ShouldBeNil)
		f.el.Reset()

		Convey("Stop pauses instead of reloading", func() {
			f.p.Stop()
			So(f.el.Calls, ShouldResemble, []string{"clearsrc", "pause"})
		})
	})
}

func TestStallDetection(t *testing.T) {
	Convey("Given a playing provider", t, func() {
		f := newFixture(Options{})
		f.startPlaying(threeLevels())
		So(f.p.State(), ShouldEqual, state.Playing)

		Convey("No time progress for the stall delay stalls playback", func() {
			f.clock.Advance(DefaultStallDelay)
			So(f.p.State(), ShouldEqual, state.Stalled)

			Convey("and time progress heals it", func() {
				f.el.Time = 1.25
				f.el.Fire(media.TimeUpdate)
				So(f.p.State(), ShouldEqual, state.Playing)
			})
		})

		Convey("Time progress before the delay keeps playing", func() {
			f.clock.Advance(DefaultStallDelay / 2)
			f.el.Time = 1.1
			f.clock.Advance(DefaultStallDelay / 2)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("At most one check is pending", func() {
			for i := 0; i < 5; i++ {
				f.el.Time += 0.25
				f.el.Fire(media.TimeUpdate)
			}
			So(f.clock.Pending(), ShouldEqual, 1)
		})

		Convey("A natively paused element does not stall", func() {
			f.el.IsPaused = true
			f.clock.Advance(time.Second)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("An ended element does not stall", func() {
			f.el.IsEnded = true
			f.clock.Advance(time.Second)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("A seek in flight does not stall", func() {
			f.p.Seek(20)
			f.el.Time = 1
			f.clock.Advance(time.Second)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("Pausing cancels the check", func() {
			So(f.p.Pause(), ShouldBeNil)
			So(f.clock.Pending(), ShouldEqual, 0)
			So(f.p.State(), ShouldEqual, state.Paused)
		})

		Convey("Detaching cancels the check", func() {
			f.p.DetachMedia()
			So(f.clock.Pending(), ShouldEqual, 0)
		})

		Convey("A custom delay is honored", func() {
			g := newFixture(Options{StallDelay: time.Second})
			g.startPlaying(threeLevels())
			g.clock.Advance(DefaultStallDelay)
			So(g.p.State(), ShouldEqual, state.Playing)
			g.clock.Advance(time.Second)
			So(g.p.State(), ShouldEqual, state.Stalled)
		})
	})

	Convey("Given a non-playing state", t, func() {
		f := newFixture(Options{})
		So(f.p.Load(threeLevels()), ShouldBeNil)
		f.el.IsPaused = false

		Convey("Time updates while loading arm nothing", func() {
			f.el.Fire(media.TimeUpdate)
			So(f.clock.Pending(), ShouldEqual, 0)
			f.clock.Advance(time.Second)
			So(f.p.State(), ShouldEqual, state.Loading)
		})
	})

	Convey("Given Android playing HLS natively", t, func() {
		f := newFixture(Options{Platform: profile("android")})
		hls := &source.Item{Sources: []source.Level{{File: "live.m3u8", Type: "hls"}}}
		f.startPlaying(hls)

		Convey("Stalls are never reported", func() {
			So(f.p.State(), ShouldEqual, state.Playing)
			f.clock.Advance(time.Second)
			So(f.p.State(), ShouldEqual, state.Playing)
		})
	})
}

func TestCompletion(t *testing.T) {
	Convey("Given a playing provider", t, func() {
		f := newFixture(Options{})
		f.startPlaying(threeLevels())
		f.rec.reset()

		Convey("Ending emits before-complete then complete, once", func() {
			f.el.Fire(media.Ended)
			f.el.Fire(media.Ended)

			So(f.p.State(), ShouldEqual, state.Complete)
			So(f.rec.count(event.BeforeComplete), ShouldEqual, 1)
			So(f.rec.count(event.Complete), ShouldEqual, 1)
			So(f.rec.types(), ShouldResemble, []event.Type{event.BeforeComplete, event.State, event.Complete})
			So(f.p.CheckComplete(), ShouldBeFalse)
		})

		Convey("Ending from every active state completes", func() {
			for _, s := range []state.State{state.Loading, state.Paused, state.Stalled} {
				g := newFixture(Options{})
				g.startPlaying(threeLevels())
				g.p.setState(s)
				g.el.Fire(media.Ended)
				So(g.p.State(), ShouldEqual, state.Complete)
			}
		})

		Convey("Ending while idle does nothing", func() {
			f.p.Stop()
			f.rec.reset()
			f.el.Fire(media.Ended)
			So(f.rec.events, ShouldBeEmpty)
		})

		Convey("A pause after completion is ignored", func() {
			f.el.Fire(media.Ended)
			f.el.Fire(media.Pause)
			So(f.p.State(), ShouldEqual, state.Complete)
		})

		Convey("A pause at the very end is ignored", func() {
			f.el.Time = f.el.Dur
			f.el.Fire(media.Pause)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("A regular pause is reported", func() {
			f.el.Fire(media.Pause)
			So(f.p.State(), ShouldEqual, state.Paused)
		})

		Convey("Detaching during before-complete defers completion", func() {
			f.p.Once(event.BeforeComplete, func(event.Event) { f.p.DetachMedia() })

			f.el.Fire(media.Ended)
			So(f.p.CheckComplete(), ShouldBeTrue)
			So(f.rec.count(event.Complete), ShouldEqual, 0)
			So(f.p.State(), ShouldEqual, state.Playing)

			f.p.AttachMedia(false)
			So(f.p.State(), ShouldEqual, state.Complete)
			So(f.rec.count(event.Complete), ShouldEqual, 1)
			So(f.p.CheckComplete(), ShouldBeFalse)

			f.p.AttachMedia(false)
			So(f.rec.count(event.Complete), ShouldEqual, 1)
		})
	})
}

func TestSeek(t *testing.T) {
	Convey("Given a loaded provider", t, func() {
		f := newFixture(Options{})
		So(f.p.Load(threeLevels()), ShouldBeNil)
		f.rec.reset()

		Convey("A seek before seekability is deferred until the duration passes it", func() {
			f.p.Seek(5)
			So(f.rec.count(event.Seek), ShouldEqual, 1)
			So(f.el.Count("seek="), ShouldEqual, 0)

			seek, _ := f.rec.last(event.Seek)
			So(seek.Data, ShouldResemble, event.SeekData{Position: 0, Offset: 5})

			f.el.Fire(media.CanPlay)
			f.el.Dur = 3
			f.el.Fire(media.DurationChange)
			So(f.el.Count("seek="), ShouldEqual, 0)

			f.el.Dur = 10
			f.el.Fire(media.DurationChange)
			So(f.el.Count("seek="), ShouldEqual, 1)
			So(f.p.delayed.mode, ShouldEqual, seekNone)

			f.el.Dur = 11
			f.el.Fire(media.DurationChange, media.LoadedMetadata)
			So(f.el.Count("seek="), ShouldEqual, 1)
			So(f.rec.count(event.Seek), ShouldEqual, 1)
		})

		Convey("A refused seek is deferred, never surfaced", func() {
			f.el.Fire(media.CanPlay)
			f.el.SeekErr = errors.New("not ready")
			f.p.Seek(3)

			So(f.p.Seeking(), ShouldBeFalse)
			So(f.p.delayed, ShouldResemble, delayedSeek{mode: seekPending, target: 3})
			So(f.rec.count(event.MediaError), ShouldEqual, 0)

			f.el.SeekErr = nil
			f.el.Dur = 10
			f.el.Fire(media.DurationChange)
			So(f.el.CurrentTime(), ShouldEqual, 3)
			So(f.rec.count(event.Seek), ShouldEqual, 1)
		})

		Convey("Seeked clears the seeking flag", func() {
			f.el.Fire(media.CanPlay)
			f.p.Seek(2)
			So(f.p.Seeking(), ShouldBeTrue)
			f.el.Fire(media.Seeked)
			So(f.p.Seeking(), ShouldBeFalse)
			So(f.rec.count(event.Seeked), ShouldEqual, 1)
		})

		Convey("Play during a seek waits for it to finish", func() {
			f.el.Fire(media.CanPlay)
			f.p.Seek(2)
			f.el.Reset()

			So(f.p.Play(), ShouldBeNil)
			So(f.p.Play(), ShouldBeNil)
			So(f.p.State(), ShouldEqual, state.Loading)
			So(f.el.Called("play"), ShouldBeFalse)

			f.el.Fire(media.Seeked)
			So(f.el.Count("play"), ShouldEqual, 1)

			f.el.Fire(media.Seeked)
			So(f.el.Count("play"), ShouldEqual, 1)
		})
	})
}

func TestSetCurrentQuality(t *testing.T) {
	Convey("Given a provider playing level B", t, func() {
		var persisted []string
		f := newFixture(Options{OnQualityLabel: func(l string) { persisted = append(persisted, l) }})
		f.startPlaying(threeLevels())
		f.el.Time = 42
		f.el.Reset()
		f.rec.reset()

		Convey("Selecting the active level is a no-op", func() {
			f.p.SetCurrentQuality(1)
			So(f.rec.events, ShouldBeEmpty)
			So(f.el.Calls, ShouldBeEmpty)
		})

		Convey("Invalid indices are ignored", func() {
			f.p.SetCurrentQuality(-1)
			f.p.SetCurrentQuality(3)
			So(f.rec.events, ShouldBeEmpty)
			So(f.p.CurrentQuality(), ShouldEqual, 1)
		})

		Convey("Switching reloads in place at the current position", func() {
			f.p.SetCurrentQuality(2)

			So(f.p.CurrentQuality(), ShouldEqual, 2)
			So(f.el.Src(), ShouldEqual, "c.mp4")
			So(f.el.Called("load"), ShouldBeTrue)
			So(f.p.State(), ShouldEqual, state.Loading)
			So(persisted, ShouldResemble, []string{"C"})
			So(f.p.opts.QualityLabel, ShouldEqual, "C")

			changed, _ := f.rec.last(event.LevelsChanged)
			So(changed.Data, ShouldResemble, event.LevelsData{
				Levels:         []source.PublicLevel{{Label: "A"}, {Label: "B"}, {Label: "C"}},
				CurrentQuality: 2,
			})

			So(f.p.delayed, ShouldResemble, delayedSeek{mode: seekPending, target: 42})
			f.el.Fire(media.CanPlay, media.DurationChange)
			So(f.el.Calls, ShouldContain, "seek=42")
		})

		Convey("Later loads prefer the selected label", func() {
			f.p.SetCurrentQuality(0)
			f.p.Stop()
			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.p.CurrentQuality(), ShouldEqual, 0)
		})
	})
}

func TestNotifications(t *testing.T) {
	Convey("Given a loaded provider", t, func() {
		f := newFixture(Options{})
		So(f.p.Load(threeLevels()), ShouldBeNil)
		f.rec.reset()
		f.el.Reset()

		Convey("Buffer changes are only reported when something changed", func() {
			f.el.Dur = 100
			f.el.Ranges = media.TimeRanges{{Start: 0, End: 25}}
			f.el.Fire(media.DurationChange, media.Progress, media.Progress)

			So(f.rec.count(event.BufferChange), ShouldEqual, 1)
			buffer, _ := f.rec.last(event.BufferChange)
			So(buffer.Data, ShouldResemble, event.BufferData{BufferPercent: 25, Position: 0, Duration: 100})
			So(f.p.BufferedFraction(), ShouldEqual, 0.25)

			f.el.Ranges = media.TimeRanges{{Start: 0, End: 10}}
			f.el.Fire(media.Progress)
			So(f.rec.count(event.BufferChange), ShouldEqual, 2)
			So(f.p.BufferedFraction(), ShouldEqual, 0.1)
		})

		Convey("Buffer full is reported once per load", func() {
			f.el.Fire(media.CanPlay, media.CanPlay)
			So(f.rec.count(event.BufferFull), ShouldEqual, 1)
		})

		Convey("Metadata carries duration and size", func() {
			f.el.Dur, f.el.Width, f.el.Height = 90, 1280, 720
			f.el.Fire(media.LoadedMetadata)
			meta, _ := f.rec.last(event.Meta)
			So(meta.Data, ShouldResemble, event.MetaData{Duration: 90, Width: 1280, Height: 720})
		})

		Convey("Metadata re-applies a mute", func() {
			f.el.Mute = true
			f.el.Fire(media.LoadedMetadata)
			So(f.el.Calls, ShouldResemble, []string{"muted=false", "muted=true"})
		})

		Convey("Playing reports the first frame", func() {
			f.el.Fire(media.Playing)
			So(f.rec.types(), ShouldResemble, []event.Type{event.State, event.ProviderFirstFrame})
		})

		Convey("Time is only reported while playing", func() {
			f.el.Fire(media.TimeUpdate)
			So(f.rec.count(event.Time), ShouldEqual, 0)
			f.el.Fire(media.Playing)
			f.el.Time = 3
			f.el.Fire(media.TimeUpdate)
			tick, _ := f.rec.last(event.Time)
			So(tick.Data, ShouldResemble, event.TimeData{Position: 3, Duration: 0})
		})

		Convey("Errors carry a fixed message and the locator", func() {
			f.el.Err = errors.New("decode failed")
			f.el.Fire(media.Error)
			failure, _ := f.rec.last(event.MediaError)
			data := failure.Data.(event.ErrorData)
			So(data.Message, ShouldEqual, "Error loading media: File could not be played")
			So(data.Locator, ShouldEqual, "b.mp4")
			So(data.Err, ShouldEqual, f.el.Err)
		})

		Convey("Volume changes report volume and mute", func() {
			f.p.Volume(150)
			So(f.el.Volume(), ShouldEqual, 1)
			f.p.Volume(-3)
			So(f.el.Volume(), ShouldEqual, 0)
			f.p.Volume(42)
			f.p.Mute(true)
			f.el.Fire(media.VolumeChange)
			So(f.rec.types(), ShouldResemble, []event.Type{event.Volume, event.Mute})
			So(f.rec.events[0].Data, ShouldResemble, event.VolumeData{Volume: 42})
			So(f.rec.events[1].Data, ShouldResemble, event.MuteData{Mute: true})
		})

		Convey("Fullscreen changes are tracked", func() {
			f.el.Fire(media.FullscreenBegin)
			So(f.p.Fullscreen(), ShouldBeTrue)
			So(f.el.Called("controls="), ShouldBeFalse)

			f.el.Fire(media.FullscreenEnd)
			So(f.p.Fullscreen(), ShouldBeFalse)
			So(f.rec.count(event.FullscreenChange), ShouldEqual, 2)

			fs, _ := f.rec.last(event.FullscreenChange)
			So(fs.Data, ShouldResemble, event.FullscreenData{Fullscreen: false})
		})

		Convey("Touch platforms hide native controls after fullscreen changes", func() {
			g := newFixture(Options{Platform: profile("ios")})
			g.el.Fire(media.FullscreenBegin)
			So(g.el.Calls, ShouldContain, "controls=false")
			g.el.Reset()
			g.el.Fire(media.FullscreenEnd)
			So(g.el.Calls, ShouldResemble, []string{"controls=false"})
		})

		Convey("Clicks are forwarded", func() {
			f.el.Fire(media.Click)
			So(f.rec.types(), ShouldResemble, []event.Type{event.Click})
		})

		Convey("State changes carry both states and never repeat", func() {
			f.el.Fire(media.Playing, media.Playing)
			So(f.rec.count(event.State), ShouldEqual, 1)
			st, _ := f.rec.last(event.State)
			So(st.Data, ShouldResemble, event.StateData{New: state.Playing, Old: state.Loading})
		})
	})
}

func TestAttachment(t *testing.T) {
	Convey("Given a detached provider", t, func() {
		f := newFixture(Options{})
		f.startPlaying(threeLevels())
		el := f.p.DetachMedia()
		So(el, ShouldEqual, f.el)
		f.rec.reset()
		f.el.Reset()

		Convey("Raw events change nothing and notify nobody", func() {
			f.el.Fire(media.Events()...)
			So(f.rec.events, ShouldBeEmpty)
			So(f.p.State(), ShouldEqual, state.Playing)
		})

		Convey("Caller operations are no-ops", func() {
			So(f.p.Load(threeLevels()), ShouldBeNil)
			So(f.p.Play(), ShouldBeNil)
			So(f.p.Pause(), ShouldBeNil)
			f.p.Seek(9)
			f.p.Stop()
			f.p.Volume(10)
			f.p.Mute(true)
			f.p.SetCurrentQuality(0)

			So(f.el.Calls, ShouldBeEmpty)
			So(f.rec.events, ShouldBeEmpty)
			So(f.p.CurrentQuality(), ShouldEqual, 1)
		})

		Convey("Reattaching resets borrowed element state", func() {
			f.el.Loop = true
			f.p.seeking = true
			f.p.AttachMedia(false)

			So(f.p.Attached(), ShouldBeTrue)
			So(f.el.Loop, ShouldBeFalse)
			So(f.p.Seeking(), ShouldBeFalse)
			So(f.p.canSeek, ShouldBeFalse)
		})

		Convey("Reattaching as seekable keeps seekability", func() {
			f.p.AttachMedia(true)
			So(f.p.canSeek, ShouldBeTrue)
		})
	})
}

func TestContainer(t *testing.T) {
	Convey("Given a provider in a slot", t, func() {
		f := newFixture(Options{})
		slot := layout.NewSlot()
		f.p.SetContainer(slot)

		So(f.p.Container(), ShouldEqual, slot)
		So(slot.Contains(f.el), ShouldBeTrue)

		Convey("Hiding fades the slot out", func() {
			f.p.SetVisibility(false)
			So(slot.Style(), ShouldResemble, layout.Style{Visible: false, Opacity: 0})
			f.p.SetVisibility(true)
			So(slot.Style(), ShouldResemble, layout.Style{Visible: true, Opacity: 1})
		})

		Convey("Android keeps the slot visible", func() {
			g := newFixture(Options{Platform: profile("android")})
			s := layout.NewSlot()
			g.p.SetContainer(s)
			g.p.SetVisibility(false)
			So(s.Style().Visible, ShouldBeTrue)
		})

		Convey("Remove clears the source and leaves the slot", func() {
			So(f.p.Load(threeLevels()), ShouldBeNil)
			f.p.Remove()
			So(slot.Contains(f.el), ShouldBeFalse)
			So(f.el.Src(), ShouldBeEmpty)
			So(f.p.CurrentQuality(), ShouldEqual, -1)
		})

		Convey("Resize stretches to the natural size", func() {
			f.el.Width, f.el.Height = 1920, 1080
			box, ok := f.p.Resize(960, 960, layout.Uniform)
			So(ok, ShouldBeTrue)
			So(box.Width, ShouldEqual, 960)
			So(box.Height, ShouldEqual, 540)
		})

		Convey("Fullscreen requests report the result", func() {
			So(f.p.SetFullscreen(true), ShouldBeTrue)
			So(f.p.SetFullscreen(false), ShouldBeFalse)

			f.el.FullscreenErr = errors.New("unsupported")
			So(f.p.SetFullscreen(true), ShouldBeFalse)
		})

		Convey("Destroy unsubscribes and silences the provider", func() {
			f.p.Destroy()
			So(f.el.Subscribers(), ShouldEqual, 0)
			So(slot.Contains(f.el), ShouldBeFalse)

			f.rec.reset()
			f.p.Seek(1)
			So(f.rec.events, ShouldBeEmpty)
		})
	})
}

func TestRandomEventSequences(t *testing.T) {
	Convey("Under random raw events and caller operations", t, func() {
		rng := rand.New(rand.NewSource(7))
		f := newFixture(Options{})

		var leaked int
		f.p.OnAll(func(event.Event) {
			if !f.p.Attached() {
				leaked++
			}
		})

		events := media.Events()
		for i := 0; i < 2000; i++ {
			switch rng.Intn(12) {
			case 0:
				_ = f.p.Load(threeLevels())
			case 1:
				f.p.DetachMedia()
			case 2:
				f.p.AttachMedia(rng.Intn(2) == 0)
			case 3:
				f.p.Seek(rng.Float64() * 60)
			case 4:
				f.p.SetCurrentQuality(rng.Intn(4) - 1)
			case 5:
				f.p.Stop()
			case 6:
				f.clock.Advance(time.Duration(rng.Intn(400)) * time.Millisecond)
			default:
				f.el.Time += rng.Float64()
				f.el.Dur = 60
				f.el.IsPaused = rng.Intn(3) == 0
				f.el.Fire(events[rng.Intn(len(events))])
			}

			So(f.p.State().Valid(), ShouldBeTrue)
			So(f.p.CurrentQuality(), ShouldBeBetweenOrEqual, -1, len(f.p.levels)-1)
			So(f.p.BufferedFraction(), ShouldBeBetweenOrEqual, 0, 1)
			So(f.clock.Pending(), ShouldBeLessThanOrEqualTo, 1)
		}

		So(leaked, ShouldEqual, 0)
	})
}
