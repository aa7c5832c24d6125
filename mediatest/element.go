// Package mediatest provides a scriptable media.Element for tests.
package mediatest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/steadyplay/steadyplay/media"
)

// Element is a fake media element. Its fields are the element's observable
// surface; tests set them directly and fire events with Fire. Commands are
// recorded in Calls.
type Element struct {
	Time       float64
	Dur        float64
	Vol        float64
	Mute       bool
	Source     string
	Preload    string
	IsPaused   bool
	IsEnded    bool
	Loop       bool
	Width      int
	Height     int
	Fullscreen bool
	Controls   bool
	Ranges     media.TimeRanges
	Err        error

	// SeekErr, when set, is returned by SetCurrentTime.
	SeekErr error
	// FullscreenErr, when set, is returned by EnterFullscreen.
	FullscreenErr error

	Calls []string

	listeners map[int]media.Listener
	nextID    int
}

var _ media.Element = (*Element)(nil)

// New returns a paused element with full volume.
func New() *Element {
	return &Element{
		Vol:       1,
		IsPaused:  true,
		listeners: make(map[int]media.Listener),
	}
}

func (e *Element) record(format string, args ...any) {
	e.Calls = append(e.Calls, fmt.Sprintf(format, args...))
}

func (e *Element) CurrentTime() float64 { return e.Time }

func (e *Element) SetCurrentTime(seconds float64) error {
	e.record("seek=%g", seconds)
	if e.SeekErr != nil {
		return e.SeekErr
	}
	e.Time = seconds
	return nil
}

func (e *Element) Duration() float64 { return e.Dur }
func (e *Element) Volume() float64   { return e.Vol }

func (e *Element) SetVolume(volume float64) {
	e.record("volume=%g", volume)
	e.Vol = volume
}

func (e *Element) Muted() bool { return e.Mute }

func (e *Element) SetMuted(muted bool) {
	e.record("muted=%t", muted)
	e.Mute = muted
}

func (e *Element) Src() string { return e.Source }

func (e *Element) SetSrc(locator string) {
	e.record("src=%s", locator)
	e.Source = locator
}

func (e *Element) ClearSrc() {
	e.record("clearsrc")
	e.Source = ""
}

func (e *Element) SetPreload(preload string) {
	e.record("preload=%s", preload)
	e.Preload = preload
}

func (e *Element) Play() error {
	e.record("play")
	e.IsPaused = false
	return nil
}

func (e *Element) Pause() error {
	e.record("pause")
	e.IsPaused = true
	return nil
}

func (e *Element) Load() error {
	e.record("load")
	e.IsEnded = false
	return nil
}

func (e *Element) Buffered() media.TimeRanges { return e.Ranges }
func (e *Element) Paused() bool               { return e.IsPaused }
func (e *Element) Ended() bool                { return e.IsEnded }

func (e *Element) SetLoop(loop bool) {
	e.record("loop=%t", loop)
	e.Loop = loop
}

func (e *Element) VideoWidth() int  { return e.Width }
func (e *Element) VideoHeight() int { return e.Height }

func (e *Element) EnterFullscreen() error {
	e.record("enterfullscreen")
	if e.FullscreenErr != nil {
		return e.FullscreenErr
	}
	e.Fullscreen = true
	return nil
}

func (e *Element) ExitFullscreen() error {
	e.record("exitfullscreen")
	e.Fullscreen = false
	return nil
}

func (e *Element) DisplayingFullscreen() bool { return e.Fullscreen }

func (e *Element) SetControls(visible bool) {
	e.record("controls=%t", visible)
	e.Controls = visible
}

func (e *Element) Error() error { return e.Err }

func (e *Element) Subscribe(l media.Listener) func() {
	e.nextID++
	id := e.nextID
	e.listeners[id] = l
	return func() { delete(e.listeners, id) }
}

// Fire delivers events to every subscriber in subscription order.
func (e *Element) Fire(events ...media.Event) {
	for _, ev := range events {
		ids := make([]int, 0, len(e.listeners))
		for id := range e.listeners {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			if l, ok := e.listeners[id]; ok {
				l(ev)
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (e *Element) Subscribers() int {
	return len(e.listeners)
}

// Called reports whether a command with the given recorded form was issued.
func (e *Element) Called(call string) bool {
	return e.Count(call) > 0
}

// Count returns how many recorded commands start with prefix.
func (e *Element) Count(prefix string) int {
	n := 0
	for _, c := range e.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Reset forgets recorded commands.
func (e *Element) Reset() {
	e.Calls = nil
}
