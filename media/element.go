// Package media describes the underlying playback surface a provider drives.
//
// An Element is a foreign state machine: it owns its own notion of playing,
// buffering and seeking and reports it through an unreliable event stream.
// Implementations only mirror what the backend reports and never try to
// correct it.
package media

// Listener receives raw events from an Element.
type Listener func(Event)

// Element is a playable surface with a mutable time/volume/source surface,
// play/pause/load commands and a raw lifecycle event stream.
type Element interface {
	CurrentTime() float64
	// SetCurrentTime requests a position change. It fails when the element
	// is not ready to seek yet.
	SetCurrentTime(seconds float64) error
	Duration() float64

	Volume() float64
	SetVolume(volume float64)
	Muted() bool
	SetMuted(muted bool)

	Src() string
	SetSrc(locator string)
	ClearSrc()
	SetPreload(preload string)

	Play() error
	Pause() error
	Load() error

	Buffered() TimeRanges
	Paused() bool
	Ended() bool
	SetLoop(loop bool)
	VideoWidth() int
	VideoHeight() int

	EnterFullscreen() error
	ExitFullscreen() error
	DisplayingFullscreen() bool
	SetControls(visible bool)

	// Error returns the last playback failure reported by the backend, if any.
	Error() error

	// Subscribe registers l for raw events and returns a function removing it.
	Subscribe(l Listener) (unsubscribe func())
}
