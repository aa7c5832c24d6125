// Package provider normalizes a media element into a deterministic playback
// state machine.
//
// A Provider owns one element for its lifetime. It listens to the element's
// raw events, corroborates them against its own bookkeeping and publishes
// notifications through an event.Dispatcher. While detached it neither
// observes nor mutates the element and publishes nothing.
//
// A Provider is not safe for concurrent use. Its methods, the element's
// listener callbacks and the scheduler's timers must all run on one goroutine;
// see package loop.
package provider

import (
	"fmt"
	"time"

	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/layout"
	"github.com/steadyplay/steadyplay/media"
	"github.com/steadyplay/steadyplay/platform"
	"github.com/steadyplay/steadyplay/scheduler"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
)

// DefaultStallDelay is how long a playing stream may go without time progress.
const DefaultStallDelay = 256 * time.Millisecond

// DefaultName is reported by Name when Options.Name is empty.
const DefaultName = "native"

// ErrNoSources is returned when an item without levels is loaded.
var ErrNoSources = fmt.Errorf("%w: no sources", source.ErrInvalidItem)

// errorMessage is the user facing text of every playback error notification.
const errorMessage = "Error loading media: File could not be played"

// Options configures a Provider.
type Options struct {
	// Name is reported by Name.
	Name string
	// QualityLabel is the preferred level label.
	QualityLabel string
	// StallDelay overrides DefaultStallDelay.
	StallDelay time.Duration
	// Platform selects the quirks to compensate for.
	Platform platform.Profile
	// OnQualityLabel is called with the label of a manually selected level.
	OnQualityLabel func(label string)
}

// Provider is the media playback provider.
type Provider struct {
	el      media.Element
	sched   scheduler.Scheduler
	opts    Options
	events  *event.Dispatcher
	machine state.Machine

	unsubscribe func()
	container   layout.Container

	attached        bool
	seeking         bool
	canSeek         bool
	bufferFull      bool
	beforeCompleted bool
	fullscreen      bool
	misreportsStall bool

	position float64
	duration float64
	buffered float64

	levels         []source.Level
	currentQuality int
	locator        string

	delayed    delayedSeek
	stallTimer scheduler.Timer
	playOnSeek func()
}

// New adopts el and starts listening to it. Timers are scheduled on sched.
func New(el media.Element, sched scheduler.Scheduler, opts Options) *Provider {
	if opts.StallDelay <= 0 {
		opts.StallDelay = DefaultStallDelay
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}

	p := &Provider{
		el:             el,
		sched:          sched,
		opts:           opts,
		attached:       true,
		buffered:       -1,
		currentQuality: -1,
	}
	p.events = event.NewDispatcher(func() bool { return p.attached })
	p.unsubscribe = el.Subscribe(p.handle)

	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.opts.Name
}

// State returns the current playback state.
func (p *Provider) State() state.State {
	return p.machine.Current()
}

// Attached reports whether the provider currently owns the element.
func (p *Provider) Attached() bool {
	return p.attached
}

// Seeking reports whether a seek is in flight.
func (p *Provider) Seeking() bool {
	return p.seeking
}

// Position returns the last observed position in seconds.
func (p *Provider) Position() float64 {
	return p.position
}

// Duration returns the last observed duration in seconds.
func (p *Provider) Duration() float64 {
	return p.duration
}

// BufferedFraction returns the last computed buffered fraction, within [0, 1].
func (p *Provider) BufferedFraction() float64 {
	if p.buffered < 0 {
		return 0
	}
	return p.buffered
}

// On subscribes h to notifications of type t.
func (p *Provider) On(t event.Type, h event.Handler) (off func()) {
	return p.events.On(t, h)
}

// Once subscribes h to the next notification of type t.
func (p *Provider) Once(t event.Type, h event.Handler) (off func()) {
	return p.events.Once(t, h)
}

// OnAll subscribes h to every notification.
func (p *Provider) OnAll(h event.Handler) (off func()) {
	return p.events.OnAll(h)
}

// Destroy stops listening to the element, removes it and drops every
// notification subscriber.
func (p *Provider) Destroy() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.Remove()
	p.events.Clear()
}

func (p *Provider) emit(t event.Type, data any) {
	p.events.Emit(t, data)
}

func (p *Provider) setState(s state.State) {
	if !p.attached {
		return
	}
	if old, changed := p.machine.Set(s); changed {
		p.emit(event.State, event.StateData{New: s, Old: old})
	}
}
