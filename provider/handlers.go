package provider

import (
	"math"

	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/media"
	"github.com/steadyplay/steadyplay/state"
)

// handle routes a raw element event. Nothing happens while detached.
func (p *Provider) handle(e media.Event) {
	if !p.attached {
		return
	}

	switch e {
	case media.Click:
		p.emit(event.Click, nil)
	case media.DurationChange:
		p.onDurationChange()
	case media.Progress:
		p.setBuffered(p.currentBuffer(), p.position, p.duration)
	case media.TimeUpdate:
		p.onTimeUpdate()
	case media.CanPlay:
		p.canSeek = true
		p.sendBufferFull()
	case media.LoadedMetadata:
		p.onLoadedMetadata()
	case media.Playing:
		p.setState(state.Playing)
		p.emit(event.ProviderFirstFrame, nil)
	case media.Pause:
		p.onPause()
	case media.Seeked:
		p.seeking = false
		p.emit(event.Seeked, nil)
	case media.Ended:
		p.onEnded()
	case media.Error:
		p.onError()
	case media.FullscreenBegin:
		p.onFullscreen(true)
	case media.FullscreenEnd:
		p.onFullscreen(false)
	case media.VolumeChange:
		p.emit(event.Volume, event.VolumeData{Volume: int(math.Round(p.el.Volume() * 100))})
		p.emit(event.Mute, event.MuteData{Mute: p.el.Muted()})
	}
}

func (p *Provider) onDurationChange() {
	d := p.el.Duration()
	p.setBuffered(p.currentBuffer(), p.position, d)
	p.setDuration(d)
}

func (p *Provider) onTimeUpdate() {
	p.stopStallCheck()
	p.canSeek = true

	p.setDuration(p.el.Duration())
	p.position = p.el.CurrentTime()

	switch p.State() {
	case state.Stalled:
		p.setState(state.Playing)
	case state.Playing:
		p.armStallCheck()
	}

	// buffered ranges move during playback, not only on progress
	p.setBuffered(p.currentBuffer(), p.position, p.duration)

	if p.State() == state.Playing {
		p.emit(event.Time, event.TimeData{Position: p.position, Duration: p.duration})
	}
}

func (p *Provider) onLoadedMetadata() {
	// some backends drop a mute applied before metadata
	if p.el.Muted() {
		p.el.SetMuted(false)
		p.el.SetMuted(true)
	}

	d := p.el.Duration()
	p.emit(event.Meta, event.MetaData{
		Duration: d,
		Width:    p.el.VideoWidth(),
		Height:   p.el.VideoHeight(),
	})
	p.setDuration(d)
}

func (p *Provider) onPause() {
	// pause may arrive after, or right before, the end of stream
	if p.State() == state.Complete {
		return
	}
	if p.el.CurrentTime() == p.el.Duration() {
		return
	}
	p.setState(state.Paused)
}

func (p *Provider) onEnded() {
	if s := p.State(); s == state.Idle || s == state.Complete {
		return
	}

	p.stopStallCheck()
	p.currentQuality = -1
	p.beforeCompleted = true

	p.emit(event.BeforeComplete, nil)

	// a before-complete handler may have detached us; completion then waits
	// for the next AttachMedia
	if !p.attached {
		log.Debugf("completion of %s deferred until reattach", p.locator)
		return
	}

	p.complete()
}

func (p *Provider) complete() {
	p.stopStallCheck()
	p.setState(state.Complete)
	p.beforeCompleted = false
	p.emit(event.Complete, nil)
}

func (p *Provider) onError() {
	locator := p.el.Src()
	if locator == "" {
		locator = p.locator
	}

	err := p.el.Error()
	log.WithFields(log.Fields{"provider": p.opts.Name, "locator": locator}).Errorf("error playing media: %v", err)

	p.emit(event.MediaError, event.ErrorData{
		Message: errorMessage,
		Locator: locator,
		Err:     err,
	})
}

func (p *Provider) onFullscreen(on bool) {
	p.fullscreen = on
	p.emit(event.FullscreenChange, event.FullscreenData{Fullscreen: on})
	if p.opts.Platform.Touch() {
		p.el.SetControls(false)
	}
}

func (p *Provider) setBuffered(buffered, position, duration float64) {
	if buffered == p.buffered && duration == p.duration {
		return
	}
	p.buffered = buffered
	p.emit(event.BufferChange, event.BufferData{
		BufferPercent: buffered * 100,
		Position:      position,
		Duration:      duration,
	})
}

func (p *Provider) currentBuffer() float64 {
	return media.BufferedFraction(p.el.Buffered(), p.el.Duration())
}

func (p *Provider) sendBufferFull() {
	if p.bufferFull {
		return
	}
	p.bufferFull = true
	p.emit(event.BufferFull, nil)
}
