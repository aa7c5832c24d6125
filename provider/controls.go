package provider

import (
	"fmt"

	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/state"
	"github.com/steadyplay/steadyplay/util"
)

// Play starts playback. While a seek is in flight the provider reports
// Loading and plays once the seek completes.
func (p *Provider) Play() error {
	if !p.attached {
		return nil
	}

	if p.seeking {
		p.setState(state.Loading)
		if p.playOnSeek == nil {
			p.playOnSeek = p.events.Once(event.Seeked, func(event.Event) {
				p.playOnSeek = nil
				if err := p.Play(); err != nil {
					log.Warn(err)
				}
			})
		}
		return nil
	}

	if err := p.el.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// Pause pauses playback.
func (p *Provider) Pause() error {
	if !p.attached {
		return nil
	}

	p.stopStallCheck()
	if err := p.el.Pause(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	p.setState(state.Paused)
	return nil
}

// Stop releases the bound level and returns to Idle.
func (p *Provider) Stop() {
	p.stopStallCheck()
	if !p.attached {
		return
	}

	p.unload()
	if p.opts.Platform.PauseOnStop() {
		// some engines keep playing the old stream after the source is cleared
		if err := p.el.Pause(); err != nil {
			log.Warnf("pause on stop: %v", err)
		}
	}

	p.currentQuality = -1
	p.setState(state.Idle)
}

func (p *Provider) unload() {
	p.el.ClearSrc()
	if p.opts.Platform.ReloadOnStop() {
		if err := p.el.Load(); err != nil {
			log.Warnf("reload after clearing source: %v", err)
		}
	}
}

// Volume sets the volume from a 0-100 scale.
func (p *Provider) Volume(volume float64) {
	if !p.attached {
		return
	}
	p.el.SetVolume(util.Clamp(volume/100, 0, 1))
}

// Mute mutes or unmutes the element.
func (p *Provider) Mute(muted bool) {
	if !p.attached {
		return
	}
	p.el.SetMuted(muted)
}
