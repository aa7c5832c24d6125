package provider

import (
	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/log"
)

type seekMode int

const (
	seekNone seekMode = iota
	// seekSilent marks an internal restart that must not be announced.
	seekSilent
	// seekPending holds a target to retry once the duration exceeds it.
	seekPending
)

type delayedSeek struct {
	mode   seekMode
	target float64
}

// Seek moves playback to position seconds. Before the element can seek, or
// when it refuses to, the target is kept and retried once the duration is
// known to exceed it.
func (p *Provider) Seek(position float64) {
	if !p.attached {
		return
	}

	if p.delayed.mode == seekNone {
		p.emit(event.Seek, event.SeekData{Position: p.el.CurrentTime(), Offset: position})
	}

	if !p.canSeek {
		p.deferSeek(position)
		return
	}

	p.delayed = delayedSeek{}
	p.seeking = true
	if err := p.el.SetCurrentTime(position); err != nil {
		log.Debugf("seek to %.3fs refused: %v", position, err)
		p.seeking = false
		p.deferSeek(position)
	}
}

func (p *Provider) deferSeek(position float64) {
	log.Debugf("deferring seek to %.3fs", position)
	p.delayed = delayedSeek{mode: seekPending, target: position}
}

// setDuration records d and retries a deferred seek it makes reachable.
func (p *Provider) setDuration(d float64) {
	p.duration = d
	if p.delayed.mode == seekPending && d > p.delayed.target {
		p.Seek(p.delayed.target)
	}
}
