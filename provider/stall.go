package provider

import (
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/state"
)

// armStallCheck replaces any pending stall check with a new one that fires
// after the stall delay. At most one check is pending at any time.
func (p *Provider) armStallCheck() {
	p.stopStallCheck()

	armed := p.position
	p.stallTimer = p.sched.AfterFunc(p.opts.StallDelay, func() {
		p.stallTimer = nil
		if p.el.CurrentTime() == armed {
			p.stalled()
		}
	})
}

func (p *Provider) stopStallCheck() {
	if p.stallTimer != nil {
		p.stallTimer.Stop()
		p.stallTimer = nil
	}
}

// stalled moves to Stalled unless something else explains the missing
// time progress.
func (p *Provider) stalled() {
	if !p.attached || p.misreportsStall {
		return
	}
	if p.el.Paused() || p.el.Ended() {
		return
	}
	// Loading and Error stay as they are
	if p.State() != state.Playing {
		return
	}
	if p.seeking {
		return
	}

	log.Debugf("no time progress for %s at %.3fs, stalled", p.opts.StallDelay, p.position)
	p.setState(state.Stalled)
}
