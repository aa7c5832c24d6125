package provider

import (
	"github.com/steadyplay/steadyplay/layout"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/media"
)

// DetachMedia hands the element to the caller. Until AttachMedia the
// provider ignores the element and publishes nothing.
func (p *Provider) DetachMedia() media.Element {
	p.stopStallCheck()
	p.attached = false
	return p.el
}

// AttachMedia takes the element back. Pass seekable=false unless the
// element is known to still accept seeks. A completion deferred while
// detached is finalized here.
func (p *Provider) AttachMedia(seekable bool) {
	p.attached = true
	if !seekable {
		p.canSeek = false
	}

	// a seek interrupted by the borrower will never report back
	p.seeking = false
	p.el.SetLoop(false)

	if p.beforeCompleted {
		p.complete()
	}
}

// CheckComplete reports whether a completion is waiting for reattachment.
func (p *Provider) CheckComplete() bool {
	return p.beforeCompleted
}

// SetContainer places the element in c.
func (p *Provider) SetContainer(c layout.Container) {
	p.container = c
	c.Append(p.el)
}

// Container returns the container set by SetContainer.
func (p *Provider) Container() layout.Container {
	return p.container
}

// Remove silently clears the element's source and takes it out of its
// container.
func (p *Provider) Remove() {
	p.unload()
	p.stopStallCheck()
	p.currentQuality = -1

	if p.container != nil && p.container.Contains(p.el) {
		p.container.Remove(p.el)
	}
}

// SetVisibility shows or hides the container. Platforms that pause hidden
// elements keep it visible.
func (p *Provider) SetVisibility(visible bool) {
	if p.container == nil {
		return
	}
	if visible || p.opts.Platform.KeepVisible() {
		p.container.SetStyle(layout.Style{Visible: true, Opacity: 1})
		return
	}
	p.container.SetStyle(layout.Style{Visible: false, Opacity: 0})
}

// Resize fits the picture into width x height.
func (p *Provider) Resize(width, height int, mode layout.Mode) (layout.Box, bool) {
	return layout.Stretch(mode, width, height, p.el.VideoWidth(), p.el.VideoHeight())
}

// SetFullscreen asks the element to enter or leave fullscreen and reports
// the resulting fullscreen state.
func (p *Provider) SetFullscreen(on bool) bool {
	if !on {
		if err := p.el.ExitFullscreen(); err != nil {
			log.Warnf("exit fullscreen: %v", err)
		}
		return false
	}

	if err := p.el.EnterFullscreen(); err != nil {
		log.Debugf("element cannot go fullscreen: %v", err)
		return false
	}
	return p.Fullscreen()
}

// Fullscreen reports whether the element is fullscreen.
func (p *Provider) Fullscreen() bool {
	return p.fullscreen || p.el.DisplayingFullscreen()
}
