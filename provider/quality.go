package provider

import (
	"fmt"

	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
	"github.com/steadyplay/steadyplay/util"
)

// Init binds item's initial level to the element without starting a load.
func (p *Provider) Init(item *source.Item) error {
	if !p.attached {
		return nil
	}
	if err := validate(item); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	p.levels = item.Sources
	p.currentQuality = p.pickInitialQuality(item.Sources)
	p.sendMediaType()

	p.position = item.StartTime.OrEmpty()
	p.duration = item.Duration.OrEmpty()
	p.bind(p.levels[p.currentQuality])

	return nil
}

// Load replaces the level list with item's, picks the initial level and
// loads it.
func (p *Provider) Load(item *source.Item) error {
	if !p.attached {
		return nil
	}
	if err := validate(item); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	p.levels = item.Sources
	p.currentQuality = p.pickInitialQuality(item.Sources)
	p.emit(event.Levels, event.LevelsData{
		Levels:         source.PublicLevels(p.levels),
		CurrentQuality: p.currentQuality,
	})
	p.sendMediaType()

	// with gesture-gated playback a load does not mean playback is coming
	if !p.opts.Platform.AutoplayRestricted() {
		p.setState(state.Loading)
	}

	p.completeLoad(item.StartTime.OrEmpty(), item.Duration.OrEmpty())
	return nil
}

func validate(item *source.Item) error {
	if item == nil || len(item.Sources) == 0 {
		return ErrNoSources
	}
	return item.Validate()
}

// pickInitialQuality keeps the current index as fallback, lets the last
// default level override it and returns the first level whose label matches
// the preferred one outright.
func (p *Provider) pickInitialQuality(levels []source.Level) int {
	current := util.Clamp(p.currentQuality, 0, len(levels)-1)
	label := p.opts.QualityLabel

	for i, l := range levels {
		if l.Default {
			current = i
		}
		if label != "" && l.Label == label {
			return i
		}
	}
	return current
}

// completeLoad binds the current level. A new locator, or a platform that
// cannot replay without it, gets a full reload; the same locator is resumed
// in place, restarting silently when asked to start from 0.
func (p *Provider) completeLoad(startTime, duration float64) {
	level := p.levels[p.currentQuality]

	p.delayed = delayedSeek{}
	p.stopStallCheck()

	if p.el.Src() != level.File || p.opts.Platform.ForceReload() {
		p.duration = duration
		p.bind(level)
		if err := p.el.Load(); err != nil {
			log.Warnf("load %s: %v", level.File, err)
		}
	} else {
		if startTime == 0 && p.el.CurrentTime() != 0 {
			p.delayed = delayedSeek{mode: seekSilent}
			p.Seek(0)
		}
		if err := p.el.Play(); err != nil {
			log.Warnf("play %s: %v", level.File, err)
		}
	}

	p.position = p.el.CurrentTime()

	if p.opts.Platform.AutoplayRestricted() {
		p.sendBufferFull()
		// still paused means the element waits for a user gesture
		if !p.el.Paused() && p.State() != state.Playing {
			p.setState(state.Loading)
		}
	}

	// native controls would stay hidden when leaving fullscreen otherwise
	if p.opts.Platform.IOS && p.Fullscreen() {
		p.el.SetControls(true)
	}

	if startTime > 0 {
		p.Seek(startTime)
	}
}

// bind points the element at level.
func (p *Provider) bind(level source.Level) {
	p.canSeek = false
	p.bufferFull = false
	p.misreportsStall = p.opts.Platform.MisreportsStall(level.Type, level.AndroidHLS)
	p.locator = level.File

	p.el.SetSrc(level.File)
	if level.Preload != "" {
		p.el.SetPreload(level.Preload)
	}
}

func (p *Provider) sendMediaType() {
	p.emit(event.MediaType, event.MediaTypeData{MediaType: source.MediaTypeOf(p.levels)})
}

// SetCurrentQuality switches to level index, reloading in place at the
// current position. Unknown or unchanged indices are ignored.
func (p *Provider) SetCurrentQuality(index int) {
	if !p.attached || index == p.currentQuality {
		return
	}
	if index < 0 || index >= len(p.levels) {
		return
	}

	p.currentQuality = index
	p.emit(event.LevelsChanged, event.LevelsData{
		Levels:         source.PublicLevels(p.levels),
		CurrentQuality: index,
	})

	label := p.levels[index].Label
	p.opts.QualityLabel = label
	if p.opts.OnQualityLabel != nil {
		p.opts.OnQualityLabel(label)
	}

	position := p.el.CurrentTime()
	duration := p.el.Duration()
	if !(duration > 0) {
		duration = p.duration
	}

	p.setState(state.Loading)
	p.completeLoad(position, duration)
}

// CurrentQuality returns the active level index, or -1 when none is bound.
func (p *Provider) CurrentQuality() int {
	return p.currentQuality
}

// QualityLevels returns the public view of the level list.
func (p *Provider) QualityLevels() []source.PublicLevel {
	return source.PublicLevels(p.levels)
}
