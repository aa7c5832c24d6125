package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/internal/ui"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/provider"
	"github.com/steadyplay/steadyplay/state"
	"github.com/steadyplay/steadyplay/util"
)

const volumeStep = 5

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progressC.Width = util.Max(msg.Width-4, 10)
		m.helpC.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case eventsMsg:
		cmds := []tea.Cmd{m.options.Feed.next()}
		for _, e := range msg {
			cmds = append(cmds, m.apply(e))
		}
		if m.completed && m.options.ExitOnComplete {
			cmds = append(cmds, tea.Quit)
		}
		return m, tea.Batch(cmds...)
	case feedClosedMsg:
		return m, tea.Quit
	}

	return m, m.notice.Update(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.forceQuit), key.Matches(msg, m.keymap.quit):
		m.do(func(p *provider.Provider) { p.Stop() })
		return tea.Quit
	case key.Matches(msg, m.keymap.playPause):
		m.do(func(p *provider.Provider) {
			var err error
			if p.State() == state.Playing {
				err = p.Pause()
			} else {
				err = p.Play()
			}
			if err != nil {
				log.Warnf("toggle playback: %v", err)
			}
		})
	case key.Matches(msg, m.keymap.seekBack):
		m.seekBy(-m.options.SeekStep)
	case key.Matches(msg, m.keymap.seekForward):
		m.seekBy(m.options.SeekStep)
	case key.Matches(msg, m.keymap.volumeUp):
		m.setVolume(m.volume + volumeStep)
	case key.Matches(msg, m.keymap.volumeDown):
		m.setVolume(m.volume - volumeStep)
	case key.Matches(msg, m.keymap.mute):
		muted := !m.muted
		m.do(func(p *provider.Provider) { p.Mute(muted) })
	case key.Matches(msg, m.keymap.nextQuality):
		return m.stepQuality(1)
	case key.Matches(msg, m.keymap.prevQuality):
		return m.stepQuality(-1)
	case key.Matches(msg, m.keymap.fullscreen):
		m.do(func(p *provider.Provider) { p.SetFullscreen(!p.Fullscreen()) })
	case key.Matches(msg, m.keymap.stop):
		m.do(func(p *provider.Provider) { p.Stop() })
	case key.Matches(msg, m.keymap.showHelp):
		m.helpC.ShowAll = !m.helpC.ShowAll
	}
	return nil
}

func (m *model) notify(text string, isError bool) tea.Cmd {
	return m.notice.Update(ui.NoticeMsg{Text: text, Error: isError})
}

func (m *model) do(f func(p *provider.Provider)) {
	if m.options.Do != nil {
		m.options.Do(f)
	}
}

func (m *model) seekBy(offset float64) {
	m.do(func(p *provider.Provider) {
		target := p.Position() + offset
		if d := p.Duration(); d > 0 {
			target = util.Min(target, d)
		}
		p.Seek(util.Max(target, 0))
	})
}

func (m *model) setVolume(volume int) {
	volume = util.Clamp(volume, 0, 100)
	m.do(func(p *provider.Provider) { p.Volume(float64(volume)) })
}

func (m *model) stepQuality(delta int) tea.Cmd {
	n := len(m.levels)
	if n < 2 {
		return m.notify("only one quality available", false)
	}

	next := ((m.current+delta)%n + n) % n
	m.do(func(p *provider.Provider) { p.SetCurrentQuality(next) })
	return nil
}

// apply folds a notification into the view.
func (m *model) apply(e event.Event) tea.Cmd {
	switch data := e.Data.(type) {
	case event.StateData:
		m.state = data.New
		if data.New == state.Loading {
			m.lastError = ""
		}
	case event.TimeData:
		m.position, m.duration = data.Position, data.Duration
	case event.BufferData:
		m.buffer = data.BufferPercent
	case event.MetaData:
		m.duration = data.Duration
	case event.LevelsData:
		changed := e.Type == event.LevelsChanged && data.CurrentQuality != m.current
		m.levels, m.current = data.Levels, data.CurrentQuality
		if changed && m.current >= 0 && m.current < len(m.levels) {
			return m.notify(fmt.Sprintf("quality %s", m.levels[m.current].Label), false)
		}
	case event.VolumeData:
		m.volume = data.Volume
	case event.MuteData:
		m.muted = data.Mute
	case event.MediaTypeData:
		m.mediaType = data.MediaType
	case event.SeekData:
		m.position = data.Offset
	case event.ErrorData:
		m.lastError = data.Message
		return m.notify(data.Message, true)
	case event.FullscreenData:
		if data.Fullscreen {
			return m.notify("fullscreen on", false)
		}
		return m.notify("fullscreen off", false)
	}

	if e.Type == event.Complete {
		m.completed = true
		m.position = m.duration
	}
	return nil
}
