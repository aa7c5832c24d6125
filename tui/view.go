package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/icon"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
	"github.com/steadyplay/steadyplay/style"
	"github.com/steadyplay/steadyplay/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (m *model) View() string {
	lines := []string{
		m.viewTitle(),
		"",
		m.progressC.ViewAs(m.fraction()),
		m.viewStatus(),
		"",
		m.viewLevels(),
	}

	if notice := m.notice.View(); notice != "" {
		lines = append(lines, "", notice)
	}

	lines = append(lines, "", m.helpC.View(m.keymap))
	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) fraction() float64 {
	if m.duration <= 0 {
		return 0
	}
	return util.Clamp(m.position/m.duration, 0, 1)
}

func (m *model) viewTitle() string {
	title := m.options.Title
	if m.mediaType == source.Audio {
		title += " " + style.Faint("(audio)")
	}

	badge := m.viewState()
	room := util.Max(m.width-lipgloss.Width(badge)-8, 10)
	return style.Title(truncate.StringWithTail(title, uint(room), "…")) + " " + badge
}

func (m *model) viewState() string {
	switch m.state {
	case state.Playing:
		return icon.Get(icon.Play) + " " + style.Fg(color.Green)(m.state.String())
	case state.Paused:
		return icon.Get(icon.Pause) + " " + style.Fg(color.Yellow)(m.state.String())
	case state.Loading, state.Stalled:
		return icon.Get(icon.Stall) + " " + style.Fg(color.Yellow)(m.state.String())
	case state.Complete:
		return icon.Get(icon.Complete) + " " + style.Fg(color.Cyan)(m.state.String())
	case state.Error:
		return icon.Get(icon.Fail) + " " + style.Fg(color.Red)(m.state.String())
	default:
		return style.Faint(m.state.String())
	}
}

func (m *model) viewStatus() string {
	parts := []string{
		fmt.Sprintf("%s / %s", util.FormatSeconds(m.position), util.FormatSeconds(m.duration)),
		style.Faint(fmt.Sprintf("buffered %.0f%%", m.buffer)),
	}

	volume := fmt.Sprintf("vol %d", m.volume)
	if m.muted {
		volume = style.Fg(color.Red)("muted")
	}
	parts = append(parts, volume)

	if m.lastError != "" {
		parts = append(parts, style.Fg(color.Red)(m.lastError))
	}
	return strings.Join(parts, "  ")
}

func (m *model) viewLevels() string {
	if len(m.levels) == 0 {
		return style.Faint("no quality levels")
	}

	labels := make([]string, len(m.levels))
	for i, l := range m.levels {
		if i == m.current {
			labels[i] = style.Fg(color.Orange)(icon.Get(icon.Quality) + " " + l.Label)
		} else {
			labels[i] = style.Faint(l.Label)
		}
	}
	return strings.Join(labels, "  ")
}
