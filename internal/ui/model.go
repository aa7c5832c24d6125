// Package ui holds small reusable pieces of the terminal interface.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/style"
)

// NoticeDuration is how long a notice stays on screen.
const NoticeDuration = 3 * time.Second

// NoticeMsg shows a notice.
type NoticeMsg struct {
	Text  string
	Error bool
}

// clearMsg clears the notice with the same sequence number.
type clearMsg struct{ seq int }

// Model displays one transient notice at a time.
type Model struct {
	text  string
	error bool
	seq   int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}

// NotifyError returns a command that shows text as an error.
func NotifyError(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, Error: true} }
}

// Update handles notice messages. A newer notice is not cleared by the timer of an older one.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.seq++
		m.text, m.error = msg.Text, msg.Error
		seq := m.seq
		return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
			return clearMsg{seq: seq}
		})
	case clearMsg:
		if msg.seq == m.seq {
			m.text, m.error = "", false
		}
	}
	return nil
}

// Text returns the current notice.
func (m *Model) Text() string {
	return m.text
}

// View renders the notice, or nothing.
func (m *Model) View() string {
	if m.text == "" {
		return ""
	}
	if m.error {
		return style.Fg(color.Red)(m.text)
	}
	return style.Faint(m.text)
}
