// Package style holds the lipgloss helpers shared by the CLI and the watch view.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/steadyplay/steadyplay/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders strings in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders the title bar of the watch view.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// Box frames a notice with a rounded border in the given color.
func Box(border lipgloss.Color) lipgloss.Style {
	return New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Margin(1, 0)
}
