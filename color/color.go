// Package color names the terminal colors used across the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New returns the lipgloss color for an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

var (
	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

// Orange marks the active quality level.
var Orange = New("#ffb703")
