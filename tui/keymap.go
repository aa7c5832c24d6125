// Package tui is the terminal view of a playing provider.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/steadyplay/steadyplay/color"
	"github.com/steadyplay/steadyplay/style"
)

type keymap struct {
	playPause,
	seekBack, seekForward,
	volumeUp, volumeDown, mute,
	nextQuality, prevQuality,
	fullscreen,
	stop, quit, forceQuit,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		playPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-10s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+10s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		nextQuality: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next quality"),
		),
		prevQuality: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous quality"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekForward, k.nextQuality, k.quit, k.showHelp}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.seekBack, k.seekForward, k.stop},
		{k.volumeUp, k.volumeDown, k.mute},
		{k.nextQuality, k.prevQuality, k.fullscreen},
		{k.quit, k.forceQuit, k.showHelp},
	}
}
