package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/steadyplay/steadyplay/internal/ui"
	"github.com/steadyplay/steadyplay/provider"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
)

// Dispatch runs f on the goroutine that owns the provider.
type Dispatch func(f func(p *provider.Provider))

// Options configures the watch view.
type Options struct {
	Title string
	Feed  *Feed
	Do    Dispatch
	// SeekStep is the relative seek in seconds. Defaults to 10.
	SeekStep float64
	// ExitOnComplete quits once playback completes.
	ExitOnComplete bool
}

type model struct {
	options *Options
	keymap  *keymap

	progressC progress.Model
	helpC     help.Model
	notice    ui.Model

	state     state.State
	position  float64
	duration  float64
	buffer    float64
	volume    int
	muted     bool
	levels    []source.PublicLevel
	current   int
	mediaType source.MediaType
	width     int
	height    int
	lastError string
	completed bool
}

func newModel(options *Options) *model {
	if options.SeekStep <= 0 {
		options.SeekStep = 10
	}

	return &model{
		options:   options,
		keymap:    newKeymap(),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:     help.New(),
		volume:    100,
		current:   -1,
		width:     80,
	}
}

func (m *model) Init() tea.Cmd {
	return m.options.Feed.next()
}

// Run shows the watch view until the user quits or the feed closes.
func Run(options *Options) error {
	_, err := tea.NewProgram(newModel(options), tea.WithAltScreen()).Run()
	return err
}
