package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steadyplay/steadyplay/event"
)

// Feed carries provider notifications to the UI. Handle never blocks, so it
// is safe to subscribe from the provider goroutine.
type Feed struct {
	mu     sync.Mutex
	queue  []event.Event
	closed bool
	wake   chan struct{}
}

// NewFeed returns an open feed.
func NewFeed() *Feed {
	return &Feed{wake: make(chan struct{}, 1)}
}

// Handle queues e. It has the event.Handler signature.
func (f *Feed) Handle(e event.Event) {
	f.mu.Lock()
	if !f.closed {
		f.queue = append(f.queue, e)
	}
	f.mu.Unlock()
	f.signal()
}

// Close ends the feed once queued notifications are drained.
func (f *Feed) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.signal()
}

func (f *Feed) signal() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

type eventsMsg []event.Event

type feedClosedMsg struct{}

// next waits for the next batch of notifications.
func (f *Feed) next() tea.Cmd {
	return func() tea.Msg {
		for {
			f.mu.Lock()
			batch, closed := f.queue, f.closed
			f.queue = nil
			f.mu.Unlock()

			if len(batch) > 0 {
				return eventsMsg(batch)
			}
			if closed {
				return feedClosedMsg{}
			}
			<-f.wake
		}
	}
}
