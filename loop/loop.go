// Package loop runs closures on a single goroutine. It lets callers, media
// backends and timers share a provider without locks.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/steadyplay/steadyplay/scheduler"
)

// ErrStopped is returned when work is submitted to a loop that has stopped.
var ErrStopped = errors.New("loop stopped")

// Loop serializes work onto the goroutine running Run.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	stopped sync.Once
}

var _ scheduler.Scheduler = (*Loop)(nil)

// New returns a loop buffering up to backlog pending tasks.
func New(backlog int) *Loop {
	return &Loop{
		tasks: make(chan func(), backlog),
		done:  make(chan struct{}),
	}
}

// Run executes posted tasks until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopped.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues f. It blocks while the backlog is full and fails once the
// loop has stopped.
func (l *Loop) Post(f func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}

	select {
	case l.tasks <- f:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Call runs f on the loop and waits for its result.
func (l *Loop) Call(ctx context.Context, f func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- f() }); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

type timer struct {
	t *time.Timer

	// touched only on the loop goroutine
	stopped bool
	fired   bool
}

// Stop must be called on the loop goroutine. A stopped timer never runs,
// even if its callback was already queued.
func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}

// AfterFunc implements scheduler.Scheduler. f runs on the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, f func()) scheduler.Timer {
	t := &timer{}
	t.t = time.AfterFunc(d, func() {
		_ = l.Post(func() {
			if t.stopped {
				return
			}
			t.fired = true
			f()
		})
	})
	return t
}
