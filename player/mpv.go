// Package player drives an mpv process over its JSON IPC and exposes it as a
// media.Element.
package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/media"
)

// ErrNotRunning is returned for commands issued before Start or after Close.
var ErrNotRunning = errors.New("mpv is not running")

// errNotSeekable is returned by SetCurrentTime before a file is loaded.
var errNotSeekable = errors.New("nothing loaded to seek in")

const socketWaitDelay = 300 * time.Millisecond

// clickMessage is the script-message an input binding sends to report a click:
//
//	MBTN_LEFT script-message steadyplay-click
const clickMessage = constant.Steadyplay + "-click"

// observed lists the properties mirrored from mpv, by observer id.
var observed = []string{
	"time-pos",
	"duration",
	"pause",
	"seeking",
	"volume",
	"mute",
	"fullscreen",
	"demuxer-cache-state",
	"width",
	"height",
}

// Options configures the mpv process.
type Options struct {
	// Binary is the mpv executable. Defaults to "mpv".
	Binary string
	// ExtraArgs are appended to the command line.
	ExtraArgs []string
	// SocketWaitRetries bounds how often the IPC socket is polled on start.
	SocketWaitRetries int
}

// MPV is a media.Element backed by an mpv process.
//
// Events read from mpv are handed to post, which must run them on the
// goroutine that owns the element (see package loop). Every other method
// must be called on that goroutine too.
type MPV struct {
	opts Options
	post func(func()) error

	// HeadersFor returns the HTTP headers to send when loading locator.
	HeadersFor func(locator string) map[string]string

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	client     *client

	queueMu sync.Mutex
	queue   []message
	wake    chan struct{}

	title string
	src   string

	timePos    float64
	duration   float64
	paused     bool
	seeking    bool
	ended      bool
	volume     float64
	muted      bool
	fullscreen bool
	width      int
	height     int
	ranges     media.TimeRanges
	fileLoaded bool
	seekIssued bool
	lastErr    error

	listeners map[int]media.Listener
	nextID    int
}

var _ media.Element = (*MPV)(nil)

// NewMPV returns an element for a not yet started mpv process.
func NewMPV(opts Options, post func(func()) error) *MPV {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}
	if opts.SocketWaitRetries <= 0 {
		opts.SocketWaitRetries = 10
	}

	exited := make(chan struct{})
	close(exited)

	return &MPV{
		opts:      opts,
		post:      post,
		exited:    exited,
		paused:    true,
		volume:    1,
		wake:      make(chan struct{}, 1),
		listeners: make(map[int]media.Listener),
	}
}

// SetTitle sets the window title used for following loads.
func (m *MPV) SetTitle(title string) {
	m.title = sanitizeTitle(title)
}

// Start launches an idle mpv and connects to its IPC socket.
func (m *MPV) Start(ctx context.Context) error {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = socketPath(fmt.Sprintf("%s-%x", constant.Steadyplay, randomBytes))

	// user mpv.conf is respected: no --vo, --profile or --hwdec here
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + m.socketPath,
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=no",
	}
	args = append(args, m.opts.ExtraArgs...)

	m.cmd = exec.CommandContext(ctx, m.opts.Binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.opts.Binary, err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(ctx); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < m.opts.SocketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		if err := m.connect(ctx, m.socketPath); err == nil {
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, m.opts.SocketWaitRetries)
}

// connect attaches to an IPC socket and registers the property observers.
func (m *MPV) connect(ctx context.Context, path string) error {
	conn, err := dial(ctx, path)
	if err != nil {
		return err
	}

	m.client = newClient(conn, m.enqueue)
	go m.forward()

	for i, name := range observed {
		if _, err := m.client.send("observe_property", i+1, name); err != nil {
			_ = m.client.Close()
			m.client = nil
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	log.Infof("connected to mpv on %s", path)
	return nil
}

// enqueue runs on the IPC read goroutine and must never block on the owner.
func (m *MPV) enqueue(msg message) {
	m.queueMu.Lock()
	m.queue = append(m.queue, msg)
	m.queueMu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// forward hands queued events to the owning goroutine in arrival order.
func (m *MPV) forward() {
	c := m.client
	for {
		select {
		case <-c.Done():
			return
		case <-m.wake:
		}

		m.queueMu.Lock()
		batch := m.queue
		m.queue = nil
		m.queueMu.Unlock()

		for _, msg := range batch {
			msg := msg
			if err := m.post(func() { m.apply(msg) }); err != nil {
				return
			}
		}
	}
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Close asks mpv to quit, killing it if it does not.
func (m *MPV) Close() error {
	if m.client == nil {
		return nil
	}

	_, _ = m.client.send("quit")
	_ = m.client.Close()
	m.client = nil

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	removeSocket(m.socketPath)
	return nil
}

func (m *MPV) command(args ...any) error {
	if m.client == nil {
		return ErrNotRunning
	}
	_, err := m.client.send(args...)
	return err
}

func (m *MPV) set(property string, value any) {
	if err := m.command("set_property", property, value); err != nil {
		log.Warnf("set %s: %v", property, err)
	}
}

func (m *MPV) CurrentTime() float64 { return m.timePos }
func (m *MPV) Duration() float64    { return m.duration }

func (m *MPV) SetCurrentTime(seconds float64) error {
	if !m.fileLoaded {
		return errNotSeekable
	}
	if err := m.command("seek", seconds, "absolute"); err != nil {
		return err
	}
	m.seekIssued = true
	m.timePos = seconds
	return nil
}

func (m *MPV) Volume() float64 { return m.volume }

func (m *MPV) SetVolume(volume float64) {
	m.set("volume", volume*100)
}

func (m *MPV) Muted() bool { return m.muted }

func (m *MPV) SetMuted(muted bool) {
	m.set("mute", muted)
}

func (m *MPV) Src() string { return m.src }

func (m *MPV) SetSrc(locator string) {
	m.src = locator
}

func (m *MPV) ClearSrc() {
	m.src = ""
}

// SetPreload maps the preload hint onto mpv's cache switch.
func (m *MPV) SetPreload(preload string) {
	switch preload {
	case "none":
		m.set("cache", "no")
	case "auto":
		m.set("cache", "auto")
	}
}

func (m *MPV) Play() error {
	return m.command("set_property", "pause", false)
}

func (m *MPV) Pause() error {
	return m.command("set_property", "pause", true)
}

// Load starts loading the current source paused, or unloads when there is none.
func (m *MPV) Load() error {
	m.ended = false
	m.fileLoaded = false
	m.timePos = 0
	m.ranges = nil

	if m.src == "" {
		return m.command("stop")
	}

	target, err := sanitizeMediaTarget(m.src)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	var headers map[string]string
	if m.HeadersFor != nil {
		headers = m.HeadersFor(m.src)
	}
	if err := m.command("set_property", "http-header-fields", headerFields(headers)); err != nil {
		return err
	}

	if m.title != "" {
		m.set("force-media-title", m.title)
	}

	// loading never implies playback; mirror first so mpv's echo is no change
	m.paused = true
	if err := m.command("set_property", "pause", true); err != nil {
		return err
	}

	return m.command("loadfile", target, "replace")
}

func (m *MPV) Buffered() media.TimeRanges { return m.ranges }
func (m *MPV) Paused() bool               { return m.paused }
func (m *MPV) Ended() bool                { return m.ended }

func (m *MPV) SetLoop(loop bool) {
	m.set("loop-file", lo.Ternary(loop, "inf", "no"))
}

func (m *MPV) VideoWidth() int  { return m.width }
func (m *MPV) VideoHeight() int { return m.height }

func (m *MPV) EnterFullscreen() error {
	return m.command("set_property", "fullscreen", true)
}

func (m *MPV) ExitFullscreen() error {
	return m.command("set_property", "fullscreen", false)
}

func (m *MPV) DisplayingFullscreen() bool { return m.fullscreen }

// SetControls toggles the on-screen controller.
func (m *MPV) SetControls(visible bool) {
	if err := m.command("script-message", "osc-visibility", lo.Ternary(visible, "always", "never"), "no-osd"); err != nil {
		log.Warnf("osc visibility: %v", err)
	}
}

func (m *MPV) Error() error { return m.lastErr }

func (m *MPV) Subscribe(l media.Listener) func() {
	m.nextID++
	id := m.nextID
	m.listeners[id] = l
	return func() { delete(m.listeners, id) }
}

func (m *MPV) fire(e media.Event) {
	ids := lo.Keys(m.listeners)
	sort.Ints(ids)
	for _, id := range ids {
		if l, ok := m.listeners[id]; ok {
			l(e)
		}
	}
}

func headerFields(headers map[string]string) []string {
	fields := make([]string, 0, len(headers))
	for k, v := range headers {
		// mpv splits the list on commas
		fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	sort.Strings(fields)
	return fields
}

// sanitizeMediaTarget validates that a locator is safe to hand to mpv.
// Locators may come from resolver scripts, so flags are rejected.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty locator")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in locator")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("locator must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
