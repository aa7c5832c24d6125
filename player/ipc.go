package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/steadyplay/steadyplay/log"
)

const commandTimeout = time.Second

// errClosed is returned for commands pending when the connection drops.
var errClosed = errors.New("ipc connection closed")

// message is any JSON line mpv writes: a command reply (request_id set) or
// an event (event set).
type message struct {
	Event     string          `json:"event,omitempty"`
	ID        int             `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID int             `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	FileError string          `json:"file_error,omitempty"`
	Args      []string        `json:"args,omitempty"`
}

type request struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// client multiplexes commands and events over one IPC connection. mpv only
// reports observed properties to the connection that registered them, so
// everything goes through the same socket.
type client struct {
	conn    net.Conn
	onEvent func(message)

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int
	pending map[int]chan message

	closed chan struct{}
}

func newClient(conn net.Conn, onEvent func(message)) *client {
	c := &client{
		conn:    conn,
		onEvent: onEvent,
		pending: make(map[int]chan message),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// send issues a command and waits for its reply.
func (c *client) send(args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	reply := make(chan message, 1)
	c.pending[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	c.writeMu.Lock()
	_, err = c.conn.Write(append(payload, '\n'))
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	select {
	case msg := <-reply:
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv %v: %s", args[0], msg.Error)
		}
		return msg.Data, nil
	case <-c.closed:
		return nil, errClosed
	case <-time.After(commandTimeout):
		return nil, fmt.Errorf("mpv %v: no reply after %s", args[0], commandTimeout)
	}
}

func (c *client) readLoop() {
	defer close(c.closed)

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			log.Tracef("skipping unparseable ipc line: %v", err)
			continue
		}

		if msg.Event != "" {
			c.onEvent(msg)
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[msg.RequestID]
		c.mu.Unlock()
		if ok {
			reply <- msg
		}
	}

	if err := scanner.Err(); err != nil {
		log.Warnf("ipc read: %v", err)
	}
}

// Close drops the connection.
func (c *client) Close() error {
	return c.conn.Close()
}

// Done is closed once the connection is gone.
func (c *client) Done() <-chan struct{} {
	return c.closed
}
