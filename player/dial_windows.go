//go:build windows

package player

import (
	"context"
	"fmt"
	"net"
	"time"

	"gopkg.in/natefinch/npipe.v2"
)

func socketPath(name string) string {
	return `\\.\pipe\` + name
}

func dial(ctx context.Context, path string) (net.Conn, error) {
	timeout := time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	conn, err := npipe.DialTimeout(path, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to mpv pipe: %w", err)
	}
	return conn, nil
}

func removeSocket(string) {}
