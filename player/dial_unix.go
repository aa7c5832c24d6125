//go:build !windows

package player

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

func socketPath(name string) string {
	return filepath.Join(os.TempDir(), name+".sock")
}

func dial(ctx context.Context, path string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to mpv socket: %w", err)
	}
	return conn, nil
}

func removeSocket(path string) {
	_ = os.Remove(path)
}
