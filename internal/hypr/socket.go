package hypr

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
)

const (
	commandSocketName = ".socket.sock"
	eventSocketName   = ".socket2.sock"
)

// Paths locates the sockets of one compositor instance.
type Paths struct {
	RuntimeDir string
	Signature  string
}

func (p Paths) dir() string {
	return filepath.Join(p.RuntimeDir, "hypr", p.Signature)
}

// CommandSocket is the request/response socket.
func (p Paths) CommandSocket() string {
	return filepath.Join(p.dir(), commandSocketName)
}

// EventSocket is the event broadcast socket.
func (p Paths) EventSocket() string {
	return filepath.Join(p.dir(), eventSocketName)
}

func dialUnix(ctx context.Context, path string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	return conn, nil
}
