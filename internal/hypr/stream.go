package hypr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrStreamClosed is returned by NextLine after Close.
var ErrStreamClosed = errors.New("event stream closed")

// EventStream reads newline-delimited lines from the event socket. The
// stream cannot be restarted: the first read error ends it and is returned
// by every later call.
type EventStream struct {
	conn net.Conn
	r    *bufio.Reader

	mu  sync.Mutex
	err error
}

// DialEvents connects to the event socket of the instance at p.
func DialEvents(ctx context.Context, p Paths) (*EventStream, error) {
	conn, err := dialUnix(ctx, p.EventSocket())
	if err != nil {
		return nil, err
	}
	return NewEventStream(conn), nil
}

// NewEventStream wraps an established connection.
func NewEventStream(conn net.Conn) *EventStream {
	return &EventStream{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// NextLine blocks until a full line is available and returns it without the
// trailing newline. Cancelling ctx aborts the read and ends the stream.
func (s *EventStream) NextLine(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	if err := ctx.Err(); err != nil {
		s.err = err
		return "", err
	}

	stop := context.AfterFunc(ctx, func() {
		s.conn.SetReadDeadline(time.Now())
	})
	line, err := s.r.ReadString('\n')
	stop()

	if err != nil {
		switch {
		case ctx.Err() != nil:
			err = ctx.Err()
		case errors.Is(err, io.EOF):
			err = fmt.Errorf("event socket closed: %w", err)
		default:
			err = fmt.Errorf("read event socket: %w", err)
		}
		s.err = err
		return "", err
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// Close releases the connection. NextLine fails afterwards.
func (s *EventStream) Close() error {
	err := s.conn.Close()
	s.mu.Lock()
	if s.err == nil {
		s.err = ErrStreamClosed
	}
	s.mu.Unlock()
	return err
}
