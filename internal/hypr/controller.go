package hypr

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bryanchriswhite/hyprwatch/internal/logger"
)

// MaxResponseBytes bounds a single command response. Longer responses are
// truncated to this many bytes without error.
const MaxResponseBytes = 8192

// Controller sends commands to the command socket. Each Invoke uses its own
// connection, so a Controller is safe for concurrent use.
type Controller struct {
	paths   Paths
	timeout time.Duration
}

// NewController creates a controller for the instance at p.
func NewController(p Paths) *Controller {
	return &Controller{paths: p}
}

// SetTimeout bounds each Invoke. Zero disables the bound.
func (c *Controller) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Invoke writes cmd to a fresh connection and returns the response, read
// until the compositor closes the connection or MaxResponseBytes arrive.
func (c *Controller) Invoke(ctx context.Context, cmd Command) (string, error) {
	log := logger.WithComponent("hypr")
	wire := Encode(cmd)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log.Debug().Msgf(">> hyprctl %s", wire)

	conn, err := dialUnix(ctx, c.paths.CommandSocket())
	if err != nil {
		return "", err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := io.WriteString(conn, wire); err != nil {
		return "", c.ioError(ctx, "write command", err)
	}

	buf, err := io.ReadAll(io.LimitReader(conn, MaxResponseBytes))
	if err != nil {
		return "", c.ioError(ctx, "read response", err)
	}

	log.Debug().
		Int("response_size", len(buf)).
		Msgf("<< hyprctl %s", wire)

	if !utf8.Valid(buf) {
		return strings.ToValidUTF8(string(buf), string(utf8.RuneError)), nil
	}
	return string(buf), nil
}

func (c *Controller) ioError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return fmt.Errorf("%s: %w", op, err)
}
