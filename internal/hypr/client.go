package hypr

import (
	"context"
)

// Client pairs the event stream of one instance with a controller for it.
type Client struct {
	events     *EventStream
	controller *Controller
}

// Connect opens the event socket of the instance at p. The command socket is
// dialed per request.
func Connect(ctx context.Context, p Paths) (*Client, error) {
	events, err := DialEvents(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Client{
		events:     events,
		controller: NewController(p),
	}, nil
}

// Controller returns the command side of the client.
func (c *Client) Controller() *Controller {
	return c.controller
}

// Events returns the raw line stream.
func (c *Client) Events() *EventStream {
	return c.events
}

// Next reads and decodes the next event. A *DecodeError leaves the stream
// usable; any other error ends it.
func (c *Client) Next(ctx context.Context) (Event, error) {
	line, err := c.events.NextLine(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(line)
}

// Invoke is shorthand for Controller().Invoke.
func (c *Client) Invoke(ctx context.Context, cmd Command) (string, error) {
	return c.controller.Invoke(ctx, cmd)
}

// Close releases the event socket.
func (c *Client) Close() error {
	return c.events.Close()
}
