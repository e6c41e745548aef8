package watch

import (
	"context"
	"fmt"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/bryanchriswhite/hyprwatch/internal/state"
	"golang.org/x/sync/errgroup"
)

// DefaultQueueSize is the capacity of the queue between decoding and the
// reducer.
const DefaultQueueSize = 1024

// LineSource yields raw event lines. *hypr.EventStream implements it.
type LineSource interface {
	NextLine(ctx context.Context) (string, error)
}

// Emitter receives a snapshot each time the state changes.
type Emitter interface {
	Emit(snap state.Snapshot) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(state.Snapshot) error

func (f EmitterFunc) Emit(snap state.Snapshot) error { return f(snap) }

// Watcher pumps decoded events from a LineSource through the reducer.
type Watcher struct {
	source    LineSource
	emitter   Emitter
	initial   state.State
	queueSize int
}

// New creates a watcher starting from initial. queueSize <= 0 selects
// DefaultQueueSize.
func New(source LineSource, emitter Emitter, initial state.State, queueSize int) *Watcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Watcher{
		source:    source,
		emitter:   emitter,
		initial:   initial,
		queueSize: queueSize,
	}
}

// Run emits the initial snapshot, then one snapshot per state change, in the
// order events arrived. Lines that fail to decode are logged and skipped. Run
// returns when the source fails, the emitter fails, or ctx is cancelled;
// events already queued when the source fails are still applied.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.WithComponent("watch")

	if err := w.emitter.Emit(w.initial.Snapshot()); err != nil {
		return fmt.Errorf("emit initial snapshot: %w", err)
	}

	queue := make(chan hypr.Event, w.queueSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for {
			line, err := w.source.NextLine(gctx)
			if err != nil {
				return fmt.Errorf("event stream: %w", err)
			}

			ev, err := hypr.Decode(line)
			if err != nil {
				log.Warn().Err(err).Str("line", line).Msg("Received event but could not decode")
				continue
			}

			select {
			case queue <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		s := w.initial
		for ev := range queue {
			next, changed := state.Apply(s, ev)
			if !changed {
				log.Trace().Str("event", ev.EventName()).Msg("Event left state unchanged")
				continue
			}
			s = next
			log.Debug().Str("event", ev.EventName()).Msg("State updated")
			if err := w.emitter.Emit(s.Snapshot()); err != nil {
				return fmt.Errorf("emit snapshot: %w", err)
			}
		}
		return nil
	})

	return g.Wait()
}
