package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/state"
)

// Querier answers the info queries needed to build the initial state.
// *hypr.Controller implements it.
type Querier interface {
	Workspaces(ctx context.Context) ([]hypr.WorkspaceInfo, error)
	ActiveWorkspace(ctx context.Context) (*hypr.WorkspaceInfo, error)
	ActiveWindow(ctx context.Context) (*hypr.WindowInfo, error)
}

// Seed builds the starting state from live queries. Special workspaces
// (negative ids) are left out of the workspace set.
func Seed(ctx context.Context, q Querier) (state.State, error) {
	workspaces, err := q.Workspaces(ctx)
	if err != nil {
		return state.State{}, fmt.Errorf("query workspaces: %w", err)
	}
	active, err := q.ActiveWorkspace(ctx)
	if err != nil {
		return state.State{}, fmt.Errorf("query active workspace: %w", err)
	}
	win, err := q.ActiveWindow(ctx)
	if err != nil {
		return state.State{}, fmt.Errorf("query active window: %w", err)
	}

	s := state.State{Workspaces: state.NewWorkspaceSet()}
	for _, ws := range workspaces {
		if ws.ID >= 0 {
			s.Workspaces[uint32(ws.ID)] = struct{}{}
		}
	}
	if active.ID >= 0 {
		s.CurrentWorkspace = uint32(active.ID)
	}
	if win.Class != "" || win.Title != "" {
		s.CurrentAppName = state.AppName(win.Class, win.Title)
	}
	return s, nil
}

// Source is a LineSource that owns a connection.
type Source interface {
	LineSource
	io.Closer
}

// Open connects the event source and then seeds the state. Events raised
// while the seed queries run wait in the source and are applied on top of
// the seed. The source is closed if seeding fails.
func Open(ctx context.Context, dial func(context.Context) (Source, error), q Querier) (Source, state.State, error) {
	src, err := dial(ctx)
	if err != nil {
		return nil, state.State{}, err
	}
	initial, err := Seed(ctx, q)
	if err != nil {
		src.Close()
		return nil, state.State{}, fmt.Errorf("failed to seed state: %w", err)
	}
	return src, initial, nil
}

// JSONEmitter writes each snapshot as one line of JSON.
type JSONEmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{enc: json.NewEncoder(w)}
}

func (e *JSONEmitter) Emit(snap state.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(snap)
}

// Multi fans a snapshot out to several emitters, stopping at the first error.
type Multi []Emitter

func (m Multi) Emit(snap state.Snapshot) error {
	for _, e := range m {
		if err := e.Emit(snap); err != nil {
			return err
		}
	}
	return nil
}
