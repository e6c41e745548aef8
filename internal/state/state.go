package state

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
)

// WorkspaceSet holds the ids of existing workspaces.
type WorkspaceSet map[uint32]struct{}

// NewWorkspaceSet builds a set from ids, dropping duplicates.
func NewWorkspaceSet(ids ...uint32) WorkspaceSet {
	s := make(WorkspaceSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s WorkspaceSet) Has(id uint32) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s WorkspaceSet) Sorted() []uint32 {
	return slices.Sorted(maps.Keys(s))
}

// State is the projection of the event stream handed to presentation.
type State struct {
	Workspaces        WorkspaceSet
	CurrentWorkspace  uint32
	CurrentAppName    string
	CurrentVolume     uint32
	CurrentBrightness uint32
}

// Snapshot is the serialized form of State.
type Snapshot struct {
	TotalWorkspaces   []uint32 `json:"total_workspaces"`
	CurrentWorkspace  uint32   `json:"current_workspace"`
	CurrentAppName    string   `json:"current_app_name"`
	CurrentVolume     uint32   `json:"current_volume"`
	CurrentBrightness uint32   `json:"current_brightness"`
}

// Snapshot copies s into its serialized form.
func (s State) Snapshot() Snapshot {
	total := s.Workspaces.Sorted()
	if total == nil {
		total = []uint32{}
	}
	return Snapshot{
		TotalWorkspaces:   total,
		CurrentWorkspace:  s.CurrentWorkspace,
		CurrentAppName:    s.CurrentAppName,
		CurrentVolume:     s.CurrentVolume,
		CurrentBrightness: s.CurrentBrightness,
	}
}

// AppName renders a window the way the initial state shows it.
func AppName(class, title string) string {
	return fmt.Sprintf("%s / %s", class, title)
}

// Apply folds one event into s. It never fails: events that do not affect the
// state, and workspace ids the state cannot hold, return s unchanged with
// changed false. s itself is not modified.
func Apply(s State, ev hypr.Event) (State, bool) {
	switch e := ev.(type) {
	case hypr.WorkspaceV2:
		return setCurrent(s, e.ID)
	case hypr.MoveWorkspaceV2:
		return setCurrent(s, e.ID)
	case hypr.ActiveWindow:
		if s.CurrentAppName == e.Title {
			return s, false
		}
		s.CurrentAppName = e.Title
		return s, true
	case hypr.CreateWorkspaceV2:
		id, ok := workspaceID(e.ID)
		if !ok || s.Workspaces.Has(id) {
			return s, false
		}
		s.Workspaces = clone(s.Workspaces)
		s.Workspaces[id] = struct{}{}
		return s, true
	case hypr.DestroyWorkspaceV2:
		id, ok := workspaceID(e.ID)
		if !ok || !s.Workspaces.Has(id) {
			return s, false
		}
		s.Workspaces = clone(s.Workspaces)
		delete(s.Workspaces, id)
		return s, true
	}
	return s, false
}

func setCurrent(s State, raw int) (State, bool) {
	id, ok := workspaceID(raw)
	if !ok || s.CurrentWorkspace == id {
		return s, false
	}
	s.CurrentWorkspace = id
	return s, true
}

// Special workspaces use negative ids.
func workspaceID(id int) (uint32, bool) {
	if id < 0 || uint64(id) > uint64(^uint32(0)) {
		return 0, false
	}
	return uint32(id), true
}

func clone(s WorkspaceSet) WorkspaceSet {
	out := make(WorkspaceSet, len(s)+1)
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
