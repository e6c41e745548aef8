package hypr

// Event is one decoded line from the event socket. The set of implementations
// is closed: only this package can add variants.
type Event interface {
	// EventName returns the wire name the event was decoded from.
	EventName() string
	event()
}

// Workspace is emitted when the active workspace changes (v1 shape).
type Workspace struct {
	Name string
}

// WorkspaceV2 is emitted when the active workspace changes.
type WorkspaceV2 struct {
	ID   int
	Name string
}

// FocusedMon is emitted when monitor focus changes.
type FocusedMon struct {
	Monitor   string
	Workspace string
}

// FocusedMonV2 is FocusedMon carrying the workspace id.
type FocusedMonV2 struct {
	Monitor     string
	WorkspaceID int
}

// ActiveWindow is emitted when the focused window changes.
type ActiveWindow struct {
	Class string
	Title string
}

// ActiveWindowV2 carries the address of the newly focused window.
type ActiveWindowV2 struct {
	Address string
}

// Fullscreen is emitted when the fullscreen state of the active window changes.
type Fullscreen struct {
	Enabled bool
}

type MonitorRemoved struct {
	Name string
}

type MonitorAdded struct {
	Name string
}

type MonitorAddedV2 struct {
	ID          int
	Name        string
	Description string
}

type CreateWorkspace struct {
	Name string
}

type CreateWorkspaceV2 struct {
	ID   int
	Name string
}

type DestroyWorkspace struct {
	Name string
}

type DestroyWorkspaceV2 struct {
	ID   int
	Name string
}

// MoveWorkspace is emitted when a workspace moves to another monitor.
type MoveWorkspace struct {
	Name    string
	Monitor string
}

type MoveWorkspaceV2 struct {
	ID      int
	Name    string
	Monitor string
}

type RenameWorkspace struct {
	ID      int
	NewName string
}

// ActiveSpecial is emitted when a special workspace is toggled on a monitor.
// Workspace is empty when the special workspace was closed.
type ActiveSpecial struct {
	Workspace string
	Monitor   string
}

// ActiveLayout is emitted when a keyboard switches layout.
type ActiveLayout struct {
	Keyboard string
	Layout   string
}

type OpenWindow struct {
	Address   string
	Workspace string
	Class     string
	Title     string
}

type CloseWindow struct {
	Address string
}

type MoveWindow struct {
	Address   string
	Workspace string
}

type MoveWindowV2 struct {
	Address     string
	WorkspaceID int
	Workspace   string
}

// OpenLayer is emitted when a layer surface is mapped.
type OpenLayer struct {
	Namespace string
}

type CloseLayer struct {
	Namespace string
}

// Submap is emitted on keybind submap changes. Name is empty on reset.
type Submap struct {
	Name string
}

type ChangeFloatingMode struct {
	Address  string
	Floating bool
}

type Urgent struct {
	Address string
}

type Minimize struct {
	Address   string
	Minimized bool
}

// Screencast reports whether screen sharing started. Owner is 0 for a
// monitor share and 1 for a window share.
type Screencast struct {
	Active bool
	Owner  uint8
}

type WindowTitle struct {
	Address string
}

type WindowTitleV2 struct {
	Address string
	Title   string
}

// ToggleGroup is emitted when a group is created (Open) or destroyed.
// Handles lists the addresses of the windows in the group.
type ToggleGroup struct {
	Open    bool
	Handles []string
}

type MoveIntoGroup struct {
	Address string
}

type MoveOutOfGroup struct {
	Address string
}

type IgnoreGroupLock struct {
	Enabled bool
}

type LockGroups struct {
	Locked bool
}

// ConfigReloaded is emitted after the compositor re-reads its config.
type ConfigReloaded struct{}

type Pin struct {
	Address string
	Pinned  bool
}

func (Workspace) EventName() string          { return "workspace" }
func (WorkspaceV2) EventName() string        { return "workspacev2" }
func (FocusedMon) EventName() string         { return "focusedmon" }
func (FocusedMonV2) EventName() string       { return "focusedmonv2" }
func (ActiveWindow) EventName() string       { return "activewindow" }
func (ActiveWindowV2) EventName() string     { return "activewindowv2" }
func (Fullscreen) EventName() string         { return "fullscreen" }
func (MonitorRemoved) EventName() string     { return "monitorremoved" }
func (MonitorAdded) EventName() string       { return "monitoradded" }
func (MonitorAddedV2) EventName() string     { return "monitoraddedv2" }
func (CreateWorkspace) EventName() string    { return "createworkspace" }
func (CreateWorkspaceV2) EventName() string  { return "createworkspacev2" }
func (DestroyWorkspace) EventName() string   { return "destroyworkspace" }
func (DestroyWorkspaceV2) EventName() string { return "destroyworkspacev2" }
func (MoveWorkspace) EventName() string      { return "moveworkspace" }
func (MoveWorkspaceV2) EventName() string    { return "moveworkspacev2" }
func (RenameWorkspace) EventName() string    { return "renameworkspace" }
func (ActiveSpecial) EventName() string      { return "activespecial" }
func (ActiveLayout) EventName() string       { return "activelayout" }
func (OpenWindow) EventName() string         { return "openwindow" }
func (CloseWindow) EventName() string        { return "closewindow" }
func (MoveWindow) EventName() string         { return "movewindow" }
func (MoveWindowV2) EventName() string       { return "movewindowv2" }
func (OpenLayer) EventName() string          { return "openlayer" }
func (CloseLayer) EventName() string         { return "closelayer" }
func (Submap) EventName() string             { return "submap" }
func (ChangeFloatingMode) EventName() string { return "changefloatingmode" }
func (Urgent) EventName() string             { return "urgent" }
func (Minimize) EventName() string           { return "minimize" }
func (Screencast) EventName() string         { return "screencast" }
func (WindowTitle) EventName() string        { return "windowtitle" }
func (WindowTitleV2) EventName() string      { return "windowtitlev2" }
func (ToggleGroup) EventName() string        { return "togglegroup" }
func (MoveIntoGroup) EventName() string      { return "moveintogroup" }
func (MoveOutOfGroup) EventName() string     { return "moveoutofgroup" }
func (IgnoreGroupLock) EventName() string    { return "ignoregrouplock" }
func (LockGroups) EventName() string         { return "lockgroups" }
func (ConfigReloaded) EventName() string     { return "configreloaded" }
func (Pin) EventName() string                { return "pin" }

func (Workspace) event()          {}
func (WorkspaceV2) event()        {}
func (FocusedMon) event()         {}
func (FocusedMonV2) event()       {}
func (ActiveWindow) event()       {}
func (ActiveWindowV2) event()     {}
func (Fullscreen) event()         {}
func (MonitorRemoved) event()     {}
func (MonitorAdded) event()       {}
func (MonitorAddedV2) event()     {}
func (CreateWorkspace) event()    {}
func (CreateWorkspaceV2) event()  {}
func (DestroyWorkspace) event()   {}
func (DestroyWorkspaceV2) event() {}
func (MoveWorkspace) event()      {}
func (MoveWorkspaceV2) event()    {}
func (RenameWorkspace) event()    {}
func (ActiveSpecial) event()      {}
func (ActiveLayout) event()       {}
func (OpenWindow) event()         {}
func (CloseWindow) event()        {}
func (MoveWindow) event()         {}
func (MoveWindowV2) event()       {}
func (OpenLayer) event()          {}
func (CloseLayer) event()         {}
func (Submap) event()             {}
func (ChangeFloatingMode) event() {}
func (Urgent) event()             {}
func (Minimize) event()           {}
func (Screencast) event()         {}
func (WindowTitle) event()        {}
func (WindowTitleV2) event()      {}
func (ToggleGroup) event()        {}
func (MoveIntoGroup) event()      {}
func (MoveOutOfGroup) event()     {}
func (IgnoreGroupLock) event()    {}
func (LockGroups) event()         {}
func (ConfigReloaded) event()     {}
func (Pin) event()                {}
