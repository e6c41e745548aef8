package hypr

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResponseParseError is returned when an info response is not the JSON the
// query promises. Response holds the raw payload.
type ResponseParseError struct {
	Kind     InfoKind
	Response string
	Err      error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Kind, e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// WindowInfo is the activewindow response. Only the fields the client
// consumes are decoded.
type WindowInfo struct {
	Class string `json:"class"`
	Title string `json:"title"`
}

// WorkspaceInfo is one entry of the workspaces response and the whole of the
// activeworkspace response. Special workspaces have negative ids.
type WorkspaceInfo struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Monitor         string `json:"monitor"`
	MonitorID       int    `json:"monitorID"`
	Windows         uint32 `json:"windows"`
	HasFullscreen   bool   `json:"hasfullscreen"`
	LastWindow      string `json:"lastwindow"`
	LastWindowTitle string `json:"lastwindowtitle"`
}

// InfoJSON runs an info query and decodes its response into v.
func (c *Controller) InfoJSON(ctx context.Context, q Info, v any) error {
	resp, err := c.Invoke(ctx, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(resp), v); err != nil {
		return &ResponseParseError{Kind: q.Kind, Response: resp, Err: err}
	}
	return nil
}

// ActiveWindow returns the focused window.
func (c *Controller) ActiveWindow(ctx context.Context) (*WindowInfo, error) {
	var w WindowInfo
	if err := c.InfoJSON(ctx, Info{Kind: InfoActiveWindow}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ActiveWorkspace returns the focused workspace.
func (c *Controller) ActiveWorkspace(ctx context.Context) (*WorkspaceInfo, error) {
	var ws WorkspaceInfo
	if err := c.InfoJSON(ctx, Info{Kind: InfoActiveWorkspace}, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// Workspaces lists all workspaces.
func (c *Controller) Workspaces(ctx context.Context) ([]WorkspaceInfo, error) {
	var list []WorkspaceInfo
	if err := c.InfoJSON(ctx, Info{Kind: InfoWorkspaces}, &list); err != nil {
		return nil, err
	}
	return list, nil
}
