package hypr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const nameSeparator = ">>"

var (
	// ErrUnsupportedEvent matches a DecodeError for an event name with no decoder.
	ErrUnsupportedEvent = errors.New("unsupported event")
	// ErrMissingField matches a DecodeError for a line with too few arguments.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidFieldType matches a DecodeError for an argument that failed conversion.
	ErrInvalidFieldType = errors.New("invalid field type")
)

// DecodeErrorKind classifies a DecodeError.
type DecodeErrorKind int

const (
	UnsupportedEvent DecodeErrorKind = iota
	MissingField
	InvalidFieldType
)

// DecodeError describes why an event line could not be decoded. Decode
// errors are recoverable: the stream that produced the line is still usable.
type DecodeError struct {
	Kind  DecodeErrorKind
	Event string
	Index int
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case UnsupportedEvent:
		return fmt.Sprintf("unsupported event %q", e.Event)
	case MissingField:
		return fmt.Sprintf("decode %s: missing field %d", e.Event, e.Index)
	default:
		return fmt.Sprintf("decode %s: invalid field %d %q: %v", e.Event, e.Index, e.Raw, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrUnsupportedEvent:
		return e.Kind == UnsupportedEvent
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrInvalidFieldType:
		return e.Kind == InvalidFieldType
	}
	return false
}

// args reads positional arguments for one event. The first failure sticks
// and later reads return zero values.
type args struct {
	event string
	raw   []string
	err   error
}

func (a *args) at(i int) (string, bool) {
	if a.err != nil {
		return "", false
	}
	if i >= len(a.raw) {
		a.err = &DecodeError{Kind: MissingField, Event: a.event, Index: i}
		return "", false
	}
	return a.raw[i], true
}

func (a *args) fail(i int, raw string, err error) {
	a.err = &DecodeError{Kind: InvalidFieldType, Event: a.event, Index: i, Raw: raw, Err: err}
}

func (a *args) str(i int) string {
	s, _ := a.at(i)
	return s
}

func (a *args) int(i int) int {
	s, ok := a.at(i)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		a.fail(i, s, err)
		return 0
	}
	return n
}

func (a *args) uint8(i int) uint8 {
	s, ok := a.at(i)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		a.fail(i, s, err)
		return 0
	}
	return uint8(n)
}

func (a *args) bool(i int) bool {
	s, ok := a.at(i)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		a.fail(i, s, err)
		return false
	}
	return b
}

func (a *args) list(i int) []string {
	s, ok := a.at(i)
	if !ok || s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

type decoder struct {
	arity int
	build func(a *args) Event
}

var decoders = map[string]decoder{
	"workspace": {1, func(a *args) Event {
		return Workspace{Name: a.str(0)}
	}},
	"workspacev2": {2, func(a *args) Event {
		return WorkspaceV2{ID: a.int(0), Name: a.str(1)}
	}},
	"focusedmon": {2, func(a *args) Event {
		return FocusedMon{Monitor: a.str(0), Workspace: a.str(1)}
	}},
	"focusedmonv2": {2, func(a *args) Event {
		return FocusedMonV2{Monitor: a.str(0), WorkspaceID: a.int(1)}
	}},
	"activewindow": {2, func(a *args) Event {
		return ActiveWindow{Class: a.str(0), Title: a.str(1)}
	}},
	"activewindowv2": {1, func(a *args) Event {
		return ActiveWindowV2{Address: a.str(0)}
	}},
	"fullscreen": {1, func(a *args) Event {
		return Fullscreen{Enabled: a.bool(0)}
	}},
	"monitorremoved": {1, func(a *args) Event {
		return MonitorRemoved{Name: a.str(0)}
	}},
	"monitoradded": {1, func(a *args) Event {
		return MonitorAdded{Name: a.str(0)}
	}},
	"monitoraddedv2": {3, func(a *args) Event {
		return MonitorAddedV2{ID: a.int(0), Name: a.str(1), Description: a.str(2)}
	}},
	"createworkspace": {1, func(a *args) Event {
		return CreateWorkspace{Name: a.str(0)}
	}},
	"createworkspacev2": {2, func(a *args) Event {
		return CreateWorkspaceV2{ID: a.int(0), Name: a.str(1)}
	}},
	"destroyworkspace": {1, func(a *args) Event {
		return DestroyWorkspace{Name: a.str(0)}
	}},
	"destroyworkspacev2": {2, func(a *args) Event {
		return DestroyWorkspaceV2{ID: a.int(0), Name: a.str(1)}
	}},
	"moveworkspace": {2, func(a *args) Event {
		return MoveWorkspace{Name: a.str(0), Monitor: a.str(1)}
	}},
	"moveworkspacev2": {3, func(a *args) Event {
		return MoveWorkspaceV2{ID: a.int(0), Name: a.str(1), Monitor: a.str(2)}
	}},
	"renameworkspace": {2, func(a *args) Event {
		return RenameWorkspace{ID: a.int(0), NewName: a.str(1)}
	}},
	"activespecial": {2, func(a *args) Event {
		return ActiveSpecial{Workspace: a.str(0), Monitor: a.str(1)}
	}},
	"activelayout": {2, func(a *args) Event {
		return ActiveLayout{Keyboard: a.str(0), Layout: a.str(1)}
	}},
	"openwindow": {4, func(a *args) Event {
		return OpenWindow{Address: a.str(0), Workspace: a.str(1), Class: a.str(2), Title: a.str(3)}
	}},
	"closewindow": {1, func(a *args) Event {
		return CloseWindow{Address: a.str(0)}
	}},
	"movewindow": {2, func(a *args) Event {
		return MoveWindow{Address: a.str(0), Workspace: a.str(1)}
	}},
	"movewindowv2": {3, func(a *args) Event {
		return MoveWindowV2{Address: a.str(0), WorkspaceID: a.int(1), Workspace: a.str(2)}
	}},
	"openlayer": {1, func(a *args) Event {
		return OpenLayer{Namespace: a.str(0)}
	}},
	"closelayer": {1, func(a *args) Event {
		return CloseLayer{Namespace: a.str(0)}
	}},
	"submap": {1, func(a *args) Event {
		return Submap{Name: a.str(0)}
	}},
	"changefloatingmode": {2, func(a *args) Event {
		return ChangeFloatingMode{Address: a.str(0), Floating: a.bool(1)}
	}},
	"urgent": {1, func(a *args) Event {
		return Urgent{Address: a.str(0)}
	}},
	"minimize": {2, func(a *args) Event {
		return Minimize{Address: a.str(0), Minimized: a.bool(1)}
	}},
	"screencast": {2, func(a *args) Event {
		return Screencast{Active: a.bool(0), Owner: a.uint8(1)}
	}},
	"windowtitle": {1, func(a *args) Event {
		return WindowTitle{Address: a.str(0)}
	}},
	"windowtitlev2": {2, func(a *args) Event {
		return WindowTitleV2{Address: a.str(0), Title: a.str(1)}
	}},
	"togglegroup": {2, func(a *args) Event {
		return ToggleGroup{Open: a.bool(0), Handles: a.list(1)}
	}},
	"moveintogroup": {1, func(a *args) Event {
		return MoveIntoGroup{Address: a.str(0)}
	}},
	"moveoutofgroup": {1, func(a *args) Event {
		return MoveOutOfGroup{Address: a.str(0)}
	}},
	"ignoregrouplock": {1, func(a *args) Event {
		return IgnoreGroupLock{Enabled: a.bool(0)}
	}},
	"lockgroups": {1, func(a *args) Event {
		return LockGroups{Locked: a.bool(0)}
	}},
	"configreloaded": {0, func(a *args) Event {
		return ConfigReloaded{}
	}},
	"pin": {2, func(a *args) Event {
		return Pin{Address: a.str(0), Pinned: a.bool(1)}
	}},
}

func init() {
	decoders["ignore_grouplock"] = decoders["ignoregrouplock"]
}

// Decode turns one event line, with or without its trailing newline, into a
// typed Event. The argument payload is split into exactly as many fields as
// the event declares, so only the final field may contain commas.
func Decode(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	name, payload, hasArgs := strings.Cut(line, nameSeparator)

	d, ok := decoders[name]
	if !ok {
		return nil, &DecodeError{Kind: UnsupportedEvent, Event: name}
	}

	a := &args{event: name}
	if hasArgs && d.arity > 0 {
		a.raw = strings.SplitN(payload, ",", d.arity)
	}

	ev := d.build(a)
	if a.err != nil {
		return nil, a.err
	}
	return ev, nil
}

// Supported reports whether name has a decoder.
func Supported(name string) bool {
	_, ok := decoders[name]
	return ok
}
