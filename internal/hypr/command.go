package hypr

import (
	"fmt"
	"strconv"
)

// Command is a request for the command socket. Like Event, the set of
// implementations is closed.
type Command interface {
	command()
}

// Dispatch runs a dispatcher, e.g. Dispatch{Args: "workspace 2"}.
type Dispatch struct {
	Args string
}

// Notify shows a compositor notification.
type Notify struct {
	Icon       Icon
	DurationMS uint32
	Color      Color
	Message    Message
}

// DismissNotify dismisses shown notifications.
type DismissNotify struct {
	Scope Dismiss
}

// Info is a read-only query. Arg is only used by kinds that take one
// (InfoDecorations, InfoGetOption).
type Info struct {
	Kind InfoKind
	Arg  string
}

func (Dispatch) command()      {}
func (Notify) command()        {}
func (DismissNotify) command() {}
func (Info) command()          {}

// Icon selects the notification icon.
type Icon int

const (
	NoIcon Icon = iota
	IconWarning
	IconInfo
	IconHint
	IconError
	IconConfused
	IconOK
)

var iconNames = [...]string{
	NoIcon:       "noicon",
	IconWarning:  "warning",
	IconInfo:     "info",
	IconHint:     "hint",
	IconError:    "error",
	IconConfused: "confused",
	IconOK:       "ok",
}

func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return iconNames[NoIcon]
	}
	return iconNames[i]
}

// ParseIcon maps an icon name as rendered by String back to an Icon.
func ParseIcon(s string) (Icon, error) {
	for i, name := range iconNames {
		if name == s {
			return Icon(i), nil
		}
	}
	if s == "none" || s == "" {
		return NoIcon, nil
	}
	return NoIcon, fmt.Errorf("unknown notification icon %q", s)
}

// Color is a notification color, either rgb(...) or rgba(...).
type Color struct {
	Value string
	Alpha bool
}

func RGB(hex string) Color  { return Color{Value: hex} }
func RGBA(hex string) Color { return Color{Value: hex, Alpha: true} }

func (c Color) String() string {
	if c.Alpha {
		return "rgba(" + c.Value + ")"
	}
	return "rgb(" + c.Value + ")"
}

// Message is notification text, either plain or with an explicit font size.
type Message struct {
	Text     string
	FontSize uint32
	sized    bool
}

func Plain(text string) Message { return Message{Text: text} }

// WithFontSize always renders the fontsize prefix, even for a size of 0.
func WithFontSize(size uint32, text string) Message {
	return Message{Text: text, FontSize: size, sized: true}
}

func (m Message) String() string {
	if !m.sized {
		return m.Text
	}
	return "fontsize:" + strconv.FormatUint(uint64(m.FontSize), 10) + " " + m.Text
}

// Dismiss selects which notifications to dismiss: all of them, or the n
// most recent.
type Dismiss struct {
	all    bool
	recent uint32
}

func DismissAll() Dismiss { return Dismiss{all: true} }

func DismissRecent(n uint32) Dismiss { return Dismiss{recent: n} }

func (d Dismiss) String() string {
	if d.all {
		return "-1"
	}
	return strconv.FormatUint(uint64(d.recent), 10)
}

// InfoKind names an info query.
type InfoKind string

const (
	InfoVersion         InfoKind = "version"
	InfoMonitors        InfoKind = "monitors"
	InfoWorkspaces      InfoKind = "workspaces"
	InfoActiveWorkspace InfoKind = "activeworkspace"
	InfoWorkspaceRules  InfoKind = "workspacerules"
	InfoClients         InfoKind = "clients"
	InfoDevices         InfoKind = "devices"
	InfoDecorations     InfoKind = "decorations"
	InfoBinds           InfoKind = "binds"
	InfoActiveWindow    InfoKind = "activewindow"
	InfoLayers          InfoKind = "layers"
	InfoSplash          InfoKind = "splash"
	InfoGetOption       InfoKind = "getoption"
	InfoCursorPos       InfoKind = "cursorpos"
	InfoAnimations      InfoKind = "animations"
	InfoInstances       InfoKind = "instances"
	InfoLayouts         InfoKind = "layouts"
	InfoConfigErrors    InfoKind = "configerrors"
	InfoRollingLog      InfoKind = "rollinglog"
	InfoLocked          InfoKind = "locked"
)

// InfoKinds lists every supported info query.
var InfoKinds = []InfoKind{
	InfoVersion, InfoMonitors, InfoWorkspaces, InfoActiveWorkspace,
	InfoWorkspaceRules, InfoClients, InfoDevices, InfoDecorations,
	InfoBinds, InfoActiveWindow, InfoLayers, InfoSplash, InfoGetOption,
	InfoCursorPos, InfoAnimations, InfoInstances, InfoLayouts,
	InfoConfigErrors, InfoRollingLog, InfoLocked,
}

// TakesArg reports whether the kind is parameterized.
func (k InfoKind) TakesArg() bool {
	return k == InfoDecorations || k == InfoGetOption
}

// ParseInfoKind validates a kind name.
func ParseInfoKind(s string) (InfoKind, error) {
	for _, k := range InfoKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown info kind %q", s)
}

// Decorations queries the decorations of one window.
func Decorations(window uint32) Info {
	return Info{Kind: InfoDecorations, Arg: strconv.FormatUint(uint64(window), 10)}
}

// GetOption queries one config option.
func GetOption(name string) Info {
	return Info{Kind: InfoGetOption, Arg: name}
}

// Encode renders a command in the command socket's wire dialect.
func Encode(cmd Command) string {
	switch c := cmd.(type) {
	case Dispatch:
		return "-j dispatch " + c.Args
	case Notify:
		return fmt.Sprintf("-j %s %d %s %s", c.Icon, c.DurationMS, c.Color, c.Message)
	case DismissNotify:
		return "-j dismissnotify " + c.Scope.String()
	case Info:
		if c.Kind.TakesArg() && c.Arg != "" {
			return "j/" + string(c.Kind) + " " + c.Arg
		}
		return "j/" + string(c.Kind)
	case *Dispatch:
		return Encode(*c)
	case *Notify:
		return Encode(*c)
	case *DismissNotify:
		return Encode(*c)
	case *Info:
		return Encode(*c)
	}
	// unreachable: Command is sealed
	panic(fmt.Sprintf("hypr: unknown command %T", cmd))
}
