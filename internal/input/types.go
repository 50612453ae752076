// Package input observes global keyboard and mouse activity without
// interfering with normal event delivery.
package input

import (
	"errors"
	"strconv"
	"time"
)

// Kind classifies an intercepted event
type Kind int

const (
	// KindOther events are forwarded without notifying the callback
	KindOther Kind = iota
	// KindMouse is a mouse button press or release
	KindMouse
	// KindKey is a key press
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindMouse:
		return "mouse"
	case KindKey:
		return "key"
	default:
		return "other"
	}
}

// Event is one intercepted input event. It is only valid for the duration
// of the callback; Raw is the platform event handle and is owned by the OS.
type Event struct {
	Kind    Kind
	KeyCode uint16 // virtual key code, key events only
	Button  int    // 0=left, 1=right, 2+=other
	Down    bool
	Raw     uintptr
	Time    time.Time
}

// Callback is invoked synchronously on the tap thread for each mouse or key event
type Callback func(ev Event, label string)

// Namer resolves the display name of the focused window
type Namer interface {
	Name() string
}

var (
	// ErrUnsupported is returned by Start on platforms without a global tap
	ErrUnsupported = errors.New("input tap not supported on this platform")
	// ErrPermissionDenied means the OS refused the tap for lack of an accessibility grant
	ErrPermissionDenied = errors.New("accessibility permission not granted")
	// ErrTapCreate is returned when the OS tap cannot be installed
	ErrTapCreate = errors.New("failed to create input tap")
	// ErrAlreadyRunning is returned by Start on a running monitor
	ErrAlreadyRunning = errors.New("input monitor already running")
)

// Label builds the correlation label for ev: "<keycode>_<window>" for key
// events and "<window>" for mouse events. An empty name becomes "Unknown".
func Label(ev Event, windowName string) string {
	if windowName == "" {
		windowName = "Unknown"
	}
	if ev.Kind == KindKey {
		return strconv.Itoa(int(ev.KeyCode)) + "_" + windowName
	}
	return windowName
}
