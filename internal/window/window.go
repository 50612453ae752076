// Package window resolves the focused window of the frontmost application.
package window

import (
	"errors"

	"kabin/internal/logger"
)

// Unknown is the name used when no window or application name is available
const Unknown = "Unknown"

// ErrUnsupported is returned by sources on platforms without a window list
var ErrUnsupported = errors.New("window listing not supported on this platform")

// Rect is a window frame in global screen coordinates
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info describes one on-screen window
type Info struct {
	PID      int    `json:"pid"`
	WindowID int    `json:"window_id"`
	Name     string `json:"name"`
	Bounds   *Rect  `json:"bounds,omitempty"`
}

// App identifies the frontmost application
type App struct {
	PID  int
	Name string
}

// Source reads window state from the OS
type Source interface {
	// Frontmost returns the application that currently owns the keyboard focus
	Frontmost() (App, error)
	// OnScreen returns visible windows in front-to-back order
	OnScreen() ([]Info, error)
}

// Resolver answers "which window is focused right now"
type Resolver struct {
	src Source
	log *logger.Logger
}

// NewResolver creates a resolver backed by src. A nil src uses the platform source.
func NewResolver(src Source) *Resolver {
	if src == nil {
		src = NewSource()
	}
	return &Resolver{src: src, log: logger.Named("window")}
}

// Resolve returns the focused window. ok is false when either the frontmost
// application or the window list cannot be read.
func (r *Resolver) Resolve() (Info, bool) {
	app, err := r.src.Frontmost()
	if err != nil {
		return Info{}, false
	}
	windows, err := r.src.OnScreen()
	if err != nil {
		return Info{PID: app.PID}, false
	}
	info := Pick(app, windows)
	if b := info.Bounds; b != nil {
		r.log.Debug().Int("pid", info.PID).Int("window", info.WindowID).
			Float64("x", b.X).Float64("y", b.Y).Float64("w", b.Width).Float64("h", b.Height).
			Msg("focused window")
	}
	return info, true
}

// Name returns just the resolved name, or Unknown
func (r *Resolver) Name() string {
	info, ok := r.Resolve()
	if !ok || info.Name == "" {
		return Unknown
	}
	return info.Name
}

// Pick selects the first window owned by app with a positive window number.
// A matched window with no title takes the application name. With no
// matching window the name is Unknown.
func Pick(app App, windows []Info) Info {
	for _, w := range windows {
		if w.PID != app.PID || w.WindowID <= 0 {
			continue
		}
		if w.Name == "" {
			w.Name = app.Name
		}
		if w.Name == "" {
			w.Name = Unknown
		}
		return w
	}
	return Info{PID: app.PID, Name: Unknown}
}
