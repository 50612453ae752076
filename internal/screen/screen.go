// Package screen captures the full display and writes it as a PNG file
// named from the capture time and a caller supplied label.
package screen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Extension is the file extension of every capture artifact
const Extension = ".png"

var (
	// ErrNoDirectory is returned when no target directory has been set
	ErrNoDirectory = errors.New("no capture directory set")
	// ErrNoImage is returned when the grabber produced nothing
	ErrNoImage = errors.New("screen grab returned no image")
	// ErrNoDisplay is returned when no active display is attached
	ErrNoDisplay = errors.New("no active display")
)

// Grabber rasterizes the screen
type Grabber interface {
	Grab() (image.Image, error)
}

// GrabberFunc adapts a function to the Grabber interface
type GrabberFunc func() (image.Image, error)

// Grab calls f
func (f GrabberFunc) Grab() (image.Image, error) { return f() }

// Option configures a Capturer
type Option func(*Capturer)

// WithGrabber replaces the display grabber
func WithGrabber(g Grabber) Option {
	return func(c *Capturer) { c.grabber = g }
}

// WithClock replaces the wall clock used for file names
func WithClock(now func() time.Time) Option {
	return func(c *Capturer) { c.now = now }
}

// WithCompression sets the PNG compression level
func WithCompression(level png.CompressionLevel) Option {
	return func(c *Capturer) { c.enc.CompressionLevel = level }
}

// Capturer takes screenshots into a swappable directory
type Capturer struct {
	dir     atomic.Pointer[string]
	grabber Grabber
	now     func() time.Time
	enc     png.Encoder
}

// New creates a Capturer writing into dir
func New(dir string, opts ...Option) *Capturer {
	c := &Capturer{
		grabber: DisplayGrabber{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SetDirectory(dir)
	return c
}

// SetDirectory replaces the directory used by later captures. A capture
// already running keeps the directory it started with.
func (c *Capturer) SetDirectory(dir string) {
	c.dir.Store(&dir)
}

// Directory returns the current target directory
func (c *Capturer) Directory() string {
	if p := c.dir.Load(); p != nil {
		return *p
	}
	return ""
}

// Capture grabs the screen into the current directory and returns the
// written path
func (c *Capturer) Capture(postfix string) (string, error) {
	return c.CaptureTo(c.Directory(), postfix)
}

// CaptureTo grabs the screen into dir. On failure no file is left behind.
func (c *Capturer) CaptureTo(dir, postfix string) (string, error) {
	if dir == "" {
		return "", ErrNoDirectory
	}

	img, err := c.grabber.Grab()
	if err != nil {
		return "", fmt.Errorf("grab screen: %w", err)
	}
	if img == nil || img.Bounds().Empty() {
		return "", ErrNoImage
	}

	var buf bytes.Buffer
	if err := c.enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	path := filepath.Join(dir, FileName(c.now(), postfix))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FileName returns "<timestamp>_<postfix>.png"
func FileName(t time.Time, postfix string) string {
	return FormatTimestamp(t) + "_" + postfix + Extension
}

// FormatTimestamp renders t as decimal seconds since the Unix epoch in the
// shortest form that round-trips, always with a fractional part.
func FormatTimestamp(t time.Time) string {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	s := strconv.FormatFloat(secs, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
