// Package session binds the input monitor to the screen capturer and
// exposes recording on/off and directory control.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"kabin/internal/input"
	"kabin/internal/logger"
)

// DefaultDelay lets the UI settle before the frame is taken
const DefaultDelay = 10 * time.Millisecond

var (
	// ErrNoDirectory is returned when recording is requested without a directory
	ErrNoDirectory = errors.New("no save directory chosen")
	// ErrNotDirectory is returned by SetDirectory for paths that are not directories
	ErrNotDirectory = errors.New("not a directory")
)

// State is the recording state
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Tap is the part of the input monitor the session drives
type Tap interface {
	SetCallback(cb input.Callback)
}

// Capturer is the part of the screen capturer the session drives
type Capturer interface {
	CaptureTo(dir, postfix string) (string, error)
	SetDirectory(dir string)
	Directory() string
}

// Option configures a Session
type Option func(*Session)

// WithDelay overrides the capture delay
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// Session is the recording orchestrator
type Session struct {
	tap     Tap
	capture Capturer
	delay   time.Duration
	log     *logger.Logger

	mu          sync.Mutex
	state       State
	recordingID string

	pending   sync.WaitGroup
	onCapture atomic.Pointer[func(path string, err error)]
}

// New creates an idle session
func New(tap Tap, capture Capturer, opts ...Option) *Session {
	s := &Session{
		tap:     tap,
		capture: capture,
		delay:   DefaultDelay,
		log:     logger.Named("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRecording installs the capture callback. Calling it while already
// recording replaces the callback with a fresh one.
func (s *Session) StartRecording() error {
	if s.capture.Directory() == "" {
		return ErrNoDirectory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.recordingID = id
	s.state = Recording
	s.tap.SetCallback(s.captureCallback(id))

	s.log.Info().Str("recording", id).Str("dir", s.capture.Directory()).Msg("recording started")
	return nil
}

// StopRecording removes the capture callback. Captures already scheduled
// still run.
func (s *Session) StopRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tap.SetCallback(nil)
	if s.state == Recording {
		s.log.Info().Str("recording", s.recordingID).Msg("recording stopped")
	}
	s.state = Idle
	s.recordingID = ""
}

// SetDirectory changes where later captures land. It does not change the
// recording state.
func (s *Session) SetDirectory(path string) error {
	if path == "" {
		return ErrNoDirectory
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	s.capture.SetDirectory(abs)
	s.log.Info().Str("dir", abs).Msg("save directory changed")
	return nil
}

// Directory returns the current save directory
func (s *Session) Directory() string {
	return s.capture.Directory()
}

// State returns the current recording state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnCapture registers an observer for finished captures; nil removes it
func (s *Session) OnCapture(fn func(path string, err error)) {
	if fn == nil {
		s.onCapture.Store(nil)
		return
	}
	s.onCapture.Store(&fn)
}

// Wait blocks until every scheduled capture has finished. Call it after
// StopRecording.
func (s *Session) Wait() {
	s.pending.Wait()
}

// captureCallback runs on the tap thread. It snapshots the directory at
// event time and defers the capture itself.
func (s *Session) captureCallback(recordingID string) input.Callback {
	return func(ev input.Event, label string) {
		dir := s.capture.Directory()
		s.pending.Add(1)
		time.AfterFunc(s.delay, func() {
			defer s.pending.Done()
			s.runCapture(recordingID, dir, ev, label)
		})
	}
}

func (s *Session) runCapture(recordingID, dir string, ev input.Event, label string) {
	path, err := s.capture.CaptureTo(dir, label)
	if err != nil {
		s.log.Warn().Err(err).Str("recording", recordingID).Str("label", label).Msg("capture skipped")
	} else {
		e := s.log.Debug().Str("recording", recordingID).Str("kind", ev.Kind.String()).Bool("down", ev.Down)
		if ev.Kind == input.KindMouse {
			e = e.Int("button", ev.Button)
		}
		if !ev.Time.IsZero() {
			e = e.Dur("latency", time.Since(ev.Time))
		}
		e.Str("path", path).Msg("captured")
	}
	if fn := s.onCapture.Load(); fn != nil {
		(*fn)(path, err)
	}
}
