package input

import (
	"sync"
	"sync/atomic"

	"kabin/internal/logger"
	"kabin/internal/window"
)

// Monitor owns the global input tap and its worker thread
type Monitor struct {
	namer Namer
	cb    atomic.Pointer[Callback]
	log   *logger.Logger

	mu      sync.Mutex
	id      uint64
	running bool
	tap     *tap
}

// New creates a monitor that labels events using namer
func New(namer Namer) *Monitor {
	if namer == nil {
		namer = window.NewResolver(nil)
	}
	return &Monitor{
		namer: namer,
		log:   logger.Named("input"),
	}
}

// Start installs the OS tap. It returns ErrTapCreate (possibly wrapping
// ErrPermissionDenied) when the OS refuses, or ErrUnsupported.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return ErrAlreadyRunning
	}

	m.id = register(m)
	if err := m.startPlatform(); err != nil {
		unregister(m.id)
		m.id = 0
		return err
	}
	m.running = true
	m.log.Info().Uint64("monitor", m.id).Msg("input tap started")
	return nil
}

// Stop tears down the tap and waits for its worker to exit. Safe to call
// more than once.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}

	err := m.stopPlatform()
	unregister(m.id)
	m.id = 0
	m.running = false
	m.log.Info().Msg("input tap stopped")
	return err
}

// Running reports whether the tap is installed
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// SetCallback replaces the active callback; nil removes it. The tap thread
// sees either the old or the new callback, never a partial update.
func (m *Monitor) SetCallback(cb Callback) {
	if cb == nil {
		m.cb.Store(nil)
		return
	}
	m.cb.Store(&cb)
}

// Deliver runs ev through the monitor exactly as the tap thread does for
// an intercepted event. It always returns ev, including when the resolver
// or callback panics.
func (m *Monitor) Deliver(ev Event) (out Event) {
	out = ev
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("kind", ev.Kind.String()).Msg("recovered in input callback")
		}
	}()

	if ev.Kind == KindOther {
		return
	}
	cb := m.cb.Load()
	if cb == nil {
		return
	}
	(*cb)(ev, Label(ev, m.windowName()))
	return
}

func (m *Monitor) windowName() (name string) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn().Interface("panic", r).Msg("window resolution failed")
			name = window.Unknown
		}
	}()
	return m.namer.Name()
}
