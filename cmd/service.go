package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kabin/internal/autostart"
	"kabin/internal/config"
	"kabin/internal/dataset"
	"kabin/internal/input"
	"kabin/internal/logger"
	"kabin/internal/osutils"
	"kabin/internal/screen"
	"kabin/internal/session"
	"kabin/internal/tray"
	"kabin/internal/window"
)

// app wires the recorder components together for one process
type app struct {
	cfgMgr  *config.Manager
	monitor *input.Monitor
	capture *screen.Capturer
	session *session.Session
	log     *logger.Logger
}

func newApp(cfgMgr *config.Manager, dirOverride string) (*app, error) {
	cfg := cfgMgr.Get()
	mon := input.New(window.NewResolver(nil))
	capture := screen.New("", screen.WithCompression(cfg.Compression()))
	a := &app{
		cfgMgr:  cfgMgr,
		monitor: mon,
		capture: capture,
		session: session.New(mon, capture, session.WithDelay(cfg.CaptureDelay())),
		log:     logger.Named("app"),
	}

	dir := cfg.Directory
	if dirOverride != "" {
		dir = dirOverride
	}
	if dir != "" {
		if err := a.session.SetDirectory(dir); err != nil {
			if dirOverride != "" {
				return nil, err
			}
			a.log.Warn().Err(err).Str("dir", dir).Msg("configured save directory unusable, choose another")
		}
	}
	return a, nil
}

// startTap installs the input tap. Failing here is fatal for the process.
func (a *app) startTap() error {
	err := a.monitor.Start()
	if err == nil {
		return nil
	}
	if errors.Is(err, input.ErrPermissionDenied) {
		a.log.Error().Msg("grant accessibility access to kabin and restart")
		if serr := osutils.OpenAccessibilitySettings(); serr != nil {
			a.log.Debug().Err(serr).Msg("could not open privacy settings")
		}
	}
	return fmt.Errorf("start input tap: %w", err)
}

func (a *app) shutdown() {
	a.session.StopRecording()
	if err := a.monitor.Stop(); err != nil {
		a.log.Warn().Err(err).Msg("stopping input tap")
	}
	a.session.Wait()
}

func (a *app) runHeadless() error {
	if err := a.startTap(); err != nil {
		return err
	}
	defer a.shutdown()

	if err := a.session.StartRecording(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	a.log.Info().Str("dir", a.session.Directory()).Msg("recording; press Ctrl+C to stop")
	<-sigCh
	a.log.Info().Msg("shutting down")
	return nil
}

func (a *app) runService() error {
	a.log.Info().Str("version", version).Msg("kabin starting")
	if err := a.startTap(); err != nil {
		return err
	}
	defer a.shutdown()

	t := tray.New("Kabin", "Kabin recorder")
	m := newMenu(a, t)

	// Directory changes from the menu go through the config manager
	a.cfgMgr.RegisterChangeCallback(func(cfg config.Config) {
		if cfg.Directory == "" || cfg.Directory == a.session.Directory() {
			return
		}
		if err := a.session.SetDirectory(cfg.Directory); err != nil {
			a.log.Warn().Err(err).Msg("rejecting save directory")
		}
		m.refresh()
	})

	t.OnReady(func() {
		if a.cfgMgr.Get().RecordOnLaunch {
			m.record()
		}
		m.refresh()
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		a.log.Info().Msg("shutting down")
		t.Stop()
	}()

	a.log.Info().Msg("kabin running, press Ctrl+C to stop")
	t.Run()
	return nil
}

// menuState says which actions are currently available
type menuState struct {
	record   bool
	stop     bool
	generate bool
	clear    bool
}

func computeMenuState(state session.State, dir string) menuState {
	recording := state == session.Recording
	haveDir := dir != ""
	return menuState{
		record:   !recording && haveDir,
		stop:     recording,
		generate: !recording && haveDir,
		clear:    !recording && haveDir,
	}
}

// menu owns the tray items and keeps their enabled state in sync
type menu struct {
	a *app
	t *tray.Tray

	chooseID, revealID, recordID, stopID, generateID, clearID, loginID int
}

func newMenu(a *app, t *tray.Tray) *menu {
	m := &menu{a: a, t: t}
	m.chooseID = t.AddMenuItem("Choose Save Directory", m.choose)
	m.revealID = t.AddMenuItem("Reveal Save Directory", m.reveal)
	t.AddSeparator()
	m.recordID = t.AddMenuItem("Record", m.record)
	m.stopID = t.AddMenuItem("Stop Recording", m.stop)
	t.AddSeparator()
	m.generateID = t.AddMenuItem("Generate Description", m.generate)
	m.clearID = t.AddMenuItem("Clear Directory", m.clear)
	t.AddSeparator()
	m.loginID = t.AddMenuItem("Launch at Login", m.toggleLogin)
	t.SetItemChecked(m.loginID, autostart.IsEnabled())
	t.AddSeparator()
	t.AddMenuItem("Quit", t.Stop)
	m.refresh()
	return m
}

func (m *menu) refresh() {
	s := computeMenuState(m.a.session.State(), m.a.session.Directory())
	m.t.SetItemEnabled(m.recordID, s.record)
	m.t.SetItemEnabled(m.stopID, s.stop)
	m.t.SetItemEnabled(m.generateID, s.generate)
	m.t.SetItemEnabled(m.clearID, s.clear)
	m.t.SetItemEnabled(m.revealID, m.a.session.Directory() != "")
	m.t.SetItemChecked(m.recordID, s.stop)
	if s.stop {
		m.t.SetTitle("Kabin ●")
	} else {
		m.t.SetTitle("Kabin")
	}
}

func (m *menu) choose() {
	dir, err := osutils.ChooseFolder("Choose where Kabin saves screenshots", m.a.session.Directory())
	if errors.Is(err, osutils.ErrCancelled) {
		return
	}
	if err != nil {
		m.a.log.Warn().Err(err).Msg("folder picker failed")
		return
	}
	if err := m.a.cfgMgr.Update(func(c *config.Config) { c.Directory = dir }); err != nil {
		m.a.log.Warn().Err(err).Str("dir", dir).Msg("could not save directory")
	}
}

func (m *menu) reveal() {
	if err := osutils.RevealFolder(m.a.session.Directory()); err != nil {
		m.a.log.Warn().Err(err).Msg("reveal directory failed")
	}
}

func (m *menu) record() {
	if err := m.a.session.StartRecording(); err != nil {
		m.a.log.Warn().Err(err).Msg("cannot start recording")
	}
	m.refresh()
}

func (m *menu) stop() {
	m.a.session.StopRecording()
	m.refresh()
}

func (m *menu) generate() {
	dir := m.a.session.Directory()
	res, err := dataset.Scan(dir, dataset.ScanOptions{})
	if err != nil {
		m.a.log.Warn().Err(err).Msg("generate description failed")
		return
	}
	for _, s := range res.Skipped {
		m.a.log.Debug().Str("file", s.File).Err(s.Err).Msg("skipped")
	}
	if err := dataset.Write(os.Stdout, res.Records, true, "tsv"); err != nil {
		m.a.log.Warn().Err(err).Msg("write description failed")
		return
	}
	m.a.log.Info().Int("records", len(res.Records)).Int("skipped", len(res.Skipped)).Msg("description generated")
}

func (m *menu) clear() {
	n, err := dataset.Clean(m.a.session.Directory())
	if err != nil {
		m.a.log.Warn().Err(err).Msg("clear directory incomplete")
	}
	m.a.log.Info().Int("removed", n).Msg("directory cleared")
}

func (m *menu) toggleLogin() {
	var err error
	if autostart.IsEnabled() {
		err = autostart.Disable()
	} else {
		err = autostart.Enable()
	}
	if err != nil {
		m.a.log.Warn().Err(err).Msg("launch at login")
	}
	m.t.SetItemChecked(m.loginID, autostart.IsEnabled())
}
