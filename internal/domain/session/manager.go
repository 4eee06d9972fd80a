package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/events"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for unknown session ids
	ErrNotFound = errors.New("session not found")
	// ErrStopped is returned by Create after Stop
	ErrStopped = errors.New("session manager stopped")
)

// End reasons passed to Recorder.SessionEnded
const (
	EndDeleted = "deleted"
	EndIdle    = "idle"
	EndStopped = "stopped"
)

// Recorder receives session and window activity, typically for metrics
type Recorder interface {
	WindowChanged(kind window.ChangeKind)
	SessionStarted()
	SessionEnded(reason string, openWindows int)
}

// Config controls session behavior
type Config struct {
	BootApp      string
	IdleTTL      time.Duration
	ReapSchedule string
	EventBuffer  int
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		BootApp:      desktop.DefaultBootApp,
		IdleTTL:      30 * time.Minute,
		ReapSchedule: "@every 1m",
		EventBuffer:  events.DefaultBuffer,
	}
}

// Option configures a Manager
type Option func(*Manager)

// WithRecorder reports activity to r
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithPlacement sets the placement policy factory used for new sessions
func WithPlacement(factory func() window.Placement) Option {
	return func(m *Manager) {
		m.placement = factory
	}
}

// Manager owns all live sessions
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	catalog   desktop.Catalog
	files     desktop.FileSource
	cfg       Config
	logger    *logging.Logger
	recorder  Recorder
	now       func() time.Time
	placement func() window.Placement
	cron      *cron.Cron
	stopped   bool
}

// NewManager creates a session manager
func NewManager(catalog desktop.Catalog, files desktop.FileSource, cfg Config, logger *logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		files:    files,
		cfg:      cfg,
		logger:   logging.OrNop(logger).Named("session"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session and opens the boot app
func (m *Manager) Create() (*Session, error) {
	sessionID := id.NewSessionID().String()
	now := m.now()

	wmOpts := []window.Option{}
	if m.placement != nil {
		wmOpts = append(wmOpts, window.WithPlacement(m.placement()))
	}
	wm := window.NewManager(m.catalog, wmOpts...)

	s := &Session{
		ID:        sessionID,
		CreatedAt: now,
		Windows:   wm,
		Shell:     desktop.NewShell(wm, m.catalog, m.files, desktop.WithBootApp(m.cfg.BootApp)),
		Events:    events.NewBus(m.cfg.EventBuffer),
	}
	s.touch(now)
	s.unsubscribe = wm.Subscribe(m.observer(s))

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		s.close()
		return nil, ErrStopped
	}
	m.sessions[sessionID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.SessionStarted()
	}

	if m.cfg.BootApp != "" {
		if _, ok := s.Shell.Boot(); !ok {
			m.logger.Warn("Boot app not in registry", zap.String("session_id", sessionID), zap.String("app_id", m.cfg.BootApp))
		}
	}

	m.logger.Info("Session created", zap.String("session_id", sessionID), zap.Int("sessions", count))
	return s, nil
}

// Get returns the session with the given id
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return s, nil
}

// Touch marks a session as active
func (m *Manager) Touch(sessionID string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	s.touch(m.now())
	return nil
}

// List returns session summaries ordered by creation time
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	infos := make([]Info, len(sessions))
	for i, s := range sessions {
		infos[i] = s.Info()
	}
	return infos
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Delete ends a session
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	m.end(s, EndDeleted)
	return nil
}

// Reap ends every session idle for longer than the configured TTL and
// returns how many were removed. A zero TTL disables reaping.
func (m *Manager) Reap() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var idle []*Session
	for sessionID, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, sessionID)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		m.end(s, EndIdle)
	}
	if len(idle) > 0 {
		m.logger.Info("Reaped idle sessions", zap.Int("count", len(idle)), zap.Duration("idle_ttl", m.cfg.IdleTTL))
	}
	return len(idle)
}

// Start schedules idle reaping
func (m *Manager) Start() error {
	if m.cfg.IdleTTL <= 0 || m.cfg.ReapSchedule == "" {
		m.logger.Info("Idle session reaping disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(m.cfg.ReapSchedule, func() { m.Reap() }); err != nil {
		return fmt.Errorf("invalid reap schedule %q: %w", m.cfg.ReapSchedule, err)
	}
	c.Start()

	m.mu.Lock()
	m.cron = c
	m.mu.Unlock()

	m.logger.Info("Idle session reaper started",
		zap.String("schedule", m.cfg.ReapSchedule),
		zap.Duration("idle_ttl", m.cfg.IdleTTL))
	return nil
}

// Stop halts the reaper and ends all sessions
func (m *Manager) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.stopped = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, s := range sessions {
		m.end(s, EndStopped)
	}
}

func (m *Manager) end(s *Session, reason string) {
	open := len(s.Windows.List())
	s.close()
	if m.recorder != nil {
		m.recorder.SessionEnded(reason, open)
	}
	m.logger.Info("Session ended",
		zap.String("session_id", s.ID),
		zap.String("reason", reason),
		zap.Int("open_windows", open))
}

// observer publishes window changes as CloudEvents on the session bus
func (m *Manager) observer(s *Session) window.Observer {
	return window.ObserverFunc(func(c window.Change) {
		s.touch(m.now())
		if m.recorder != nil {
			m.recorder.WindowChanged(c.Kind)
		}

		event, err := events.FromChange(s.ID, c)
		if err != nil {
			m.logger.Error("Failed to build change event",
				zap.String("session_id", s.ID),
				zap.String("kind", string(c.Kind)),
				zap.Error(err))
			return
		}
		s.Events.Publish(event)
	})
}
