package session

import (
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/events"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Session is one desktop: its windows, shell and event stream
type Session struct {
	ID        string
	CreatedAt time.Time
	Windows   *window.Manager
	Shell     *desktop.Shell
	Events    *events.Bus

	lastActive  atomic.Int64 // unix nanoseconds
	unsubscribe func()
}

// Info summarises a session for listings
type Info struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	LastActive  time.Time   `json:"last_active"`
	Stats       types.Stats `json:"stats"`
	Subscribers int         `json:"subscribers"`
}

// touch marks the session active at t
func (s *Session) touch(t time.Time) {
	s.lastActive.Store(t.UnixNano())
}

// LastActive returns the time of the last recorded activity
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Info returns a summary of the session
func (s *Session) Info() Info {
	return Info{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		LastActive:  s.LastActive(),
		Stats:       s.Windows.Stats(),
		Subscribers: s.Events.Subscribers(),
	}
}

func (s *Session) close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.Events.Close()
}
