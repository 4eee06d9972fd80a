package events

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// Event is a CloudEvents v1.0 event
type Event = cloudevents.Event

const (
	TypeWindowOpened      = "com.webdesk.window.opened"
	TypeWindowClosed      = "com.webdesk.window.closed"
	TypeWindowFocused     = "com.webdesk.window.focused"
	TypeWindowMinimized   = "com.webdesk.window.minimized"
	TypeWindowRestored    = "com.webdesk.window.restored"
	TypeWindowMaximized   = "com.webdesk.window.maximized"
	TypeWindowUnmaximized = "com.webdesk.window.unmaximized"
	TypeWindowMoved       = "com.webdesk.window.moved"
	TypeStartMenuToggled  = "com.webdesk.startmenu.toggled"
)

var changeTypes = map[window.ChangeKind]string{
	window.ChangeOpened:      TypeWindowOpened,
	window.ChangeClosed:      TypeWindowClosed,
	window.ChangeFocused:     TypeWindowFocused,
	window.ChangeMinimized:   TypeWindowMinimized,
	window.ChangeRestored:    TypeWindowRestored,
	window.ChangeMaximized:   TypeWindowMaximized,
	window.ChangeUnmaximized: TypeWindowUnmaximized,
	window.ChangeGeometry:    TypeWindowMoved,
	window.ChangeStartMenu:   TypeStartMenuToggled,
}

// ChangeData is the data section of a change event
type ChangeData struct {
	Kind          window.ChangeKind `json:"kind"`
	Window        *types.Window     `json:"window,omitempty"`
	StartMenuOpen bool              `json:"start_menu_open"`
	Revision      uint64            `json:"revision"`
}

// Source returns the event source for a session
func Source(sessionID string) string {
	return "/sessions/" + sessionID
}

// TypeFor returns the event type for a change kind
func TypeFor(kind window.ChangeKind) (string, bool) {
	t, ok := changeTypes[kind]
	return t, ok
}

// FromChange builds the CloudEvent for a window manager change
func FromChange(sessionID string, c window.Change) (Event, error) {
	eventType, ok := TypeFor(c.Kind)
	if !ok {
		return Event{}, fmt.Errorf("no event type for change %q", c.Kind)
	}

	data := ChangeData{
		Kind:          c.Kind,
		StartMenuOpen: c.StartMenuOpen,
		Revision:      c.Revision,
	}
	if c.Window != nil {
		w := *c.Window
		data.Window = &w
	}

	event := New(eventType, Source(sessionID), data)
	if c.Window != nil {
		event.SetSubject(c.Window.ID)
	}
	if err := event.Validate(); err != nil {
		return Event{}, fmt.Errorf("invalid event: %w", err)
	}
	return event, nil
}

// New creates a CloudEvent with a time-ordered id and JSON data
func New(eventType, source string, data interface{}) Event {
	event := cloudevents.NewEvent()
	event.SetID(newEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
