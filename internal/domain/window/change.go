package window

import "github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"

// ChangeKind names a window manager state transition
type ChangeKind string

const (
	ChangeOpened      ChangeKind = "opened"
	ChangeClosed      ChangeKind = "closed"
	ChangeFocused     ChangeKind = "focused"
	ChangeMinimized   ChangeKind = "minimized"
	ChangeRestored    ChangeKind = "restored"
	ChangeMaximized   ChangeKind = "maximized"
	ChangeUnmaximized ChangeKind = "unmaximized"
	ChangeGeometry    ChangeKind = "geometry"
	ChangeStartMenu   ChangeKind = "start_menu"
)

// Change describes one state transition.
// Window is a copy taken at the time of the change and is nil for start menu changes.
type Change struct {
	Kind          ChangeKind    `json:"kind"`
	Window        *types.Window `json:"window,omitempty"`
	StartMenuOpen bool          `json:"start_menu_open"`
	Revision      uint64        `json:"revision"`
}

// Observer receives window manager changes
type Observer interface {
	WindowChanged(change Change)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(change Change)

// WindowChanged calls f(change)
func (f ObserverFunc) WindowChanged(change Change) {
	f(change)
}

// txn collects the changes made during one locked update
type txn struct {
	manager *Manager
	changes []Change
}

// record bumps the revision and captures the change (manager lock held)
func (tx *txn) record(kind ChangeKind, w *types.Window) {
	tx.manager.revision++
	change := Change{
		Kind:          kind,
		StartMenuOpen: tx.manager.startMenuOpen,
		Revision:      tx.manager.revision,
	}
	if w != nil {
		cp := *w
		change.Window = &cp
	}
	tx.changes = append(tx.changes, change)
}
