package window

import (
	"sort"
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// InitialZIndex is the first stacking value handed out in a session
const InitialZIndex = 10

// DefaultSize applies to applications whose descriptor has no default size
var DefaultSize = types.FixedSize(640, 480)

// Registry resolves application identifiers to descriptors
type Registry interface {
	Lookup(appID string) (types.Descriptor, bool)
}

// Option configures a Manager
type Option func(*Manager)

// WithPlacement sets the policy choosing where new windows appear
func WithPlacement(p Placement) Option {
	return func(m *Manager) {
		m.placement = p
	}
}

// WithIDGenerator overrides window ID generation
func WithIDGenerator(gen func(appID string) string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// WithObserver subscribes o from construction
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.subscribeLocked(o)
	}
}

type subscriber struct {
	id       int
	observer Observer
}

// Manager tracks the open windows of one desktop session
type Manager struct {
	mu            sync.RWMutex
	registry      Registry
	windows       []*types.Window // Protected by mu
	nextZIndex    int             // Protected by mu
	startMenuOpen bool            // Protected by mu
	revision      uint64          // Protected by mu
	placement     Placement
	newID         func(appID string) string
	subscribers   []subscriber // Protected by mu, replaced on unsubscribe
	nextSubID     int
}

// NewManager creates a window manager backed by registry
func NewManager(registry Registry, opts ...Option) *Manager {
	m := &Manager{
		registry:   registry,
		nextZIndex: InitialZIndex,
		placement:  NewRandomPlacement(),
		newID: func(appID string) string {
			return id.NewWindowID(appID).String()
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers an observer and returns a function removing it
func (m *Manager) Subscribe(o Observer) func() {
	m.mu.Lock()
	subID := m.subscribeLocked(o)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		kept := make([]subscriber, 0, len(m.subscribers))
		for _, s := range m.subscribers {
			if s.id != subID {
				kept = append(kept, s)
			}
		}
		m.subscribers = kept
	}
}

func (m *Manager) subscribeLocked(o Observer) int {
	m.nextSubID++
	m.subscribers = append(m.subscribers, subscriber{id: m.nextSubID, observer: o})
	return m.nextSubID
}

// Open surfaces or creates a window for appID and returns its ID.
// Without a payload an existing window of the application is focused and
// restored instead of creating a duplicate. With a payload a new window is
// always created. Unknown applications are ignored and report false.
func (m *Manager) Open(appID string, payload types.Payload) (string, bool) {
	desc, ok := m.registry.Lookup(appID)
	if !ok {
		return "", false
	}

	var windowID string
	m.update(func(tx *txn) {
		if payload == nil {
			if w := m.findByApp(appID); w != nil {
				windowID = w.ID
				m.focusLocked(tx, w)
				if w.IsMinimized {
					m.toggleMinimizeLocked(tx, w)
				}
				return
			}
		}

		size := DefaultSize
		if desc.DefaultSize != nil {
			size = *desc.DefaultSize
		}

		w := &types.Window{
			ID:       m.newID(appID),
			App:      desc,
			ZIndex:   m.nextZIndex,
			Position: m.placement.Place(desc),
			Size:     size,
			Payload:  payload,
		}
		m.nextZIndex++
		m.windows = append(m.windows, w)
		windowID = w.ID
		tx.record(ChangeOpened, w)
	})

	return windowID, true
}

// Close removes a window. Other windows keep their stacking order.
func (m *Manager) Close(windowID string) bool {
	var applied bool
	m.update(func(tx *txn) {
		for i, w := range m.windows {
			if w.ID == windowID {
				m.windows = append(m.windows[:i], m.windows[i+1:]...)
				tx.record(ChangeClosed, w)
				applied = true
				return
			}
		}
	})
	return applied
}

// Focus brings a window to the top of the stack and closes the start menu.
// Minimized and maximized flags are left untouched.
func (m *Manager) Focus(windowID string) bool {
	var applied bool
	m.update(func(tx *txn) {
		if w := m.find(windowID); w != nil {
			m.focusLocked(tx, w)
			applied = true
		}
	})
	return applied
}

// ToggleMinimize hides or restores a window. Restoring raises it to the top;
// minimizing keeps its stacking value.
func (m *Manager) ToggleMinimize(windowID string) bool {
	var applied bool
	m.update(func(tx *txn) {
		if w := m.find(windowID); w != nil {
			m.toggleMinimizeLocked(tx, w)
			applied = true
		}
	})
	return applied
}

// ToggleMaximize flips the maximized flag and raises the window in both
// directions. Stored position and size are kept for restoring.
func (m *Manager) ToggleMaximize(windowID string) bool {
	var applied bool
	m.update(func(tx *txn) {
		w := m.find(windowID)
		if w == nil {
			return
		}
		w.IsMaximized = !w.IsMaximized
		w.ZIndex = m.nextZIndex
		m.nextZIndex++
		if w.IsMaximized {
			tx.record(ChangeMaximized, w)
		} else {
			tx.record(ChangeUnmaximized, w)
		}
		applied = true
	})
	return applied
}

// UpdateGeometry overwrites the stored position and/or size of a window.
// Nil arguments leave the field unchanged. Bounds are not validated.
func (m *Manager) UpdateGeometry(windowID string, position *types.Position, size *types.Size) bool {
	var applied bool
	m.update(func(tx *txn) {
		w := m.find(windowID)
		if w == nil {
			return
		}
		if position != nil {
			w.Position = *position
		}
		if size != nil {
			w.Size = *size
		}
		tx.record(ChangeGeometry, w)
		applied = true
	})
	return applied
}

// SetStartMenuOpen sets the start menu visibility
func (m *Manager) SetStartMenuOpen(open bool) {
	m.update(func(tx *txn) {
		m.setStartMenuLocked(tx, open)
	})
}

// ToggleStartMenu flips the start menu visibility and returns the new value
func (m *Manager) ToggleStartMenu() bool {
	var open bool
	m.update(func(tx *txn) {
		open = !m.startMenuOpen
		m.setStartMenuLocked(tx, open)
	})
	return open
}

// StartMenuOpen reports whether the start menu is visible
func (m *Manager) StartMenuOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.startMenuOpen
}

// Get returns a copy of a window
func (m *Manager) Get(windowID string) (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if w := m.find(windowID); w != nil {
		return *w, true
	}
	return types.Window{}, false
}

// List returns copies of all windows in creation order
func (m *Manager) List() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyWindows()
}

// Stack returns copies of all windows ordered bottom to top
func (m *Manager) Stack() []types.Window {
	m.mu.RLock()
	windows := m.copyWindows()
	m.mu.RUnlock()

	sortByZ(windows)
	return windows
}

// ByApp returns copies of the windows spawned by appID
func (m *Manager) ByApp(appID string) []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []types.Window
	for _, w := range m.windows {
		if w.App.ID == appID {
			out = append(out, *w)
		}
	}
	return out
}

// Focused returns the topmost non-minimized window
func (m *Manager) Focused() (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if w := m.topmost(); w != nil {
		return *w, true
	}
	return types.Window{}, false
}

// Snapshot returns a consistent copy of the whole state
func (m *Manager) Snapshot() types.Snapshot {
	m.mu.RLock()
	snap := types.Snapshot{
		Windows:       m.copyWindows(),
		NextZIndex:    m.nextZIndex,
		StartMenuOpen: m.startMenuOpen,
		Revision:      m.revision,
	}
	m.mu.RUnlock()

	sortByZ(snap.Windows)
	return snap
}

// Stats returns window manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.Stats{
		TotalWindows:  len(m.windows),
		NextZIndex:    m.nextZIndex,
		StartMenuOpen: m.startMenuOpen,
	}
	for _, w := range m.windows {
		if w.IsMinimized {
			stats.MinimizedWindows++
		} else {
			stats.VisibleWindows++
		}
		if w.IsMaximized {
			stats.MaximizedWindows++
		}
	}
	if w := m.topmost(); w != nil {
		focused := w.ID
		stats.FocusedWindowID = &focused
	}
	return stats
}

// update runs fn under the write lock and notifies observers afterwards
func (m *Manager) update(fn func(tx *txn)) {
	tx := &txn{manager: m}

	m.mu.Lock()
	fn(tx)
	subscribers := m.subscribers
	m.mu.Unlock()

	for _, change := range tx.changes {
		for _, s := range subscribers {
			s.observer.WindowChanged(change)
		}
	}
}

// focusLocked raises w and closes the start menu (must hold lock)
func (m *Manager) focusLocked(tx *txn, w *types.Window) {
	m.setStartMenuLocked(tx, false)
	w.ZIndex = m.nextZIndex
	m.nextZIndex++
	tx.record(ChangeFocused, w)
}

// toggleMinimizeLocked flips the minimized flag of w (must hold lock)
func (m *Manager) toggleMinimizeLocked(tx *txn, w *types.Window) {
	w.IsMinimized = !w.IsMinimized
	if w.IsMinimized {
		tx.record(ChangeMinimized, w)
		return
	}
	w.ZIndex = m.nextZIndex
	m.nextZIndex++
	tx.record(ChangeRestored, w)
}

// setStartMenuLocked records a change only when the flag actually flips (must hold lock)
func (m *Manager) setStartMenuLocked(tx *txn, open bool) {
	if m.startMenuOpen == open {
		return
	}
	m.startMenuOpen = open
	tx.record(ChangeStartMenu, nil)
}

func (m *Manager) find(windowID string) *types.Window {
	for _, w := range m.windows {
		if w.ID == windowID {
			return w
		}
	}
	return nil
}

func (m *Manager) findByApp(appID string) *types.Window {
	for _, w := range m.windows {
		if w.App.ID == appID {
			return w
		}
	}
	return nil
}

func (m *Manager) topmost() *types.Window {
	var top *types.Window
	for _, w := range m.windows {
		if w.IsMinimized {
			continue
		}
		if top == nil || w.ZIndex > top.ZIndex {
			top = w
		}
	}
	return top
}

func (m *Manager) copyWindows() []types.Window {
	out := make([]types.Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

func sortByZ(windows []types.Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].ZIndex < windows[j].ZIndex
	})
}
