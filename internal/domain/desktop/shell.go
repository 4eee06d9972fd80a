package desktop

import (
	"errors"
	"fmt"
	"path"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

const (
	// DefaultBootApp is opened when a session starts
	DefaultBootApp = "welcome"
	// WelcomeFollowUp is opened when the welcome window is dismissed
	WelcomeFollowUp = "portfolio"
)

var (
	// ErrNoAssociation is returned when no app handles a file's extension
	ErrNoAssociation = errors.New("no application associated with file type")
	// ErrUnknownApp is returned when an associated app is missing from the registry
	ErrUnknownApp = errors.New("unknown application")
)

// Catalog is the part of the application registry the shell needs
type Catalog interface {
	window.Registry
	Pinned() []types.Descriptor
	Desktop() []types.Descriptor
	ResolveFile(fileName string) (string, bool)
}

// FileSource produces window payloads for files
type FileSource interface {
	Payload(path string) (types.Payload, error)
}

// TaskbarEntry is one pinned app in the taskbar
type TaskbarEntry struct {
	App       types.Descriptor `json:"app"`
	Open      bool             `json:"open"`
	Minimized bool             `json:"minimized"`
	Windows   int              `json:"windows"`
}

// Shell drives a window manager on behalf of the desktop UI
type Shell struct {
	windows *window.Manager
	catalog Catalog
	files   FileSource
	bootApp string
}

// Option configures a Shell
type Option func(*Shell)

// WithBootApp sets the app opened by Boot. Empty disables booting.
func WithBootApp(appID string) Option {
	return func(s *Shell) {
		s.bootApp = appID
	}
}

// NewShell creates a shell. files may be nil when file opening is unused.
func NewShell(windows *window.Manager, catalog Catalog, files FileSource, opts ...Option) *Shell {
	s := &Shell{
		windows: windows,
		catalog: catalog,
		files:   files,
		bootApp: DefaultBootApp,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Windows returns the underlying window manager
func (s *Shell) Windows() *window.Manager {
	return s.windows
}

// Boot opens the boot app
func (s *Shell) Boot() (string, bool) {
	if s.bootApp == "" {
		return "", false
	}
	return s.windows.Open(s.bootApp, nil)
}

// Taskbar returns the pinned apps with their window indicators
func (s *Shell) Taskbar() []TaskbarEntry {
	pinned := s.catalog.Pinned()
	windows := s.windows.List()

	entries := make([]TaskbarEntry, 0, len(pinned))
	for _, app := range pinned {
		entry := TaskbarEntry{App: app}
		for _, w := range windows {
			if w.App.ID != app.ID {
				continue
			}
			entry.Windows++
			if w.IsMinimized {
				entry.Minimized = true
			} else {
				entry.Open = true
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// ClickTaskbar applies the taskbar click policy to the first window of
// appID: a minimized window is restored, any other is focused. With no
// window the app is opened. Returns the affected window id.
func (s *Shell) ClickTaskbar(appID string) (string, bool) {
	existing := s.windows.ByApp(appID)
	if len(existing) == 0 {
		return s.windows.Open(appID, nil)
	}

	w := existing[0]
	if w.IsMinimized {
		return w.ID, s.windows.ToggleMinimize(w.ID)
	}
	return w.ID, s.windows.Focus(w.ID)
}

// Launch opens appID from the start menu or a desktop icon and closes the
// start menu
func (s *Shell) Launch(appID string) (string, bool) {
	windowID, ok := s.windows.Open(appID, nil)
	s.windows.SetStartMenuOpen(false)
	return windowID, ok
}

// ToggleStartMenu flips the start menu and returns the new state
func (s *Shell) ToggleStartMenu() bool {
	return s.windows.ToggleStartMenu()
}

// StartMenu returns the apps listed in the start menu
func (s *Shell) StartMenu() []types.Descriptor {
	return s.catalog.Pinned()
}

// DesktopIcons returns the apps shown on the desktop surface
func (s *Shell) DesktopIcons() []types.Descriptor {
	return s.catalog.Desktop()
}

// OpenFile opens the file at filePath in its associated app. Every call
// creates a new window because the file is passed as payload.
func (s *Shell) OpenFile(filePath string) (string, error) {
	if s.files == nil {
		return "", fmt.Errorf("file opening is not configured")
	}

	payload, err := s.files.Payload(filePath)
	if err != nil {
		return "", err
	}

	name := path.Base(filePath)
	appID, ok := s.catalog.ResolveFile(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoAssociation, path.Ext(name))
	}

	windowID, ok := s.windows.Open(appID, payload)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownApp, appID)
	}
	return windowID, nil
}

// DismissWelcome opens the follow-up app and closes every welcome window
func (s *Shell) DismissWelcome() (string, bool) {
	windowID, ok := s.windows.Open(WelcomeFollowUp, nil)
	for _, w := range s.windows.ByApp(DefaultBootApp) {
		s.windows.Close(w.ID)
	}
	return windowID, ok
}
