package desktop

import (
	"testing"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, opts ...Option) *Shell {
	t.Helper()
	descs, err := registry.LoadDefaults()
	require.NoError(t, err)
	reg, err := registry.New(descs...)
	require.NoError(t, err)

	wm := window.NewManager(reg, window.WithPlacement(window.NewSequencePlacement(types.Position{X: 100, Y: 80})))
	return NewShell(wm, reg, files.Default(), opts...)
}

func entryFor(t *testing.T, entries []TaskbarEntry, appID string) TaskbarEntry {
	t.Helper()
	for _, e := range entries {
		if e.App.ID == appID {
			return e
		}
	}
	t.Fatalf("no taskbar entry for %s", appID)
	return TaskbarEntry{}
}

func TestBoot(t *testing.T) {
	s := newTestShell(t)
	id, ok := s.Boot()
	require.True(t, ok)

	w, ok := s.Windows().Get(id)
	require.True(t, ok)
	assert.Equal(t, "welcome", w.App.ID)
}

func TestBootDisabledOrCustom(t *testing.T) {
	_, ok := newTestShell(t, WithBootApp("")).Boot()
	assert.False(t, ok)

	s := newTestShell(t, WithBootApp("terminal"))
	id, ok := s.Boot()
	require.True(t, ok)
	w, _ := s.Windows().Get(id)
	assert.Equal(t, "terminal", w.App.ID)
}

func TestTaskbarIndicators(t *testing.T) {
	s := newTestShell(t)
	wm := s.Windows()

	wm.Open("about", nil)
	termID, _ := wm.Open("terminal", nil)
	wm.ToggleMinimize(termID)
	wm.Open("notepad", types.Payload{})

	entries := s.Taskbar()
	assert.Len(t, entries, 7, "only pinned apps appear")

	about := entryFor(t, entries, "about")
	assert.True(t, about.Open)
	assert.False(t, about.Minimized)
	assert.Equal(t, 1, about.Windows)

	term := entryFor(t, entries, "terminal")
	assert.False(t, term.Open)
	assert.True(t, term.Minimized)

	browser := entryFor(t, entries, "browser")
	assert.False(t, browser.Open)
	assert.False(t, browser.Minimized)
	assert.Zero(t, browser.Windows)
}

func TestClickTaskbar(t *testing.T) {
	s := newTestShell(t)
	wm := s.Windows()

	// no window: opens one
	id, ok := s.ClickTaskbar("about")
	require.True(t, ok)
	w, _ := wm.Get(id)
	assert.Equal(t, 10, w.ZIndex)

	// minimized: restores with a fresh z-index
	wm.ToggleMinimize(id)
	again, ok := s.ClickTaskbar("about")
	require.True(t, ok)
	assert.Equal(t, id, again)
	w, _ = wm.Get(id)
	assert.False(t, w.IsMinimized)
	assert.Equal(t, 11, w.ZIndex)

	// visible: focuses and closes the start menu
	wm.SetStartMenuOpen(true)
	_, ok = s.ClickTaskbar("about")
	require.True(t, ok)
	w, _ = wm.Get(id)
	assert.Equal(t, 12, w.ZIndex)
	assert.False(t, wm.StartMenuOpen())
	assert.Len(t, wm.List(), 1)

	_, ok = s.ClickTaskbar("nonexistent")
	assert.False(t, ok)
}

func TestLaunchClosesStartMenu(t *testing.T) {
	s := newTestShell(t)
	wm := s.Windows()

	assert.True(t, s.ToggleStartMenu())
	id, ok := s.Launch("browser")
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.False(t, wm.StartMenuOpen())

	wm.SetStartMenuOpen(true)
	again, ok := s.Launch("browser")
	require.True(t, ok)
	assert.Equal(t, id, again, "launch reuses the existing window")
	assert.False(t, wm.StartMenuOpen())

	wm.SetStartMenuOpen(true)
	_, ok = s.Launch("nonexistent")
	assert.False(t, ok)
	assert.False(t, wm.StartMenuOpen())
}

func TestStartMenuAndDesktopIcons(t *testing.T) {
	s := newTestShell(t)

	menu := s.StartMenu()
	require.NotEmpty(t, menu)
	for _, d := range menu {
		assert.True(t, d.Pinned)
	}

	icons := s.DesktopIcons()
	assert.Len(t, icons, 7)
	for _, d := range icons {
		assert.True(t, d.Desktop)
	}
}

func TestOpenFile(t *testing.T) {
	s := newTestShell(t)
	wm := s.Windows()

	id, err := s.OpenFile("/Users/Durgas/Documents/notes.txt")
	require.NoError(t, err)

	w, ok := wm.Get(id)
	require.True(t, ok)
	assert.Equal(t, "notepad", w.App.ID)
	assert.Equal(t, "notes.txt", w.Payload[files.PayloadFileName])
	assert.Contains(t, w.Payload[files.PayloadContent], "Meeting notes")

	second, err := s.OpenFile("/Users/Durgas/Documents/notes.txt")
	require.NoError(t, err)
	assert.NotEqual(t, id, second, "file opens always create a window")
	assert.Len(t, wm.ByApp("notepad"), 2)
}

func TestOpenFileErrors(t *testing.T) {
	s := newTestShell(t)

	_, err := s.OpenFile("/Users/Durgas/Pictures/avatar.jpg")
	assert.ErrorIs(t, err, ErrNoAssociation)

	_, err = s.OpenFile("/Users/Durgas/Documents/missing.txt")
	assert.ErrorIs(t, err, files.ErrNotFound)

	_, err = s.OpenFile("/Users/Durgas")
	assert.ErrorIs(t, err, files.ErrNotAFile)

	assert.Empty(t, s.Windows().List())

	_, err = NewShell(s.Windows(), nil, nil).OpenFile("/Users/Durgas/Documents/notes.txt")
	assert.Error(t, err)
}

func TestDismissWelcome(t *testing.T) {
	s := newTestShell(t)
	wm := s.Windows()

	_, ok := s.Boot()
	require.True(t, ok)

	id, ok := s.DismissWelcome()
	require.True(t, ok)

	assert.Empty(t, wm.ByApp("welcome"))
	w, ok := wm.Get(id)
	require.True(t, ok)
	assert.Equal(t, "portfolio", w.App.ID)
	assert.Len(t, wm.List(), 1)
}
