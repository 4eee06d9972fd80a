package preferences

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOpenMissingFileYieldsDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Get())
	assert.Equal(t, types.ThemeDark, s.Get().Theme)
	assert.Equal(t, types.AccentBlue, s.Get().Accent)
	assert.Equal(t, "desktop-wallpaper", s.Get().Wallpaper)
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	s, err := Open(path, nil)
	require.NoError(t, err)

	got, err := s.Update(types.PreferencesUpdate{
		Theme:     ptr(types.ThemeLight),
		Wallpaper: ptr("wallpaper-3"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.Preferences{Theme: types.ThemeLight, Accent: types.AccentBlue, Wallpaper: "wallpaper-3"}, got)

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, got, reopened.Get())
}

func TestUpdateValidation(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		update  types.PreferencesUpdate
		wantErr error
	}{
		{"bad theme", types.PreferencesUpdate{Theme: ptr(types.Theme("sepia"))}, ErrInvalidTheme},
		{"bad accent", types.PreferencesUpdate{Accent: ptr(types.Accent("teal"))}, ErrInvalidAccent},
		{"bad wallpaper", types.PreferencesUpdate{Wallpaper: ptr("nope")}, ErrUnknownWallpaper},
		{"one bad field rejects all", types.PreferencesUpdate{Theme: ptr(types.ThemeLight), Accent: ptr(types.Accent("teal"))}, ErrInvalidAccent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, Defaults(), s.Get())
		})
	}
}

func TestEmptyUpdateIsNoop(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)

	got, err := s.Update(types.PreferencesUpdate{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Get())
}

func TestOpenDropsStaleFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light","accent":"teal","wallpaper":"retired"}`), 0o644))

	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Preferences{Theme: types.ThemeLight, Accent: types.AccentBlue, Wallpaper: DefaultWallpaper}, s.Get())
}

func TestFindWallpaper(t *testing.T) {
	w, ok := FindWallpaper(DefaultWallpaper)
	require.True(t, ok)
	assert.NotEmpty(t, w.ImageURL)

	_, ok = FindWallpaper("missing")
	assert.False(t, ok)
	assert.Len(t, Wallpapers, 6)
}
