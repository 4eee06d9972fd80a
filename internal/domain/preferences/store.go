package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTheme is returned when a theme is neither light nor dark
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidAccent is returned for an accent outside the palette
	ErrInvalidAccent = errors.New("invalid accent color")
	// ErrUnknownWallpaper is returned for a wallpaper id not in Wallpapers
	ErrUnknownWallpaper = errors.New("unknown wallpaper")
)

// Defaults returns the preferences used before anything is saved
func Defaults() types.Preferences {
	return types.Preferences{
		Theme:     types.ThemeDark,
		Accent:    types.AccentBlue,
		Wallpaper: DefaultWallpaper,
	}
}

// Store holds the current preferences. An empty path keeps them in memory.
type Store struct {
	mu     sync.RWMutex
	prefs  types.Preferences
	path   string
	logger *logging.Logger
}

// Open loads preferences from path. A missing file yields defaults;
// a corrupt file is logged and replaced by defaults on the next save.
func Open(path string, logger *logging.Logger) (*Store, error) {
	s := &Store{
		prefs:  Defaults(),
		path:   path,
		logger: logging.OrNop(logger).Named("preferences"),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var stored types.Preferences
	if err := sonic.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("Ignoring corrupt preferences file", zap.String("path", path), zap.Error(err))
		return s, nil
	}

	// Fields that no longer validate fall back to their defaults
	merged := Defaults()
	if validTheme(stored.Theme) {
		merged.Theme = stored.Theme
	}
	if validAccent(stored.Accent) {
		merged.Accent = stored.Accent
	}
	if _, ok := FindWallpaper(stored.Wallpaper); ok {
		merged.Wallpaper = stored.Wallpaper
	}
	s.prefs = merged
	return s, nil
}

// Get returns the current preferences
func (s *Store) Get() types.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Update applies a partial change. All set fields are validated before
// anything is applied.
func (s *Store) Update(u types.PreferencesUpdate) (types.Preferences, error) {
	if u.Theme != nil && !validTheme(*u.Theme) {
		return types.Preferences{}, fmt.Errorf("%w: %q", ErrInvalidTheme, *u.Theme)
	}
	if u.Accent != nil && !validAccent(*u.Accent) {
		return types.Preferences{}, fmt.Errorf("%w: %q", ErrInvalidAccent, *u.Accent)
	}
	if u.Wallpaper != nil {
		if _, ok := FindWallpaper(*u.Wallpaper); !ok {
			return types.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownWallpaper, *u.Wallpaper)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	if u.Theme != nil {
		next.Theme = *u.Theme
	}
	if u.Accent != nil {
		next.Accent = *u.Accent
	}
	if u.Wallpaper != nil {
		next.Wallpaper = *u.Wallpaper
	}

	if err := s.save(next); err != nil {
		return types.Preferences{}, err
	}
	s.prefs = next
	return next, nil
}

// save writes prefs atomically. Caller holds the write lock.
func (s *Store) save(prefs types.Preferences) error {
	if s.path == "" {
		return nil
	}

	data, err := sonic.ConfigStd.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write preferences: %w", err)
	}

	s.logger.Debug("Preferences saved", zap.String("path", s.path))
	return nil
}

func validTheme(t types.Theme) bool {
	return t == types.ThemeLight || t == types.ThemeDark
}

func validAccent(a types.Accent) bool {
	switch a {
	case types.AccentBlue, types.AccentGreen, types.AccentOrange,
		types.AccentPink, types.AccentPurple, types.AccentRed:
		return true
	}
	return false
}
