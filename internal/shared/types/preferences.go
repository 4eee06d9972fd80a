package types

// Theme is the desktop color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Accent is the desktop accent color
type Accent string

const (
	AccentBlue   Accent = "blue"
	AccentGreen  Accent = "green"
	AccentOrange Accent = "orange"
	AccentPink   Accent = "pink"
	AccentPurple Accent = "purple"
	AccentRed    Accent = "red"
)

// Preferences are the user settings persisted across sessions
type Preferences struct {
	Theme     Theme  `json:"theme"`
	Accent    Accent `json:"accent"`
	Wallpaper string `json:"wallpaper"`
}

// PreferencesUpdate is a partial preferences change; nil fields are left alone
type PreferencesUpdate struct {
	Theme     *Theme  `json:"theme,omitempty"`
	Accent    *Accent `json:"accent,omitempty"`
	Wallpaper *string `json:"wallpaper,omitempty"`
}

// Wallpaper is a selectable desktop background
type Wallpaper struct {
	ID          string `json:"id"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description,omitempty"`
}
