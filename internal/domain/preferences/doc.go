// Package preferences stores the desktop's appearance settings (theme,
// accent color, wallpaper) and persists them as a JSON file.
//
// A missing file yields defaults. Updates are partial and validated as a
// whole; a rejected update leaves the stored preferences untouched.
package preferences
