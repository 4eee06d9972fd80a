// Package registry provides the application catalogue for the desktop.
//
// The registry maps application ids to immutable descriptors (title, icon,
// panel handle, taskbar/desktop flags, default size, file association).
// Window managers consult it on every open.
//
// Components:
//   - Registry: ordered, concurrency-safe catalogue with lookup and queries
//   - Seeder: loads the embedded default catalogue and manifest directories
//   - Watcher: reloads a manifest directory when files change
//
// Manifest formats:
//   - YAML (.yaml, .yml)
//   - TOML (.toml)
//   - JSON (.json)
//
// Example Usage:
//
//	reg := registry.New()
//	seeder := registry.NewSeeder(reg, manifestDir, logger)
//	if err := seeder.Seed(); err != nil { ... }
//	desc, ok := reg.Lookup("notepad")
//	appID, ok := reg.ResolveFile("notes.txt")
package registry
