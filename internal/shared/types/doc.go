// Package types provides shared data structures for the WebDesk backend.
//
// Core Types:
//   - Descriptor: static application metadata from the registry
//   - Window: one open window instance
//   - Position, Size, Dimension: window geometry
//   - Payload: opaque data forwarded to a window's panel
//   - Stats: window manager statistics
//   - Preferences: persisted user settings (theme, accent, wallpaper)
//
// Request Types:
//   - OpenRequest, GeometryRequest, StartMenuRequest: HTTP bodies
//   - WSMessage: WebSocket commands
//
// Example Usage:
//
//	win := types.Window{
//	    ID:       "notepad-01J9ZK...",
//	    App:      desc,
//	    ZIndex:   10,
//	    Position: types.Position{X: 120, Y: 80},
//	    Size:     types.FixedSize(500, 400),
//	}
package types
