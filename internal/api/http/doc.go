// Package http provides the REST API of the desktop backend.
//
// Endpoints:
//   - Health: /, /health
//   - Registry: /registry/apps, /registry/apps/:appId, /registry/resolve
//   - Appearance: /wallpapers, /preferences
//   - Files: /files
//   - Sessions: /sessions, /sessions/:id
//   - Windows: /sessions/:id/windows, /sessions/:id/windows/:wid[/focus|/minimize|/maximize|/frame]
//   - Shell: /sessions/:id/start-menu, /taskbar, /launch/:appId, /desktop-icons, /files/open
//
// Window operations on unknown ids are not errors: they answer 200 with
// "success": false, mirroring the window manager's silent no-ops.
//
// Example Usage:
//
//	handlers := http.NewHandlers(http.Deps{Sessions: sessions, Registry: reg, ...})
//	http.RegisterRoutes(router, handlers)
package http
