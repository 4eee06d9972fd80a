// Package events turns window manager changes into CloudEvents and fans
// them out to subscribers such as WebSocket streams.
//
// Event types:
//   - com.webdesk.window.{opened,closed,focused,minimized,restored,maximized,unmaximized,moved}
//   - com.webdesk.startmenu.toggled
//
// Every event carries the change revision so consumers can order events
// that were delivered concurrently.
package events
