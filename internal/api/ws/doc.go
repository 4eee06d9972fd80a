// Package ws streams a desktop session over WebSocket.
//
// On connect the server sends a welcome frame holding the session's window
// snapshot, then forwards every window change as a structured CloudEvent.
//
// Message Types (Client → Server):
//   - open: open app_id with an optional payload
//   - close, focus, minimize, maximize: act on window_id
//   - geometry: move and/or resize window_id
//   - start_menu: set the start menu to open, or toggle when open is omitted
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - welcome: session id and snapshot
//   - CloudEvents: com.webdesk.window.* and com.webdesk.startmenu.toggled
//   - pong: ping reply
//   - error: the command was rejected or had no effect
//
// Example Usage:
//
//	stream := ws.NewHandler(sessions, metrics, logger)
//	router.GET("/sessions/:id/stream", stream.HandleConnection)
package ws
