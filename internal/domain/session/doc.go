// Package session manages desktop sessions.
//
// Each session owns a window manager, the shell driving it and an event
// bus. Window changes are converted to CloudEvents and published on the
// bus, where WebSocket streams pick them up.
//
// Sessions that see no activity for longer than the idle TTL are reaped
// on a cron schedule.
//
// Example Usage:
//
//	manager := session.NewManager(reg, files.Default(), session.DefaultConfig(), logger)
//	if err := manager.Start(); err != nil { ... }
//	defer manager.Stop()
//	s, err := manager.Create()
//	s.Shell.Launch("notepad")
package session
