// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// The window core does not log. Sessions, the registry seeder and watcher,
// preference persistence and the HTTP/WebSocket layers do, always with
// structured fields.
//
// Example Usage:
//
//	logger := logging.New(logging.Config{Level: "info"})
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Named("registry").Warn("Manifest skipped", zap.Error(err))
package logging
