// Package main is the entry point for the WebDesk backend server.
//
// WebDesk renders a desktop shell in the browser. This server owns the
// state behind it: per-session window managers, the application catalogue,
// the sample file system and user preferences.
//
// Architecture:
//
//	Browser (render layer) → REST + WebSocket → Session → Window manager
//	                                                  → Registry (embedded + manifests)
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -manifests ./apps -watch
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
