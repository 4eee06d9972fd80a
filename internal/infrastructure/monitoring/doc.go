/*
Package monitoring provides Prometheus metrics for the desktop backend.

# Overview

Metrics are registered on a private registry owned by each Metrics value,
so tests and multiple servers never collide on the global registry.

# Metrics

- HTTP requests (count, latency) labeled by route template
- Window operations by change kind, open windows
- Active, started and ended sessions
- Registry size and reloads
- WebSocket connections and messages
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	sessions := session.NewManager(reg, fs, cfg, logger, session.WithRecorder(metrics))
*/
package monitoring
