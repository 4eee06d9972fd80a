// Package config provides 12-factor configuration for the WebDesk backend.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags in cmd/server can override the listen address.
//
// Configuration Sections:
//   - Server: HTTP listen address
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Desktop: boot app, taskbar height, idle session reaping
//   - Registry: optional manifest directory and hot reload
//   - Preferences: preferences file location
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - DESKTOP_BOOT_APP, DESKTOP_TASKBAR_HEIGHT, DESKTOP_SESSION_IDLE_TTL, DESKTOP_REAP_SCHEDULE
//   - REGISTRY_MANIFEST_DIR, REGISTRY_WATCH
//   - PREFERENCES_PATH
package config
