// Package middleware provides HTTP middleware shared by the REST and
// WebSocket endpoints: CORS and per-client rate limiting.
package middleware
