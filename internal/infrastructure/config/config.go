package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
	Desktop     DesktopConfig
	Registry    RegistryConfig
	Preferences PreferencesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds session and shell configuration.
type DesktopConfig struct {
	BootApp       string        `envconfig:"DESKTOP_BOOT_APP" default:"welcome"`
	TaskbarHeight int           `envconfig:"DESKTOP_TASKBAR_HEIGHT" default:"48"`
	IdleTTL       time.Duration `envconfig:"DESKTOP_SESSION_IDLE_TTL" default:"30m"`
	ReapSchedule  string        `envconfig:"DESKTOP_REAP_SCHEDULE" default:"@every 1m"`
}

// RegistryConfig holds application registry configuration.
type RegistryConfig struct {
	ManifestDir string `envconfig:"REGISTRY_MANIFEST_DIR"`
	Watch       bool   `envconfig:"REGISTRY_WATCH" default:"false"`
}

// PreferencesConfig holds preference storage configuration.
type PreferencesConfig struct {
	Path string `envconfig:"PREFERENCES_PATH" default:"/tmp/webdesk/preferences.json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.Desktop.TaskbarHeight < 0 {
		return fmt.Errorf("DESKTOP_TASKBAR_HEIGHT must not be negative")
	}
	if c.Desktop.IdleTTL < 0 {
		return fmt.Errorf("DESKTOP_SESSION_IDLE_TTL must not be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	if c.Registry.Watch && c.Registry.ManifestDir == "" {
		return fmt.Errorf("REGISTRY_WATCH requires REGISTRY_MANIFEST_DIR")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			BootApp:       "welcome",
			TaskbarHeight: 48,
			IdleTTL:       30 * time.Minute,
			ReapSchedule:  "@every 1m",
		},
		Preferences: PreferencesConfig{
			Path: "/tmp/webdesk/preferences.json",
		},
	}
}
