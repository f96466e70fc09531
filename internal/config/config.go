// Package config holds the typed application configuration. Values are
// layered by the root command: built-in defaults, an optional YAML config
// file, then OSUKIT_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Store     StoreConfig     `mapstructure:"store"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig describes how to reach the osu! API.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     int           `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// RateLimitConfig tunes the outbound request limiter.
type RateLimitConfig struct {
	// MinInterval is the minimum spacing between consecutive requests.
	MinInterval time.Duration `mapstructure:"min_interval"`

	// MaxPerMinute caps requests inside the trailing one-minute window.
	// The osu! API terms ask clients to stay at or below 60.
	MaxPerMinute int `mapstructure:"max_per_minute"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// CacheConfig contains lookup cache TTLs.
type CacheConfig struct {
	UserTTL    time.Duration `mapstructure:"user_ttl"`
	BeatmapTTL time.Duration `mapstructure:"beatmap_ttl"`
}

// LoggingConfig controls CLI logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// DefaultConfigDir returns the user config directory for osukit.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "osukit")
	}
	return ""
}

// DefaultStorePath returns the default database file path.
func DefaultStorePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "osukit", "osukit.db")
	}
	return "./osukit.db"
}
