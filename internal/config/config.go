// Package config loads the indexer's ambient configuration from the
// environment, optionally seeded from a local .env file. Everything here is
// caller-side convenience for cmd/semindex; the core pipeline itself takes
// no configuration beyond (file, source, language).
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	// CacheEnabled turns the on-disk index cache on for directory runs.
	CacheEnabled bool
	// CachePath is the sqlite file backing the index cache.
	CachePath string
	// DefaultLanguage is used when a file's language can't be inferred
	// from its extension and no --lang flag was given.
	DefaultLanguage string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
	// MaxFileBytes skips files larger than this during directory scans.
	MaxFileBytes int64
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment. Real environment variables win over .env values, which is
// godotenv.Load's default behavior.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CachePath:       os.Getenv("SEMINDEX_CACHE_PATH"),
		DefaultLanguage: os.Getenv("SEMINDEX_DEFAULT_LANG"),
		LogLevel:        os.Getenv("SEMINDEX_LOG_LEVEL"),
		LogFormat:       os.Getenv("SEMINDEX_LOG_FORMAT"),
		MaxFileBytes:    2 << 20, // Default value
	}

	if cfg.CachePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CachePath = filepath.Join(home, ".semindex", "cache.db")
		} else {
			cfg.CachePath = ".semindex-cache.db"
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if cacheStr := os.Getenv("SEMINDEX_CACHE"); cacheStr != "" {
		if enabled, err := strconv.ParseBool(cacheStr); err == nil {
			cfg.CacheEnabled = enabled
		}
	}

	if maxStr := os.Getenv("SEMINDEX_MAX_FILE_BYTES"); maxStr != "" {
		if maxBytes, err := strconv.ParseInt(maxStr, 10, 64); err == nil && maxBytes > 0 {
			cfg.MaxFileBytes = maxBytes
		}
	}

	return cfg
}
