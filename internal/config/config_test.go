package config

import (
	"os"
	"testing"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := LoadConfig()

	if cfg.CacheEnabled {
		t.Error("Expected CacheEnabled false by default")
	}
	if cfg.CachePath == "" {
		t.Error("Expected a non-empty default CachePath")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("Expected LogFormat 'text', got '%s'", cfg.LogFormat)
	}
	if cfg.MaxFileBytes != 2<<20 {
		t.Errorf("Expected MaxFileBytes %d, got %d", 2<<20, cfg.MaxFileBytes)
	}
	if cfg.DefaultLanguage != "" {
		t.Errorf("Expected empty DefaultLanguage, got '%s'", cfg.DefaultLanguage)
	}
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_CACHE", "true")
	os.Setenv("SEMINDEX_CACHE_PATH", "/tmp/semindex-test.db")
	os.Setenv("SEMINDEX_DEFAULT_LANG", "python")
	os.Setenv("SEMINDEX_LOG_LEVEL", "debug")
	os.Setenv("SEMINDEX_LOG_FORMAT", "json")
	os.Setenv("SEMINDEX_MAX_FILE_BYTES", "1024")

	cfg := LoadConfig()

	if !cfg.CacheEnabled {
		t.Error("Expected CacheEnabled true")
	}
	if cfg.CachePath != "/tmp/semindex-test.db" {
		t.Errorf("Expected CachePath '/tmp/semindex-test.db', got '%s'", cfg.CachePath)
	}
	if cfg.DefaultLanguage != "python" {
		t.Errorf("Expected DefaultLanguage 'python', got '%s'", cfg.DefaultLanguage)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected LogFormat 'json', got '%s'", cfg.LogFormat)
	}
	if cfg.MaxFileBytes != 1024 {
		t.Errorf("Expected MaxFileBytes 1024, got %d", cfg.MaxFileBytes)
	}
}

func TestLoadConfig_InvalidNumericValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_MAX_FILE_BYTES", "not-a-number")
	os.Setenv("SEMINDEX_CACHE", "not-a-bool")

	cfg := LoadConfig()

	if cfg.MaxFileBytes != 2<<20 {
		t.Errorf("Expected default MaxFileBytes on invalid input, got %d", cfg.MaxFileBytes)
	}
	if cfg.CacheEnabled {
		t.Error("Expected CacheEnabled false on invalid input")
	}
}

func TestLoadConfig_NegativeMaxBytesIgnored(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_MAX_FILE_BYTES", "-5")

	cfg := LoadConfig()
	if cfg.MaxFileBytes != 2<<20 {
		t.Errorf("Expected default MaxFileBytes on negative input, got %d", cfg.MaxFileBytes)
	}
}

func clearConfigEnvVars() {
	envVars := []string{
		"SEMINDEX_CACHE",
		"SEMINDEX_CACHE_PATH",
		"SEMINDEX_DEFAULT_LANG",
		"SEMINDEX_LOG_LEVEL",
		"SEMINDEX_LOG_FORMAT",
		"SEMINDEX_MAX_FILE_BYTES",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}
