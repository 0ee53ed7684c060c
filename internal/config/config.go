package config

import (
	"os"
	"strconv"

	"gofill/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Fill      FillConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data source settings
type DataConfig struct {
	// File is an optional .xlsx/.csv workbook whose numeric columns are
	// preloaded so fill requests can reference them by name.
	File string
}

// FillConfig holds fill engine settings
type FillConfig struct {
	// MaxConcurrent bounds how many series a batch request fills at once.
	MaxConcurrent int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Data:      loadDataConfig(),
		Fill:      loadFillConfig(),
		Profiling: loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnv("SERVER_PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File: os.Getenv("DATA_FILE"),
	}
}

func loadFillConfig() FillConfig {
	return FillConfig{
		MaxConcurrent: getEnvInt("FILL_MAX_CONCURRENT", 4),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnv("PPROF_PORT", "6060"),
		Enabled: getEnvBool("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("SERVER_PORT must not be empty")
	}
	if config.Fill.MaxConcurrent < 1 {
		return errors.ConfigInvalid("FILL_MAX_CONCURRENT must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
