package config

import (
	"os"
	"strconv"
	"strings"

	"pdf-extractor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	MaxFileSize int64
	LogLevel    string
	Debug       bool
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// The caller that spawns this sidecar expects port 5001 unless
		// told otherwise.
		ServerPort:  getEnvOrDefault("PORT", "5001"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Debug:       strings.EqualFold(getEnvOrDefault("DEBUG", "false"), "true"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// IsDebug reports whether verbose error output is enabled
func (c *AppConfig) IsDebug() bool {
	return c.Debug
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
