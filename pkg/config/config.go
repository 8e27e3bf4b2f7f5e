// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Source dataset and destination database
	Source   *SourceConfig
	Postgres *PostgresConfig

	// Load settings
	ChunkSize int

	// Optional path for the JSON run report ("" disables it)
	ReportPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		ChunkSize:  getEnvAsInt("CHUNK_SIZE", 1000),
		ReportPath: getEnv("RUN_REPORT_PATH", ""),
	}

	// Load source configuration
	srcConfig, err := LoadSourceConfig()
	if err != nil {
		return nil, errors.New("failed to load source configuration: " + err.Error())
	}
	cfg.Source = srcConfig

	// Load destination database configuration
	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Source == nil {
		return errors.New("source configuration is required")
	}

	if c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if c.ChunkSize <= 0 {
		return errors.New("chunk size must be positive")
	}

	return c.Source.Validate()
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
