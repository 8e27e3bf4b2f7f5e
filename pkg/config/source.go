// pkg/config/source.go
package config

import (
	"errors"
)

// SourceConfig holds the location of the titles CSV export
type SourceConfig struct {
	// Path to netflix_titles.csv
	CSVPath string

	// Maximum records to extract (0 means all)
	Limit int
}

// LoadSourceConfig loads source dataset configuration from environment variables
func LoadSourceConfig() (*SourceConfig, error) {
	cfg := &SourceConfig{
		CSVPath: getEnv("NETFLIX_CSV_PATH", "netflix_titles.csv"),
		Limit:   getEnvAsInt("NETFLIX_CSV_LIMIT", 0),
	}

	return cfg, nil
}

// Validate checks the source settings. Existence of the file itself is
// checked by the extractor when it opens the path, so commands that never
// touch the CSV still start with a missing file.
func (c *SourceConfig) Validate() error {
	if c.CSVPath == "" {
		return errors.New("source CSV path is required")
	}
	if c.Limit < 0 {
		return errors.New("source limit cannot be negative")
	}

	return nil
}
