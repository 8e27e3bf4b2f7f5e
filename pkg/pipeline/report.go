// pkg/pipeline/report.go
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// WriteReport writes the run summary as a JSON artifact. The parent directory
// is created if needed.
func WriteReport(summary *RunSummary, path string) error {
	if path == "" {
		return fmt.Errorf("report path cannot be empty")
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	zap.L().Named("pipeline").Info("Wrote run report",
		zap.String("path", path),
		zap.Int("bytes", len(data)))

	return nil
}
