// pkg/config/logging.go
package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildLoggerFromEnv builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Both default sensibly, so logging works before the rest of the
// configuration is loaded or validated. The caller installs the logger with
// zap.ReplaceGlobals.
func BuildLoggerFromEnv() (*zap.Logger, error) {
	levelName := getEnv("LOG_LEVEL", "info")
	format := getEnv("LOG_FORMAT", "json")

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", levelName, err)
	}

	var zapCfg zap.Config
	switch format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	case "json":
		zapCfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be json or console", format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
