// pkg/cli/handlers.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Prabhav9252/netflix-elt/pkg/analysis"
	"github.com/Prabhav9252/netflix-elt/pkg/config"
	"github.com/Prabhav9252/netflix-elt/pkg/connector"
	"github.com/Prabhav9252/netflix-elt/pkg/pipeline"
	"github.com/Prabhav9252/netflix-elt/pkg/quality"
	"github.com/Prabhav9252/netflix-elt/pkg/transform"
)

// loadConfig reads the environment configuration and layers the flag
// overrides on top. Loading happens here rather than in main so that
// --help and dry runs work without database credentials in the
// environment.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, opts)
	return cfg, nil
}

// applyOverrides copies flag values over the environment configuration.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.CSVPath != "" {
		cfg.Source.CSVPath = opts.CSVPath
	}
	if opts.Limit > 0 {
		cfg.Source.Limit = opts.Limit
	}
	if opts.ReportPath != "" {
		cfg.ReportPath = opts.ReportPath
	}
}

// connect opens and validates the database connection.
func connect(ctx context.Context, cfg *config.Config) (*connector.PostgresConnector, error) {
	conn, err := connector.NewPostgresConnector(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := conn.Validate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database validation failed: %w", err)
	}
	return conn, nil
}

func runLoad(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	stats, err := pipeline.NewLoader(cfg, conn).Run(ctx, uuid.New().String())
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d rows into %s (extracted %d, dropped %d, %d cleaning operations)\n",
		stats.RowsLoaded, pipeline.RawTableName, stats.RowsExtracted, stats.RowsDropped, stats.CleaningOperations)
	return nil
}

func runTransform(ctx context.Context, opts *Options) error {
	// A dry run needs no database, so skip configuration loading and
	// fall back on the schema environment variable alone.
	if opts.DryRun {
		for _, step := range transform.Steps(os.Getenv("POSTGRES_SCHEMA")) {
			fmt.Printf("-- %s\n%s\n", step.Name, step.SQL)
		}
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	result, err := transform.NewRunner(conn).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Executed %d transformation steps in %s\n", result.Steps, result.Duration.Round(time.Millisecond))
	return nil
}

func runAnalyze(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	report, err := analysis.NewAnalyzer(conn).Run(ctx)
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout); err != nil {
		return err
	}
	if opts.ReportPath != "" {
		return writeJSON(opts.ReportPath, report)
	}
	return nil
}

func runCheck(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	results, failures := quality.NewChecker(conn).RunAll(ctx)
	for _, result := range results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s: %s\n", status, result.Name, result.Detail)
	}

	return failures
}

func runPipeline(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	summary, runErr := pipeline.New(cfg, conn).Run(ctx)

	// The summary reflects what ran even when a phase failed, so write it
	// before deciding the exit status.
	if cfg.ReportPath != "" {
		if err := pipeline.WriteReport(summary, cfg.ReportPath); err != nil {
			if runErr != nil {
				return fmt.Errorf("%w (additionally, the report could not be written: %v)", runErr, err)
			}
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Run %s complete: %d rows loaded, %d transform steps, %d/%d checks passed\n",
		summary.RunID, summary.RowsLoaded, summary.TransformSteps,
		summary.ChecksPassed, summary.ChecksPassed+summary.ChecksFailed)

	if summary.Analysis != nil {
		fmt.Println()
		if err := summary.Analysis.Render(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON writes a value as an indented JSON artifact.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
