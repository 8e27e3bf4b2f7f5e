// pkg/transform/runner.go
package transform

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/connector"
)

// Runner executes the transformation sequence against the loaded raw table
type Runner struct {
	conn   *connector.PostgresConnector
	logger *zap.Logger
}

// NewRunner creates a new transformation runner
func NewRunner(conn *connector.PostgresConnector) *Runner {
	return &Runner{
		conn:   conn,
		logger: zap.L().Named("transform"),
	}
}

// Result summarizes a completed transformation run
type Result struct {
	Steps    int
	Duration time.Duration
}

// Run executes every transformation step in order inside one transaction.
// A failed step rolls the whole run back, leaving whatever tables the
// previous run produced untouched.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	steps := Steps(r.conn.Schema())
	startTime := time.Now()

	r.logger.Info("Starting transformation", zap.Int("steps", len(steps)))

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, step := range steps {
		stepStart := time.Now()

		stepCtx, cancel := context.WithTimeout(ctx, r.conn.StatementTimeout())
		result, err := tx.ExecContext(stepCtx, step.SQL)
		cancel()

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transformation",
					zap.String("step", step.Name),
					zap.Error(rbErr))
			}
			return nil, fmt.Errorf("transformation step %s failed: %w", step.Name, err)
		}

		rowsAffected, _ := result.RowsAffected()
		r.logger.Info("Executed transformation step",
			zap.String("step", step.Name),
			zap.Int64("rows_affected", rowsAffected),
			zap.Duration("duration", time.Since(stepStart)))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transformation: %w", err)
	}

	result := &Result{
		Steps:    len(steps),
		Duration: time.Since(startTime),
	}
	r.logger.Info("Transformation complete",
		zap.Int("steps", result.Steps),
		zap.Duration("duration", result.Duration))

	return result, nil
}
