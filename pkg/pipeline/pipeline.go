// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/analysis"
	"github.com/Prabhav9252/netflix-elt/pkg/config"
	"github.com/Prabhav9252/netflix-elt/pkg/connector"
	"github.com/Prabhav9252/netflix-elt/pkg/quality"
	"github.com/Prabhav9252/netflix-elt/pkg/transform"
)

// Pipeline executes the full run: load, transform, check, analyze. Phases run
// strictly in order, one at a time; the first failure stops the run.
type Pipeline struct {
	cfg    *config.Config
	conn   *connector.PostgresConnector
	logger *zap.Logger
}

// New creates a pipeline bound to a connected database
func New(cfg *config.Config, conn *connector.PostgresConnector) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		conn:   conn,
		logger: zap.L().Named("pipeline"),
	}
}

// Run executes every phase in order. The returned summary always reflects
// what ran, including a failed final phase.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	summary := NewRunSummary()
	p.logger.Info("Starting pipeline run", zap.String("run_id", summary.RunID))

	// Load
	phase := NewPhaseResult(PhaseLoad)
	stats, err := NewLoader(p.cfg, p.conn).Run(ctx, summary.RunID)
	if err != nil {
		return p.fail(summary, phase, fmt.Errorf("load phase failed: %w", err))
	}
	summary.RowsExtracted = stats.RowsExtracted
	summary.RowsLoaded = stats.RowsLoaded
	summary.RowsDropped = stats.RowsDropped
	summary.CleaningOperations = stats.CleaningOperations
	phase.Complete(true, fmt.Sprintf("%d rows loaded", stats.RowsLoaded))
	summary.AddPhase(phase)

	// Transform
	phase = NewPhaseResult(PhaseTransform)
	transformResult, err := transform.NewRunner(p.conn).Run(ctx)
	if err != nil {
		return p.fail(summary, phase, fmt.Errorf("transform phase failed: %w", err))
	}
	summary.TransformSteps = transformResult.Steps
	phase.Complete(true, fmt.Sprintf("%d steps executed", transformResult.Steps))
	summary.AddPhase(phase)

	// Check: failed acceptance checks stop the run before analysis, since a
	// report over rejected data would mislead.
	phase = NewPhaseResult(PhaseCheck)
	checkResults, failures := quality.NewChecker(p.conn).RunAll(ctx)
	summary.AddChecks(checkResults)
	if failures != nil {
		return p.fail(summary, phase, fmt.Errorf("acceptance checks failed: %w", failures))
	}
	phase.Complete(true, fmt.Sprintf("%d checks passed", summary.ChecksPassed))
	summary.AddPhase(phase)

	// Analyze
	phase = NewPhaseResult(PhaseAnalyze)
	report, err := analysis.NewAnalyzer(p.conn).Run(ctx)
	if err != nil {
		return p.fail(summary, phase, fmt.Errorf("analyze phase failed: %w", err))
	}
	summary.Analysis = report
	phase.Complete(true, "report generated")
	summary.AddPhase(phase)

	summary.Complete()
	p.logger.Info("Pipeline run complete",
		zap.String("run_id", summary.RunID),
		zap.Int64("rows_loaded", summary.RowsLoaded),
		zap.Float64("duration_seconds", summary.DurationSeconds))

	return summary, nil
}

// fail records the failed phase, closes out the summary, and passes the
// phase error through.
func (p *Pipeline) fail(summary *RunSummary, phase *PhaseResult, err error) (*RunSummary, error) {
	phase.Complete(false, err.Error())
	summary.AddPhase(phase)
	summary.Complete()

	p.logger.Error("Pipeline run failed",
		zap.String("run_id", summary.RunID),
		zap.String("phase", phase.Phase),
		zap.Error(err))

	return summary, err
}
