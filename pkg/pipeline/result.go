// pkg/pipeline/result.go
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/Prabhav9252/netflix-elt/pkg/analysis"
	"github.com/Prabhav9252/netflix-elt/pkg/quality"
)

// Pipeline phase names, in execution order.
const (
	PhaseLoad      = "load"
	PhaseTransform = "transform"
	PhaseCheck     = "check"
	PhaseAnalyze   = "analyze"
)

// PhaseResult represents the result of one pipeline phase
type PhaseResult struct {
	Phase           string    `json:"phase"`
	Success         bool      `json:"success"`
	Detail          string    `json:"detail,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// NewPhaseResult initializes a result for a phase that starts now
func NewPhaseResult(phase string) *PhaseResult {
	return &PhaseResult{
		Phase:     phase,
		StartTime: time.Now(),
	}
}

// Complete marks the phase as finished and calculates its duration
func (r *PhaseResult) Complete(success bool, detail string) {
	r.EndTime = time.Now()
	r.DurationSeconds = r.EndTime.Sub(r.StartTime).Seconds()
	r.Success = success
	r.Detail = detail
}

// Duration returns the elapsed phase time.
func (r *PhaseResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// RunSummary is the final summary of a pipeline run
type RunSummary struct {
	RunID              string                `json:"run_id"`
	StartTime          time.Time             `json:"start_time"`
	EndTime            time.Time             `json:"end_time"`
	DurationSeconds    float64               `json:"duration_seconds"`
	RowsExtracted      int64                 `json:"rows_extracted"`
	RowsLoaded         int64                 `json:"rows_loaded"`
	RowsDropped        int64                 `json:"rows_dropped"`
	CleaningOperations int                   `json:"cleaning_operations"`
	TransformSteps     int                   `json:"transform_steps"`
	ChecksPassed       int                   `json:"checks_passed"`
	ChecksFailed       int                   `json:"checks_failed"`
	RowsPerSecond      float64               `json:"rows_per_second"`
	Phases             []PhaseResult         `json:"phases"`
	Checks             []quality.CheckResult `json:"checks,omitempty"`
	Analysis           *analysis.Report      `json:"analysis,omitempty"`
}

// NewRunSummary initializes a summary for a run that starts now
func NewRunSummary() *RunSummary {
	return &RunSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		Phases:    make([]PhaseResult, 0, 4),
	}
}

// AddPhase incorporates a completed phase result into the summary
func (s *RunSummary) AddPhase(result *PhaseResult) {
	s.Phases = append(s.Phases, *result)
}

// AddChecks incorporates acceptance check results into the summary
func (s *RunSummary) AddChecks(results []quality.CheckResult) {
	s.Checks = results
	for _, r := range results {
		if r.Passed {
			s.ChecksPassed++
		} else {
			s.ChecksFailed++
		}
	}
}

// Complete marks the run as finished and calculates the totals
func (s *RunSummary) Complete() {
	s.EndTime = time.Now()
	s.DurationSeconds = s.EndTime.Sub(s.StartTime).Seconds()

	for _, phase := range s.Phases {
		if phase.Phase == PhaseLoad && phase.DurationSeconds > 0 {
			s.RowsPerSecond = float64(s.RowsLoaded) / phase.DurationSeconds
		}
	}
}

// Succeeded reports whether every recorded phase completed successfully.
func (s *RunSummary) Succeeded() bool {
	for _, phase := range s.Phases {
		if !phase.Success {
			return false
		}
	}
	return len(s.Phases) > 0
}
