package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReportFilename is the report written next to the rendered site.
const ReportFilename = "build-report.json"

// Report summarizes one build for humans, the history store, and notifiers.
type Report struct {
	BuildID          string             `json:"build_id"`
	StartedAt        time.Time          `json:"started_at"`
	FinishedAt       time.Time          `json:"finished_at"`
	Outcome          string             `json:"outcome"` // success|failed|canceled
	Posts            int                `json:"posts"`
	RenderSkipped    bool               `json:"render_skipped,omitempty"`
	StageDurationsMS map[string]float64 `json:"stage_durations_ms"`
	Errors           []string           `json:"errors,omitempty"`
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{
		BuildID:          buildID,
		StartedAt:        start,
		StageDurationsMS: make(map[string]float64),
	}
}

func (r *Report) finish(outcome string, end time.Time) {
	r.Outcome = outcome
	r.FinishedAt = end
}

// Duration returns the wall-clock build duration.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// stageWriteReport persists the report into the output directory. The report
// is advisory; failure to write it is a warning, not a build failure.
func stageWriteReport(_ context.Context, bs *BuildState) error {
	// Outcome and timings of this very stage can't be in the file; the
	// snapshot covers everything up to here.
	data, err := json.MarshalIndent(bs.Report, "", "  ")
	if err != nil {
		return newWarnStageError(StageWriteReport, fmt.Errorf("marshal report: %w", err))
	}
	path := filepath.Join(bs.Generator.outputDir, ReportFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newWarnStageError(StageWriteReport, fmt.Errorf("write report: %w", err))
	}
	return nil
}
