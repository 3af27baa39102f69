package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/metrics"
	"github.com/baykovr/blogforge/internal/post"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // build must abort
	StageErrorWarning  StageErrorKind = "warning"  // non-fatal; record and continue
	StageErrorCanceled StageErrorKind = "canceled" // context cancellation
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Generator *Generator
	SiteRoot  string // staging directory the generator runs against
	Posts     []*post.Post
	Report    *Report
}

// runStages executes stages in order, recording timings and stopping on the
// first fatal or canceled error. Warning errors are recorded and skipped over.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStage(st.Name, 0, se, rec)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		var se *StageError
		if err != nil && !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.recordStage(st.Name, dur, se, rec)

		if se != nil {
			switch se.Kind {
			case StageErrorWarning:
				slog.Warn("stage completed with warning", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
				continue
			default:
				return se
			}
		}
		slog.Debug("stage completed", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}

// recordStage updates report counters and emits metrics for one stage run.
func (r *Report) recordStage(stage StageName, dur time.Duration, se *StageError, rec metrics.Recorder) {
	r.StageDurationsMS[string(stage)] = float64(dur.Milliseconds())
	if rec != nil {
		rec.ObserveStageDuration(string(stage), dur)
	}

	result := metrics.ResultSuccess
	if se != nil {
		r.Errors = append(r.Errors, se.Error())
		switch se.Kind {
		case StageErrorWarning:
			result = metrics.ResultWarning
		case StageErrorCanceled:
			result = metrics.ResultCanceled
		default:
			result = metrics.ResultFatal
		}
	}
	if rec != nil {
		rec.IncStageResult(string(stage), result)
	}
}
