// Package site assembles a staging site tree from the content store and
// drives the external generator (Hugo) against it through a staged pipeline.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/metrics"
	"github.com/baykovr/blogforge/internal/workspace"
)

// Generator owns one build: configuration in, rendered site plus report out.
type Generator struct {
	cfg       *config.Config
	outputDir string
	recorder  metrics.Recorder
	now       func() time.Time
}

// NewGenerator creates a generator targeting outputDir.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	return &Generator{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
}

// SetRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// Config exposes the underlying configuration (read-only usage).
func (g *Generator) Config() *config.Config { return g.cfg }

// OutputDir returns the final output directory.
func (g *Generator) OutputDir() string { return g.outputDir }

// Build runs the full staged pipeline. The returned report is non-nil even
// when the build fails; the error is the first fatal stage error.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	report := newReport(uuid.NewString(), g.now())
	slog.Info("starting site build", logfields.BuildID(report.BuildID), logfields.Path(g.outputDir))

	var ws *workspace.Manager
	if staging := g.cfg.Output.StagingDir; staging != "" {
		ws = workspace.NewPersistentManager(filepath.Dir(staging), filepath.Base(staging))
	} else {
		ws = workspace.NewManager("")
	}
	if err := ws.Create(); err != nil {
		report.finish("failed", g.now())
		return report, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("failed to cleanup workspace", logfields.Error(err))
		}
	}()

	siteRoot, err := ws.CreateSubdir("site")
	if err != nil {
		report.finish("failed", g.now())
		return report, err
	}

	bs := &BuildState{Generator: g, SiteRoot: siteRoot, Report: report}
	stages := []StageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StageDiscoverPosts, stageDiscoverPosts},
		{StageGenerateConfig, stageGenerateConfig},
		{StageCopyContent, stageCopyContent},
		{StageRunHugo, stageRunHugo},
		{StageWriteFeeds, stageWriteFeeds},
		{StageWriteReport, stageWriteReport},
	}

	runErr := runStages(ctx, bs, stages)

	outcome := "success"
	if runErr != nil {
		outcome = "failed"
		var se *StageError
		if errors.As(runErr, &se) && se.Kind == StageErrorCanceled {
			outcome = "canceled"
		}
	}
	report.finish(outcome, g.now())
	g.recorder.ObserveBuildDuration(report.Duration())
	g.recorder.IncBuildOutcome(outcome)
	g.recorder.SetPostsPublished(report.Posts)

	if runErr != nil {
		return report, runErr
	}
	slog.Info("site build finished",
		logfields.BuildID(report.BuildID),
		slog.Int("posts", report.Posts),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return report, nil
}
