package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/baykovr/blogforge/internal/history"
	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/notify"
	"github.com/baykovr/blogforge/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override the configured output directory"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	outputDir := cfg.Output.Directory
	if b.Output != "" {
		outputDir = b.Output
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	publisher, err := notify.NewPublisher(cfg.Notify)
	if err != nil {
		slog.Warn("notifications unavailable", logfields.Error(err))
	}
	defer publisher.Close()

	ctx := context.Background()
	generator := site.NewGenerator(cfg, outputDir)
	report, buildErr := generator.Build(ctx)

	if report != nil {
		rec := history.Record{
			BuildID:    report.BuildID,
			StartedAt:  report.StartedAt,
			FinishedAt: report.FinishedAt,
			Outcome:    report.Outcome,
			Posts:      report.Posts,
		}
		if buildErr != nil {
			rec.Error = buildErr.Error()
		}
		if err := store.Record(ctx, rec); err != nil {
			slog.Warn("record build history", logfields.Error(err))
		}
		event := notify.BuildEvent{
			BuildID:    report.BuildID,
			Outcome:    report.Outcome,
			Posts:      report.Posts,
			DurationMS: float64(report.Duration()) / float64(time.Millisecond),
			Error:      rec.Error,
		}
		if err := publisher.Publish(event); err != nil {
			slog.Warn("publish build event", logfields.Error(err))
		}
	}

	if buildErr != nil {
		return buildErr
	}
	fmt.Printf("built %d posts into %s\n", report.Posts, outputDir)
	return nil
}
