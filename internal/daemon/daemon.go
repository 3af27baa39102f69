// Package daemon runs unattended periodic rebuilds: a scheduler triggers
// builds at the configured interval, outcomes land in the history store,
// and completed builds are announced over NATS when notifications are on.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/history"
	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/metrics"
	"github.com/baykovr/blogforge/internal/notify"
	"github.com/baykovr/blogforge/internal/site"
)

// Daemon owns the scheduler and the build side effects.
type Daemon struct {
	cfgPath string

	mu  sync.RWMutex
	cfg *config.Config

	store     *history.Store
	publisher *notify.Publisher
	scheduler gocron.Scheduler
	registry  *prom.Registry
	recorder  metrics.Recorder
}

func New(cfgPath string, cfg *config.Config) (*Daemon, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	publisher, err := notify.NewPublisher(cfg.Notify)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	d := &Daemon{
		cfgPath:   cfgPath,
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		scheduler: scheduler,
	}
	if cfg.Serve.Metrics {
		d.registry = prom.NewRegistry()
		d.recorder = metrics.NewPrometheusRecorder(d.registry)
	}
	return d, nil
}

func (d *Daemon) config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Run blocks until ctx is canceled. An initial build runs immediately,
// then the scheduler takes over at the configured interval.
func (d *Daemon) Run(ctx context.Context) error {
	interval := d.config().Daemon.RebuildInterval
	job, err := d.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(d.runBuild, ctx),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	slog.Info("daemon started", "job_id", job.ID().String(),
		slog.Duration("interval", interval))

	d.scheduler.Start()
	d.runBuild(ctx)

	stopWatch, err := d.watchConfig(ctx)
	if err != nil {
		slog.Warn("config watch unavailable", logfields.Error(err))
	} else {
		defer stopWatch()
	}

	metricsServer := d.startMetricsServer()

	<-ctx.Done()
	return d.shutdown(metricsServer)
}

// startMetricsServer exposes /metrics and /healthz when metrics are
// enabled. Returns nil otherwise.
func (d *Daemon) startMetricsServer() *http.Server {
	if d.registry == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(d.config().Serve.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("metrics endpoint listening", logfields.Port(d.config().Serve.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("metrics server", logfields.Error(err))
		}
	}()
	return srv
}

func (d *Daemon) shutdown(metricsServer *http.Server) error {
	slog.Info("daemon stopping")
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", logfields.Error(err))
		}
	}
	if err := d.scheduler.Shutdown(); err != nil {
		slog.Warn("scheduler shutdown", logfields.Error(err))
	}
	d.publisher.Close()
	if err := d.store.Close(); err != nil {
		slog.Warn("history store close", logfields.Error(err))
	}
	return nil
}

func (d *Daemon) runBuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	cfg := d.config()
	generator := site.NewGenerator(cfg, cfg.Output.Directory)
	if d.recorder != nil {
		generator.SetRecorder(d.recorder)
	}

	report, buildErr := generator.Build(ctx)
	if report == nil {
		slog.Error("scheduled build failed before producing a report", logfields.Error(buildErr))
		return
	}

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
	if err := d.store.Record(ctx, rec); err != nil {
		slog.Warn("record build history", logfields.Error(err))
	}

	event := notify.BuildEvent{
		BuildID:    report.BuildID,
		Outcome:    report.Outcome,
		Posts:      report.Posts,
		DurationMS: float64(report.Duration()) / float64(time.Millisecond),
		Error:      rec.Error,
	}
	if err := d.publisher.Publish(event); err != nil {
		slog.Warn("publish build event", logfields.Error(err))
	}

	if buildErr != nil {
		slog.Warn("scheduled build failed", logfields.BuildID(report.BuildID), logfields.Error(buildErr))
		return
	}
	slog.Info("scheduled build complete", logfields.BuildID(report.BuildID),
		"posts", report.Posts, logfields.DurationMS(event.DurationMS))
}
