package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/metrics"
	"github.com/baykovr/blogforge/internal/site"
)

// buildStatus tracks the last build result for the health endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (err error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild
}

// Server serves the generated site locally, watching the content tree and
// rebuilding on change with LiveReload notifications.
type Server struct {
	cfg       *config.Config
	generator *site.Generator
	hub       *LiveReloadHub
	registry  *prom.Registry
	status    buildStatus
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	generator := site.NewGenerator(cfg, cfg.Output.Directory)
	if cfg.Serve.Metrics {
		s.registry = prom.NewRegistry()
		recorder := metrics.NewPrometheusRecorder(s.registry)
		generator.SetRecorder(recorder)
		s.hub = NewLiveReloadHub(recorder)
	} else {
		s.hub = NewLiveReloadHub(nil)
	}
	s.generator = generator
	return s
}

// Run blocks until ctx is canceled, serving the site on the configured port.
func (s *Server) Run(ctx context.Context) error {
	report, err := s.generator.Build(ctx)
	if err != nil {
		slog.Error("initial build failed", logfields.Error(err))
		s.status.setError(err)
	} else {
		s.finishBuild(report)
	}

	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.Serve.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("serving site", logfields.Port(s.cfg.Serve.Port),
			logfields.URL(fmt.Sprintf("http://localhost:%d", s.cfg.Serve.Port)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	watcher, err := newWatcher(s.cfg.Content.Dir, "static", "themes")
	if err != nil {
		_ = httpServer.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := newDebouncer()
	s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case err := <-serveErr:
			return fmt.Errorf("http server: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	if s.cfg.Serve.LiveReload {
		mux.Handle("/livereload", s.hub)
		mux.HandleFunc("/livereload.js", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/javascript")
			_, _ = w.Write([]byte(LiveReloadScript))
		})
	}
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	mux.Handle("/", http.FileServer(http.Dir(s.generator.OutputDir())))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	lastErr, hasGoodBuild := s.status.snapshot()
	payload := map[string]any{
		"status":             "ok",
		"has_good_build":     hasGoodBuild,
		"livereload_clients": s.hub.ClientCount(),
	}
	code := http.StatusOK
	if lastErr != nil {
		payload["status"] = "degraded"
		payload["last_error"] = lastErr.Error()
		if !hasGoodBuild {
			code = http.StatusServiceUnavailable
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// startRebuildWorker processes rebuild requests one at a time. Requests
// that arrive while a build is running are coalesced into a single
// follow-up build.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				s.rebuild(ctx)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) rebuild(ctx context.Context) {
	slog.Info("change detected, rebuilding site")
	report, err := s.generator.Build(ctx)
	if err != nil {
		slog.Warn("rebuild failed", logfields.Error(err))
		s.status.setError(err)
		s.hub.Broadcast(fmt.Sprintf("error:%d", time.Now().UnixNano()))
		return
	}
	s.finishBuild(report)
}

// finishBuild records success, tags rendered pages with the livereload
// script, and notifies connected browsers.
func (s *Server) finishBuild(report *site.Report) {
	s.status.setSuccess()
	if s.cfg.Serve.LiveReload {
		if err := injectLiveReload(s.generator.OutputDir()); err != nil {
			slog.Debug("livereload injection skipped", logfields.Error(err))
		}
	}
	s.hub.Broadcast(report.BuildID)
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("shutting down server")
	s.hub.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http server shutdown", logfields.Error(err))
	}
	return nil
}
