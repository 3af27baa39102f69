package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
)

const reloadDebounce = 2 * time.Second

// watchConfig reloads the daemon configuration when the config file
// changes on disk. Watching the parent directory survives editors that
// replace the file instead of writing in place.
func (d *Daemon) watchConfig(ctx context.Context) (func(), error) {
	absPath, err := filepath.Abs(d.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}
	slog.Info("watching configuration", logfields.Path(absPath))

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != absPath {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() { d.reloadConfig() })
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", logfields.Error(err))
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

// reloadConfig swaps in the new configuration when it parses and
// validates. An invalid file keeps the previous configuration running.
func (d *Daemon) reloadConfig() {
	cfg, err := config.Load(d.cfgPath)
	if err != nil {
		slog.Warn("config reload rejected", logfields.Path(d.cfgPath), logfields.Error(err))
		return
	}

	d.mu.Lock()
	old := d.cfg
	d.cfg = cfg
	d.mu.Unlock()

	if old.Daemon.RebuildInterval != cfg.Daemon.RebuildInterval {
		slog.Info("rebuild interval changed, restart the daemon to apply",
			slog.Duration("interval", cfg.Daemon.RebuildInterval))
	}
	slog.Info("configuration reloaded", logfields.Path(d.cfgPath))
}
