package site

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
)

// CacheDirs are generated artifact locations removed by Clean in addition to
// the configured output directory. The generator maintains resources/ as its
// asset cache.
var CacheDirs = []string{"resources"}

// Clean removes the output directory and generator caches. Content documents
// are never touched: every target is checked against the content directory
// before removal.
func Clean(cfg *config.Config) error {
	targets := append([]string{cfg.Output.Directory}, CacheDirs...)
	if cfg.Output.StagingDir != "" {
		targets = append(targets, cfg.Output.StagingDir)
	}
	for _, target := range targets {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			continue
		}
		if err := guardContentPath(target, cfg.Content.Dir); err != nil {
			return fmt.Errorf("clean aborted: %w", err)
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
		slog.Info("removed generated artifacts", logfields.Path(target))
	}
	return nil
}
