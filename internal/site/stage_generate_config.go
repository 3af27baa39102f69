package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// stageGenerateConfig emits the generator configuration (hugo.yaml) into the
// staging site root. Only the fields this tool owns are written; theming
// internals stay with the theme.
func stageGenerateConfig(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg

	root := map[string]any{
		"title":        cfg.Site.Title,
		"baseURL":      cfg.Site.BaseURL,
		"languageCode": cfg.Site.Language,
		"taxonomies": map[string]any{
			"category": "categories",
		},
		// Filtering already happened at discovery; keep the generator's own
		// filters aligned so direct hugo runs behave the same.
		"buildDrafts": cfg.Content.Drafts,
		"buildFuture": cfg.Content.Future,
	}
	if cfg.Site.Description != "" {
		root["params"] = map[string]any{"description": cfg.Site.Description, "author": cfg.Site.Author}
	}
	if cfg.Theme.Name != "" {
		root["theme"] = cfg.Theme.Name
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return newFatalStageError(StageGenerateConfig, fmt.Errorf("marshal generator config: %w", err))
	}

	path := filepath.Join(bs.SiteRoot, "hugo.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newFatalStageError(StageGenerateConfig, fmt.Errorf("write %s: %w", path, err))
	}
	return nil
}
