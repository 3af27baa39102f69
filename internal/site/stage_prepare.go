package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// stagePrepareOutput cleans (when configured) and recreates the output
// directory. Cleaning refuses to touch anything inside the content directory.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator

	if g.cfg.Output.Clean {
		if err := guardContentPath(g.outputDir, g.cfg.Content.Dir); err != nil {
			return newFatalStageError(StagePrepareOutput, err)
		}
		if err := os.RemoveAll(g.outputDir); err != nil {
			return newFatalStageError(StagePrepareOutput, fmt.Errorf("clean output directory: %w", err))
		}
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return newFatalStageError(StagePrepareOutput, fmt.Errorf("create output directory: %w", err))
	}
	return nil
}

// guardContentPath rejects target paths that equal or contain (or live
// inside) the content directory, so destructive operations can never reach
// authored documents.
func guardContentPath(target, contentDir string) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	absContent, err := filepath.Abs(contentDir)
	if err != nil {
		return err
	}
	if absTarget == absContent || isAncestor(absTarget, absContent) || isAncestor(absContent, absTarget) {
		return fmt.Errorf("refusing to remove %s: overlaps content directory %s", absTarget, absContent)
	}
	return nil
}

func isAncestor(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}
