package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/baykovr/blogforge/internal/logfields"
	"github.com/baykovr/blogforge/internal/post"
)

// stageDiscoverPosts loads and validates every post in the content directory.
// Any document whose front matter fails to parse aborts the build; the
// external generator would otherwise render a silently broken site.
func stageDiscoverPosts(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg

	if st, err := os.Stat(cfg.Content.Dir); err != nil || !st.IsDir() {
		return newFatalStageError(StageDiscoverPosts, fmt.Errorf("content directory not found: %s", cfg.Content.Dir))
	}

	posts, errs := post.LoadDir(cfg.Content.Dir, post.LoadOptions{
		IncludeDrafts: cfg.Content.Drafts,
		IncludeFuture: cfg.Content.Future,
		Now:           bs.Generator.now(),
	})
	if len(errs) > 0 {
		return newFatalStageError(StageDiscoverPosts, errors.Join(errs...))
	}
	if len(posts) == 0 {
		slog.Warn("no posts found", logfields.Path(cfg.Content.Dir))
	}

	bs.Posts = posts
	bs.Report.Posts = len(posts)
	return nil
}
