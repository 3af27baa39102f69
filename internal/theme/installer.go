// Package theme installs and updates the configured site theme from its git
// repository, the dependency half of the build wrapper.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/baykovr/blogforge/internal/config"
	"github.com/baykovr/blogforge/internal/logfields"
)

const maxAttempts = 3

// Installer manages theme checkouts under themesDir.
type Installer struct {
	themesDir string
}

// NewInstaller creates an installer rooted at themesDir (usually "themes").
func NewInstaller(themesDir string) *Installer {
	if themesDir == "" {
		themesDir = "themes"
	}
	return &Installer{themesDir: themesDir}
}

// Install clones the theme repository, or updates it when already present.
// Transient network failures are retried with backoff. Returns the checkout path.
func (i *Installer) Install(ctx context.Context, tc config.ThemeConfig) (string, error) {
	if tc.Name == "" {
		return "", errors.New("theme.name is not configured")
	}
	if tc.Repo == "" {
		return "", fmt.Errorf("theme %q has no repo configured", tc.Name)
	}

	dest := filepath.Join(i.themesDir, tc.Name)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var err error
		if _, statErr := os.Stat(filepath.Join(dest, ".git")); statErr == nil {
			err = i.update(ctx, dest, tc)
		} else {
			err = i.clone(ctx, dest, tc)
		}
		if err == nil {
			return dest, nil
		}
		lastErr = err
		if !transient(err) || attempt == maxAttempts {
			break
		}
		backoff := time.Duration(attempt) * 2 * time.Second
		slog.Warn("theme operation failed, retrying",
			logfields.Theme(tc.Name), slog.Int("attempt", attempt), logfields.Error(err))
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
	return "", lastErr
}

func (i *Installer) clone(ctx context.Context, dest string, tc config.ThemeConfig) error {
	slog.Info("cloning theme", logfields.Theme(tc.Name), logfields.URL(tc.Repo), logfields.Path(dest))
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("remove stale theme directory: %w", err)
	}

	opts := &git.CloneOptions{URL: tc.Repo}
	if tc.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + tc.Branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return classifyError(tc.Repo, err)
	}
	if ref, herr := repo.Head(); herr == nil {
		slog.Info("theme installed", logfields.Theme(tc.Name), slog.String("commit", ref.Hash().String()[:8]))
	}
	return nil
}

func (i *Installer) update(ctx context.Context, dest string, tc config.ThemeConfig) error {
	slog.Info("updating theme", logfields.Theme(tc.Name), logfields.Path(dest))

	repo, err := git.PlainOpen(dest)
	if err != nil {
		return fmt.Errorf("open theme repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("theme worktree: %w", err)
	}

	pullOpts := &git.PullOptions{RemoteName: "origin"}
	if tc.Branch != "" {
		pullOpts.ReferenceName = plumbing.ReferenceName("refs/heads/" + tc.Branch)
		pullOpts.SingleBranch = true
	}
	if err := wt.PullContext(ctx, pullOpts); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			slog.Info("theme already up to date", logfields.Theme(tc.Name))
			return nil
		}
		return classifyError(tc.Repo, err)
	}
	return nil
}
