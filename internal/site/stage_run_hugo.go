package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/baykovr/blogforge/internal/logfields"
)

// EnvSkipHugo disables the external generator invocation when set to "1".
// Used by test environments without a hugo binary; the rest of the pipeline
// (feeds, report) still runs.
const EnvSkipHugo = "BLOGFORGE_SKIP_HUGO"

// ExitStatusError carries the external generator's exit code so command
// wrappers can terminate with the same status.
type ExitStatusError struct {
	Code int
	Err  error
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("hugo exited with status %d: %v", e.Code, e.Err)
}
func (e *ExitStatusError) Unwrap() error { return e.Err }

// ExitCode extracts the external command's exit status from an error chain.
// It returns 0 for nil and 1 for errors that carry no status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitStatusError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

// stageRunHugo invokes the external generator against the staging site root,
// rendering into the output directory. Its stdout/stderr pass through
// unmodified and its exit status is preserved in the error chain.
func stageRunHugo(ctx context.Context, bs *BuildState) error {
	if os.Getenv(EnvSkipHugo) == "1" {
		slog.Info("skipping hugo invocation", slog.String("reason", EnvSkipHugo+"=1"))
		bs.Report.RenderSkipped = true
		return nil
	}

	hugoPath, err := exec.LookPath("hugo")
	if err != nil {
		return newFatalStageError(StageRunHugo, fmt.Errorf("hugo binary not found in PATH (install it or set %s=1): %w", EnvSkipHugo, err))
	}

	absOut, err := filepath.Abs(bs.Generator.outputDir)
	if err != nil {
		return newFatalStageError(StageRunHugo, err)
	}

	cmd := exec.CommandContext(ctx, hugoPath, "--destination", absOut)
	cmd.Dir = bs.SiteRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("running hugo", logfields.Path(bs.SiteRoot), slog.String("destination", absOut))
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return newFatalStageError(StageRunHugo, &ExitStatusError{Code: ee.ExitCode(), Err: err})
		}
		return newFatalStageError(StageRunHugo, fmt.Errorf("hugo command failed: %w", err))
	}
	return nil
}
