package commands

import (
	"fmt"
	"os"

	"github.com/baykovr/blogforge/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Path   string `arg:"" optional:"" help:"File or directory to lint (defaults to the content directory)"`
	Format string `help:"Output format (text or json)" default:"text" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Only report errors, not warnings"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	path := l.Path
	if path == "" {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		path = cfg.Content.Dir
	}

	linter := lint.NewLinter(&lint.Config{Quiet: l.Quiet, Format: l.Format})
	result, err := linter.LintPath(path)
	if err != nil {
		return err
	}

	if err := lint.NewFormatter(l.Format).Format(os.Stdout, result, path); err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("lint found %d errors", result.ErrorCount())
	}
	return nil
}
