package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/baykovr/blogforge/internal/config"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command grammar.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blogforge.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Initialize a new blog configuration file"`
	Install InstallCmd `cmd:"" help:"Install or update the configured theme"`
	Build   BuildCmd   `cmd:"" help:"Build the site into the output directory"`
	Serve   ServeCmd   `cmd:"" help:"Serve the site locally with live reload"`
	Clean   CleanCmd   `cmd:"" help:"Remove generated output and build caches"`
	New     NewCmd     `cmd:"" help:"Create a new post with front matter scaffolding"`
	Lint    LintCmd    `cmd:"" help:"Check content files for front matter and link problems"`
	Check   CheckCmd   `cmd:"" help:"Verify internal links in the rendered site"`
	History HistoryCmd `cmd:"" help:"Show recent build history"`
	Daemon  DaemonCmd  `cmd:"" help:"Run periodic rebuilds in the background"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
