package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/baykovr/blogforge/internal/daemon"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct{}

func (c *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	d, err := daemon.New(root.Config, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return d.Run(ctx)
}
