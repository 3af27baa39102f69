package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/baykovr/blogforge/internal/serve"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port    int  `short:"p" help:"Override the configured listen port"`
	Metrics bool `help:"Expose Prometheus metrics at /metrics"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}
	if s.Metrics {
		cfg.Serve.Metrics = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve.NewServer(cfg).Run(ctx)
}
