package commands

import (
	"context"
	"fmt"

	"github.com/baykovr/blogforge/internal/theme"
)

// InstallCmd implements the 'install' command.
type InstallCmd struct {
	ThemesDir string `help:"Directory themes are installed into" default:"themes"`
}

func (c *InstallCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	installer := theme.NewInstaller(c.ThemesDir)
	dest, err := installer.Install(context.Background(), cfg.Theme)
	if err != nil {
		return err
	}
	fmt.Printf("theme %s installed at %s\n", cfg.Theme.Name, dest)
	return nil
}
