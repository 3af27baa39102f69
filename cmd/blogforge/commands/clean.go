package commands

import (
	"fmt"

	"github.com/baykovr/blogforge/internal/site"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := site.Clean(cfg); err != nil {
		return err
	}
	fmt.Println("cleaned output and caches")
	return nil
}
