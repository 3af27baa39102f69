package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/baykovr/blogforge/internal/sitecheck"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir    string `short:"d" help:"Rendered site directory (defaults to the configured output)"`
	Format string `help:"Output format (text or json)" default:"text" enum:"text,json"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	dir := c.Dir
	if dir == "" {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		dir = cfg.Output.Directory
	}

	result, err := sitecheck.NewChecker(dir).Run()
	if err != nil {
		return err
	}

	if c.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		for _, broken := range result.Broken {
			fmt.Printf("broken link in %s: %s\n", broken.SourceFile, broken.Target)
		}
		fmt.Printf("%d pages scanned, %d links checked, %d broken\n",
			result.PagesScanned, result.LinksChecked, len(result.Broken))
	}

	if !result.OK() {
		return fmt.Errorf("%d broken internal links", len(result.Broken))
	}
	return nil
}
