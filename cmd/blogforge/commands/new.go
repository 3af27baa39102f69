package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/baykovr/blogforge/internal/frontmatter"
	"github.com/baykovr/blogforge/internal/post"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Title      string   `arg:"" help:"Title of the new post"`
	Categories []string `short:"t" help:"Categories for the post"`
	Draft      bool     `help:"Mark the post as a draft"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	slug := post.Slugify(n.Title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", n.Title)
	}
	path := filepath.Join(cfg.Content.Dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("post already exists: %s", path)
	}

	fields := map[string]any{
		"title":      n.Title,
		"date":       time.Now().Truncate(time.Second),
		"categories": n.Categories,
	}
	if len(n.Categories) == 0 {
		fields["categories"] = []string{}
	}
	if n.Draft {
		fields["draft"] = true
	}

	meta, err := frontmatter.SerializeYAML(fields, frontmatter.Style{Newline: "\n", HasTrailingNewline: true})
	if err != nil {
		return fmt.Errorf("serialize front matter: %w", err)
	}
	content := frontmatter.Join(meta, []byte("\n"), true, frontmatter.Style{Newline: "\n", HasTrailingNewline: true})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write post: %w", err)
	}
	fmt.Printf("created %s\n", path)
	return nil
}
