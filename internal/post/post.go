package post

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Metadata is the front matter contract every post must satisfy before the
// external generator sees it.
type Metadata struct {
	Title      string    `yaml:"title"`
	Date       time.Time `yaml:"date"`
	Categories []string  `yaml:"categories"`
	Draft      bool      `yaml:"draft"`
	Slug       string    `yaml:"slug"`
	Summary    string    `yaml:"summary"`
}

// Validate checks the fields the generator requires: non-empty title, a real
// date, and no blank category entries.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required.Error("title is required")),
		validation.Field(&m.Date, validation.Required.Error("date is required")),
		validation.Field(&m.Categories, validation.Each(validation.Required.Error("category entries must be non-empty"))),
	)
}

// Post is a single authored markdown document: metadata plus body, tied to
// its source file.
type Post struct {
	Meta Metadata
	Body []byte
	Path string // source file path
}

// Slug returns the explicit slug when set, otherwise one derived from the title.
func (p *Post) Slug() string {
	if p.Meta.Slug != "" {
		return p.Meta.Slug
	}
	return Slugify(p.Meta.Title)
}

// Future reports whether the post is dated after now.
func (p *Post) Future(now time.Time) bool {
	return p.Meta.Date.After(now)
}

// Parse decodes a post document: typed front matter followed by the body.
func Parse(path string, content []byte) (*Post, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter of %s: %w", path, err)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid front matter in %s: %w", path, err)
	}
	return &Post{Meta: meta, Body: body, Path: path}, nil
}

// ParseFile reads and parses a post from disk.
func ParseFile(path string) (*Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", path, err)
	}
	return Parse(path, content)
}
