package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baykovr/blogforge/internal/frontmatter"
	"github.com/baykovr/blogforge/internal/post"
)

// FrontMatterRule validates that every post declares the metadata fields the
// external generator requires: non-empty title, valid date, category list.
type FrontMatterRule struct{}

// Name returns the rule identifier.
func (r *FrontMatterRule) Name() string { return "frontmatter-fields" }

// AppliesTo returns true for markdown content files.
func (r *FrontMatterRule) AppliesTo(filePath string) bool { return IsContentFile(filePath) }

// Check validates the front matter block.
func (r *FrontMatterRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	meta, _, had, _, err := frontmatter.Split(content)
	if err != nil {
		return []Issue{{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  err.Error(),
		}}, nil
	}
	if !had {
		return []Issue{{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "missing front matter block",
			Fix:      "add a `---` delimited YAML header with title, date and categories",
		}}, nil
	}

	fields, err := frontmatter.ParseYAML(meta)
	if err != nil {
		return []Issue{{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("front matter is not valid YAML: %v", err),
		}}, nil
	}

	var issues []Issue
	issues = append(issues, r.checkTitle(filePath, fields)...)
	issues = append(issues, r.checkDate(filePath, fields)...)
	issues = append(issues, r.checkCategories(filePath, fields)...)
	return issues, nil
}

func (r *FrontMatterRule) checkTitle(filePath string, fields map[string]any) []Issue {
	v, ok := fields["title"]
	if !ok || v == nil {
		suggested := post.TitleFromFilename(filepath.Base(filePath))
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: "missing title", Fix: fmt.Sprintf("add `title: %s` to the front matter", suggested)}}
	}
	if s, ok := v.(string); !ok || strings.TrimSpace(s) == "" {
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: "title must be a non-empty string"}}
	}
	return nil
}

// dateLayouts are the formats accepted for string-typed dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"}

func (r *FrontMatterRule) checkDate(filePath string, fields map[string]any) []Issue {
	v, ok := fields["date"]
	if !ok || v == nil {
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: "missing date", Fix: "add `date: YYYY-MM-DD` to the front matter"}}
	}
	switch d := v.(type) {
	case time.Time:
		return nil
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, d); err == nil {
				return nil
			}
		}
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: fmt.Sprintf("unparseable date %q", d)}}
	default:
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: fmt.Sprintf("date has unexpected type %T", v)}}
	}
}

func (r *FrontMatterRule) checkCategories(filePath string, fields map[string]any) []Issue {
	v, ok := fields["categories"]
	if !ok || v == nil {
		return []Issue{{FilePath: filePath, Severity: SeverityWarning, Rule: r.Name(),
			Message: "missing categories list", Fix: "add `categories: [...]` to the front matter"}}
	}
	list, ok := v.([]any)
	if !ok {
		return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
			Message: "categories must be a list"}}
	}
	for _, item := range list {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return []Issue{{FilePath: filePath, Severity: SeverityError, Rule: r.Name(),
				Message: "categories entries must be non-empty strings"}}
		}
	}
	return nil
}
