// Package lint validates the content store before the external generator
// runs: front matter contracts, filename conventions, and relative links.
package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Linter performs linting operations on content files.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a linter with the default rule set.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&FilenameRule{},
			&FrontMatterRule{},
			&RelativeLinksRule{},
		},
	}
}

// LintPath lints a file or every content file under a directory.
func (l *Linter) LintPath(path string) (*Result, error) {
	result := &Result{Issues: []Issue{}}

	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if st.IsDir() {
		err = l.lintDirectory(path, result)
	} else {
		err = l.lintFile(path, result)
		result.FilesTotal = 1
	}
	if err != nil {
		return nil, err
	}

	if l.cfg.Quiet {
		filtered := result.Issues[:0]
		for _, issue := range result.Issues {
			if issue.Severity == SeverityError {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
	}
	return result, nil
}

func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsContentFile(path) {
			return nil
		}
		result.FilesTotal++
		return l.lintFile(path, result)
	})
}

func (l *Linter) lintFile(path string, result *Result) error {
	for _, rule := range l.rules {
		if !rule.AppliesTo(path) {
			continue
		}
		issues, err := rule.Check(path)
		if err != nil {
			return err
		}
		result.Issues = append(result.Issues, issues...)
	}
	return nil
}

// IsContentFile reports whether path is a markdown content document.
func IsContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
