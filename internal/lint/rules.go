package lint

import (
	"path/filepath"
	"strings"
	"unicode"
)

// FilenameRule validates that content filenames are portable and URL-friendly:
// lowercase, no spaces, no stacked extensions.
type FilenameRule struct{}

// Name returns the rule identifier.
func (r *FilenameRule) Name() string { return "filename-conventions" }

// AppliesTo returns true for markdown content files.
func (r *FilenameRule) AppliesTo(filePath string) bool { return IsContentFile(filePath) }

// Check validates filename conventions.
func (r *FilenameRule) Check(filePath string) ([]Issue, error) {
	filename := filepath.Base(filePath)
	var issues []Issue

	if hasUppercase(filename) {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "filename contains uppercase letters",
			Fix:      "rename to " + strings.ToLower(filename),
		})
	}

	if strings.ContainsAny(filename, " \t") {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "filename contains whitespace",
			Fix:      "rename to " + strings.ReplaceAll(strings.ToLower(filename), " ", "-"),
		})
	}

	if hasDoubleExtension(filename) {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "filename has a stacked extension",
			Fix:      "remove backup/temp suffixes from content files",
		})
	}

	return issues, nil
}

func hasUppercase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasDoubleExtension catches patterns like post.md.bak or post.old.md.
func hasDoubleExtension(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Ext(base) != ""
}
