package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter renders linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped per file with a summary footer.
func (f *TextFormatter) Format(w io.Writer, result *Result, path string) error {
	if _, err := fmt.Fprintf(w, "Linting content in: %s\n%s\n", path, strings.Repeat("-", 60)); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		if _, err := fmt.Fprintf(w, "%s [%s] %s: %s\n", issue.Severity, issue.Rule, issue.FilePath, issue.Message); err != nil {
			return err
		}
		if issue.Fix != "" {
			if _, err := fmt.Fprintf(w, "  fix: %s\n", issue.Fix); err != nil {
				return err
			}
		}
	}

	errors, warnings := 0, 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	_, err := fmt.Fprintf(w, "%s\n%d files scanned, %d errors, %d warnings\n",
		strings.Repeat("-", 60), result.FilesTotal, errors, warnings)
	return err
}

// JSONFormatter emits the raw result as JSON for machine consumption.
type JSONFormatter struct{}

// Format writes the result as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result, _ string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
