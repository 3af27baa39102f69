package lint

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block builds.
	SeverityWarning
	// SeverityError indicates issues that will break the generated site.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single linting problem found in a file.
type Issue struct {
	FilePath string   `json:"file"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Fix      string   `json:"fix,omitempty"`
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue `json:"issues"`
	FilesTotal int     `json:"files_total"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Config controls linter behavior.
type Config struct {
	Quiet  bool   // suppress warnings, only report errors
	Format string // "text" or "json"
}

// Rule checks one concern across content files.
type Rule interface {
	Name() string
	AppliesTo(filePath string) bool
	Check(filePath string) ([]Issue, error)
}
