package lint

import "git.home.luguber.info/inful/docsite/internal/site"

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block builds.
	SeverityWarning
	// SeverityError indicates issues that fail the build.
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

// Issue represents a single problem found in the site.
type Issue struct {
	FilePath    string   // Path relative to the site root, or the config/sidebars file
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "nav-unresolved-doc")
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
	Line        int      // Line number (0 if file-level issue)
	DocID       string   // Document the issue is about, if any
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue
	FilesTotal int // Documents scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// InfoCount returns the number of informational issues.
func (r *Result) InfoCount() int {
	return r.count(SeverityInfo)
}

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

// ByRule returns the issues reported by one rule.
func (r *Result) ByRule(rule string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

// Rule checks one aspect of a loaded site.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects the site and returns any issues found.
	Check(s *site.Site) []Issue
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string
}
