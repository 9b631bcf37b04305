package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, sitePath string) error
}

// NewFormatter returns the formatter for format, falling back to text.
func NewFormatter(format string) Formatter {
	return formats.Normalize(format)()
}

var formats = normalization.New("output format", map[string]func() Formatter{
	"text": func() Formatter { return NewTextFormatter() },
	"json": func() Formatter { return NewJSONFormatter() },
}, func() Formatter { return NewTextFormatter() })

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// printer remembers the first write error so formatting code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

var separator = strings.Repeat("━", 60)

var severityIcons = map[Severity]string{
	SeverityError:   "✗",
	SeverityWarning: "⚠",
	SeverityInfo:    "ℹ",
}

// Format writes each issue followed by a summary with per-rule counts.
func (f *TextFormatter) Format(w io.Writer, result *Result, sitePath string) error {
	p := &printer{w: w}
	p.linef("Checking documentation site: %s", sitePath)
	p.linef("%s", separator)
	p.linef("")

	for _, issue := range result.Issues {
		writeIssue(p, issue)
		p.linef("")
	}

	p.linef("%s", separator)
	p.linef("Results:")
	p.linef("  %d documents scanned", result.FilesTotal)
	if n := result.ErrorCount(); n > 0 {
		p.linef("  %d error%s (blocks build)", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.linef("  %d warning%s (should fix)", n, pluralize(n))
	}
	if n := result.InfoCount(); n > 0 {
		p.linef("  %d info", n)
	}
	counts := ruleCounts(result)
	for _, rule := range slices.Sorted(maps.Keys(counts)) {
		p.linef("    %-26s %d", rule, counts[rule])
	}
	p.linef("")
	p.linef("%s", verdict(result))
	p.linef("")
	return p.err
}

func writeIssue(p *printer, issue Issue) {
	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	p.linef("%s %s", severityIcons[issue.Severity], location)
	p.linef("  %s [%s]: %s", issue.Severity, issue.Rule, issue.Message)
	for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
		if line != "" {
			p.linef("  %s", line)
		}
	}
	if issue.Fix != "" {
		p.linef("")
		p.linef("  Fix: %s", issue.Fix)
	}
}

func verdict(result *Result) string {
	switch {
	case result.HasErrors():
		return "❌ Documentation has errors that will fail the site build."
	case result.HasWarnings():
		return "⚠️  Documentation has warnings. Consider fixing before commit."
	case len(result.Issues) > 0:
		return "ℹ️  All issues are informational."
	default:
		return "✨ All documentation passes checks!"
	}
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput is the document written by JSONFormatter.
type JSONOutput struct {
	Path         string         `json:"path"`
	FilesTotal   int            `json:"files_total"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	InfoCount    int            `json:"info_count"`
	Rules        map[string]int `json:"rules"`
	Issues       []JSONIssue    `json:"issues"`
}

// JSONIssue is one issue in JSONOutput.
type JSONIssue struct {
	FilePath    string `json:"file_path"`
	Line        int    `json:"line,omitempty"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
	DocID       string `json:"doc_id,omitempty"`
}

func (f *JSONFormatter) Format(w io.Writer, result *Result, sitePath string) error {
	output := JSONOutput{
		Path:         sitePath,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
		Rules:        ruleCounts(result),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath:    issue.FilePath,
			Line:        issue.Line,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
			DocID:       issue.DocID,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func ruleCounts(result *Result) map[string]int {
	counts := make(map[string]int)
	for _, issue := range result.Issues {
		counts[issue.Rule]++
	}
	return counts
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
