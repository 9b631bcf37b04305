package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDocID      = "doc_id"
	KeySidebar    = "sidebar"
	KeyPath       = "path"
	KeyRule       = "rule"
	KeyDocs       = "docs"
	KeyIssues     = "issues"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Sidebar(name string) slog.Attr   { return slog.String(KeySidebar, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Docs(n int) slog.Attr            { return slog.Int(KeyDocs, n) }
func Issues(n int) slog.Attr          { return slog.Int(KeyIssues, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
