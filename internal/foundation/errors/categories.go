package errors

// ErrorCategory groups errors by the part of the site that produced them.
// The CLI maps categories to exit codes.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// CategoryNavigation covers sidebars.yaml and the resolved tree.
	CategoryNavigation ErrorCategory = "navigation"
	CategoryContent    ErrorCategory = "content"

	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Nothing left to report on
	SeverityError   ErrorSeverity = "error"   // Fails the build
	SeverityWarning ErrorSeverity = "warning" // Reported, build continues
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext holds structured details such as "path" or "doc_id".
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	value, ok := c[key]
	return value, ok
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
