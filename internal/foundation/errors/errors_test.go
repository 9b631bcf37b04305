package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docsite.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "docsite.yaml", file)
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		base := NavigationError("doc reference does not resolve").WithContext("doc_id", "intro").Build()
		wrapped := fmt.Errorf("resolve sidebar: %w", base)

		assert.True(t, IsClassified(wrapped))
		assert.True(t, HasCategory(wrapped, CategoryNavigation))
		assert.Equal(t, CategoryNavigation, CategoryOf(wrapped))
		assert.Equal(t, SeverityError, SeverityOf(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := stderrors.New("boom")
		assert.False(t, IsClassified(plain))
		assert.Equal(t, CategoryInternal, CategoryOf(plain))
		assert.Equal(t, SeverityError, SeverityOf(plain))
	})

	t.Run("Cause unwrapping", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "read docs").Build()
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Contains(t, err.Error(), "[filesystem:error]")
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		orig := ContentError("duplicate id").Build()
		extended := orig.WithContext("path", "docs/a.md")
		_, ok := orig.Context().Get("path")
		assert.False(t, ok)
		p, _ := extended.Context().GetString("path")
		assert.Equal(t, "docs/a.md", p)
		assert.Equal(t, "docs/a.md", extended.Path())
	})

	t.Run("Author fix", func(t *testing.T) {
		assert.True(t, ConfigError("bad url").Build().AuthorFix())
		assert.False(t, InternalError("bug").Build().AuthorFix())
		assert.Equal(t, SeverityWarning, GitError("no history").Build().Severity())
	})

	t.Run("Cause is unwrapped", func(t *testing.T) {
		cause := stderrors.New("repository does not exist")
		err := GitError("no git repository found").WithCause(cause).Build()
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "[git:warning] no git repository found: repository does not exist", err.Error())
	})

	t.Run("Is matches category and message", func(t *testing.T) {
		err := fmt.Errorf("load: %w", ContentError("duplicate id").WithContext("doc_id", "a").Build())
		assert.ErrorIs(t, err, ContentError("duplicate id").Build())
		assert.NotErrorIs(t, err, NavigationError("duplicate id").Build())
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{ValidationError("lint").Build(), 2},
		{NavigationError("nav").Build(), 3},
		{ContentError("content").Build(), 4},
		{ConfigError("cfg").Build(), 7},
		{GitError("git").Build(), 8},
		{InternalError("bug").Build(), 10},
		{RenderError("tpl").Build(), 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.ExitCodeFor(tt.err), "%v", tt.err)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	a.out = &out
	code := -1
	a.exit = func(c int) { code = c }

	err := NavigationError("doc reference does not resolve").WithContext("path", "sidebars.yaml").Build()
	a.HandleError(err)

	assert.Equal(t, 3, code)
	assert.Equal(t, "doc reference does not resolve (sidebars.yaml)\n", out.String())
	// Non-fatal classified errors are not logged in quiet mode.
	assert.Empty(t, logs.String())
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, "internal: template missing", a.FormatError(InternalError("template missing").Build()))
	assert.Equal(t, "Error: plain", a.FormatError(stderrors.New("plain")))

	verbose := NewCLIErrorAdapter(true, nil)
	err := WrapError(stderrors.New("denied"), CategoryFileSystem, "write fragment").Build()
	assert.Equal(t, "[filesystem:error] write fragment: denied", verbose.FormatError(err))
}
