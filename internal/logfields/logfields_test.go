package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{DocID("intro"), KeyDocID, "intro"},
		{Sidebar("docs"), KeySidebar, "docs"},
		{Path("docs/intro.md"), KeyPath, "docs/intro.md"},
		{Rule("nav-unresolved-doc"), KeyRule, "nav-unresolved-doc"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			assert.Equal(t, c.key, c.attr.Key)
			assert.Equal(t, c.val, c.attr.Value.String())
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Docs(3).Value.Int64())
	assert.Equal(t, int64(7), Issues(7).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
}

func TestErrorHelper(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
