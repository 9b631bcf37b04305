package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (string, Targets) {
	t.Helper()
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "guides"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docsite.yaml"), []byte("site: {}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sidebars.yaml"), []byte("docs: []\n"), 0o600))
	return root, Targets{
		ConfigPath:   filepath.Join(root, "docsite.yaml"),
		SidebarsPath: filepath.Join(root, "sidebars.yaml"),
		DocsDir:      docs,
	}
}

func TestRelevant(t *testing.T) {
	root, targets := setup(t)
	w, err := New(targets, 0, func(context.Context) {})
	require.NoError(t, err)
	defer w.watcher.Close()

	cases := map[string]bool{
		filepath.Join(root, "docsite.yaml"):                        true,
		filepath.Join(root, "sidebars.yaml"):                       true,
		filepath.Join(root, ".env.local"):                          true,
		filepath.Join(root, "README.md"):                           false,
		filepath.Join(root, "docs", "intro.md"):                    true,
		filepath.Join(root, "docs", "guides", "setup.mdx"):         true,
		filepath.Join(root, "docs", "guides", "_category_.yaml"):   true,
		filepath.Join(root, "docs", "guides", "notes.txt"):         false,
		filepath.Join(root, "docs", "_partials", "x.md"):           false,
		filepath.Join(root, "docs", "guides", ".intro.md.swp"):     false,
		filepath.Join(root, "docs", ".hidden", "x.md"):             false,
		filepath.Join(root, "docs", "_partials", "nested", "y.md"): false,
		filepath.Join(root, "docs", "_partials", "_category_.yml"): false,
		filepath.Join(root, "docs", "guides", "deep", "z.mdx"):     true,
		filepath.Join(root, "docs", "removed-dir"):                 true,
	}
	for p, want := range cases {
		assert.Equal(t, want, w.relevant(p), p)
	}
}

func TestRun_DebouncesChanges(t *testing.T) {
	root, targets := setup(t)
	calls := make(chan struct{}, 10)
	w, err := New(targets, 50*time.Millisecond, func(context.Context) { calls <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	for i := range 3 {
		require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "guides", "setup.md"), []byte{byte('a' + i)}, 0o600))
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("change callback was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
