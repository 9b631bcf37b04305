package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func clearSearchEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvSearchAppID, "")
	t.Setenv(config.EnvSearchAPIKey, "")
	t.Setenv(config.EnvSearchIndex, "")
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

func loadSite(t *testing.T, files map[string]string) *site.Site {
	t.Helper()
	dir := t.TempDir()
	_, err := config.Init(dir, false)
	require.NoError(t, err)
	writeFiles(t, dir, files)

	s, err := site.Load(filepath.Join(dir, "docsite.yaml"), site.Options{})
	require.NoError(t, err)
	return s
}

func TestLint_StarterSiteIsClean(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, nil)

	result := NewLinter(nil).Lint(s)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 2, result.FilesTotal)
	assert.False(t, result.HasErrors())
}

func TestLint_ReportsEveryRule(t *testing.T) {
	clearSearchEnv(t)
	t.Setenv(config.EnvSearchAppID, "app")

	s := loadSite(t, map[string]string{
		"sidebars.yaml": `docs:
  - intro
  - ghost
  - intro
  - type: category
    label: Guides
    items:
      - type: autogenerated
        dirName: guides
  - type: autogenerated
    dirName: nowhere
`,
		"docs/guides/getting-started.md": "---\nsidebar_label: First steps\n---\n\n# Getting started\n\nSee [missing](./nope.md) and [intro](../intro.md).\n",
		"docs/orphan.md":                 "# Nobody links here\n",
		"docs/broken.md":                 "---\ntitle: [oops\n---\n",
		"docs/other/intro.md":            "---\nid: intro\n---\n# Fine\n",
		"docs/dup.md":                    "---\nid: orphan\n---\n# Dup\n",
	})

	result := NewLinter(nil).Lint(s)
	require.True(t, result.HasErrors())

	unresolved := result.ByRule(RuleNavUnresolvedDoc)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "sidebars.yaml", unresolved[0].FilePath)
	assert.Equal(t, "ghost", unresolved[0].DocID)

	assert.Len(t, result.ByRule(RuleNavAutogenDir), 1)
	assert.Len(t, result.ByRule(RuleNavDuplicateDoc), 1)
	assert.Len(t, result.ByRule(RuleContentFrontmatter), 1)
	assert.Len(t, result.ByRule(RuleContentDuplicateID), 1)
	assert.Len(t, result.ByRule(RuleConfigSearch), 1)

	orphans := result.ByRule(RuleContentOrphan)
	ids := make([]string, 0, len(orphans))
	for _, o := range orphans {
		ids = append(ids, o.DocID)
		assert.Equal(t, SeverityWarning, o.Severity)
	}
	assert.ElementsMatch(t, []string{"orphan", "other/intro"}, ids)

	broken := result.ByRule(RuleContentBrokenLink)
	require.Len(t, broken, 1)
	assert.Equal(t, "docs/guides/getting-started.md", broken[0].FilePath)
	assert.Equal(t, 7, broken[0].Line)
	assert.Equal(t, SeverityWarning, broken[0].Severity)
}

func TestLint_ConfigInvalid(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, nil)
	s.Config.Site.BaseURL = "my-project"
	s.Config.Site.URL = "ftp://example.org"
	s.ConfigErr = s.Config.Validate()

	issues := NewLinter(nil).Lint(s).ByRule(RuleConfigInvalid)
	require.Len(t, issues, 2)
	assert.Equal(t, "docsite.yaml", issues[0].FilePath)
	assert.True(t, strings.HasPrefix(issues[0].Message, "site.base_url"))
	assert.True(t, strings.HasPrefix(issues[1].Message, "site.url"))
}

func TestLint_PaginationOverride(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, map[string]string{
		"docs/intro.md": "---\nid: intro\npagination_next: nowhere\n---\n# Introduction\n",
	})
	issues := NewLinter(nil).Lint(s).ByRule(RuleNavPaginationOverride)
	require.Len(t, issues, 1)
	assert.Equal(t, "docs/intro.md", issues[0].FilePath)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestLint_LinkWithoutHref(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, map[string]string{
		"sidebars.yaml": "docs:\n  - intro\n  - type: link\n    label: Changelog\n",
	})
	result := NewLinter(nil).Lint(s)
	issues := result.ByRule(RuleNavLinkHref)
	require.Len(t, issues, 1)
	assert.Equal(t, "sidebars.yaml", issues[0].FilePath)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "Give the link an href", issues[0].Fix)
	assert.Contains(t, issues[0].Message, "Changelog")
	assert.Empty(t, result.ByRule(RuleNavEmptyLabel))
}

func TestLint_CardWithoutDestination(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, map[string]string{
		"sidebars.yaml": `docs:
  - intro
  - type: category
    label: Guides
    link: {type: generated-index}
    items:
      - guides/getting-started
      - type: category
        label: Elsewhere
        items:
          - type: link
            label: Blog
            href: https://example.org/blog
`,
	})
	issues := NewLinter(nil).Lint(s).ByRule(RuleCardEmptyDestination)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"Elsewhere"`)
}

func TestLint_QuietDropsWarnings(t *testing.T) {
	clearSearchEnv(t)
	s := loadSite(t, map[string]string{"docs/orphan.md": "# Orphan\n"})

	loud := NewLinter(&Config{}).Lint(s)
	assert.Equal(t, 1, loud.WarningCount())

	quiet := NewLinter(&Config{Quiet: true}).Lint(s)
	assert.Empty(t, quiet.Issues)
}

func TestFormatters(t *testing.T) {
	result := &Result{
		FilesTotal: 3,
		Issues: []Issue{
			{FilePath: "sidebars.yaml", Severity: SeverityError, Rule: RuleNavUnresolvedDoc, Message: "doc \"x\" does not exist", Fix: "Fix the doc id"},
			{FilePath: "docs/a.md", Severity: SeverityWarning, Rule: RuleContentBrokenLink, Message: "link to missing file b.md", Line: 4, DocID: "a"},
		},
	}

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&text, result, "/site"))
	out := text.String()
	assert.Contains(t, out, "Checking documentation site: /site")
	assert.Contains(t, out, "docs/a.md:4")
	assert.Contains(t, out, "[nav-unresolved-doc]")
	assert.Contains(t, out, "1 error (blocks build)")
	assert.Contains(t, out, "1 warning (should fix)")
	assert.Contains(t, out, "Fix: Fix the doc id")

	var js bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&js, result, "/site"))
	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Equal(t, 1, decoded.WarningCount)
	assert.Equal(t, 3, decoded.FilesTotal)
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "WARNING", decoded.Issues[1].Severity)
	assert.Equal(t, "a", decoded.Issues[1].DocID)
	assert.Equal(t, map[string]int{RuleNavUnresolvedDoc: 1, RuleContentBrokenLink: 1}, decoded.Rules)
}

func TestFormatters_CleanResult(t *testing.T) {
	var text bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(&text, &Result{}, "."))
	assert.Contains(t, text.String(), "passes checks")

	var js bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&js, &Result{}, "."))
	assert.Contains(t, js.String(), `"issues": []`)
}

func TestNewFormatter_NormalizesName(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(" JSON"))
	assert.IsType(t, &TextFormatter{}, NewFormatter("text"))
	assert.IsType(t, &TextFormatter{}, NewFormatter("yaml"))
}
