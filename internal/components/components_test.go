package components

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/gitmeta"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const testConfig = `
site:
  title: Test
  url: https://example.org
  base_url: /proj/
docs:
  edit_url: https://github.com/acme/proj/edit/main/
  show_last_update: true
article_footer:
  title: Help improve this page
  links:
    - label: Contribute
      href: https://github.com/acme/proj
    - label: Chat
      href: https://chat.example.org
footer:
  style: dark
  links:
    - title: Docs
      items:
        - label: Intro
          to: /docs/intro
  copyright: Copyright Acme
`

func newDoc(id, description string) *content.Document {
	dir := path.Dir(id)
	if dir == "." {
		dir = ""
	}
	return &content.Document{
		ID:          id,
		Path:        id + ".md",
		Dir:         dir,
		Name:        path.Base(id),
		Title:       strings.ToUpper(path.Base(id)),
		Description: description,
	}
}

func testSite(t *testing.T) *site.Site {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig))
	require.NoError(t, err)

	catalog := content.NewCatalog("docs")
	intro := newDoc("intro", "Start here")
	intro.LastUpdate = &gitmeta.LastUpdate{Author: "Ada", Time: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC), Commit: "abc123"}
	for _, d := range []*content.Document{intro, newDoc("guides/one", "First guide"), newDoc("guides/two", ""), newDoc("ref/api", "")} {
		require.NoError(t, catalog.Add(d))
	}

	sidebars := nav.NewSidebars(&nav.Sidebar{Name: "docs", Items: []nav.Node{
		&nav.DocRef{ID: "intro"},
		&nav.Category{
			Label:       "Guides",
			Collapsible: true,
			Collapsed:   true,
			Link:        &nav.CategoryLink{Type: nav.LinkTypeGeneratedIndex},
			Items: []nav.Node{
				&nav.DocRef{ID: "guides/one"},
				&nav.DocRef{ID: "guides/two", Style: nav.Style{Badge: "new"}},
				&nav.Link{Label: "GitHub", Href: "https://github.com/acme/proj"},
				&nav.Category{Label: "Reference", Collapsible: true, Collapsed: true, Items: []nav.Node{&nav.DocRef{ID: "ref/api"}}},
			},
		},
	}})
	resolved, err := nav.Resolve(sidebars, catalog)
	require.NoError(t, err)

	return &site.Site{Config: cfg, Catalog: catalog, Sidebars: sidebars, Nav: resolved}
}

func parse(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func text(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(b.String())
}

func TestRenderCardList_OneCardPerEntry(t *testing.T) {
	cases := map[string][]Card{
		"none": nil,
		"one":  {{Title: "Only", Destination: "/docs/only"}},
		"many": {
			{Title: "First", Description: "1st", Destination: "/docs/first", Icon: IconDoc},
			{Title: "Second", Destination: "https://example.org", Icon: IconLink},
			{Title: "Third & last", Description: "<b>not bold</b>", Destination: "/docs/third"},
		},
	}
	for name, cards := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderCardList(&buf, cards))

			doc := parse(t, buf.String())
			require.Len(t, findAll(doc, byClass("card-list")), 1)
			articles := findAll(doc, byClass("card"))
			require.Len(t, articles, len(cards))
			for i, a := range articles {
				assert.Equal(t, "article", a.Data)
				links := findAll(a, func(n *html.Node) bool { return n.Data == "a" })
				require.Len(t, links, 1)
				href, _ := attr(links[0], "href")
				assert.Equal(t, cards[i].Destination, href)
				title := findAll(a, byClass("card__title"))[0]
				assert.Contains(t, text(title), cards[i].Title)
			}
		})
	}
}

func TestRenderCardList_EscapesContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCardList(&buf, []Card{{Title: "T", Description: "<b>x</b>", Destination: "/d"}}))
	assert.NotContains(t, buf.String(), "<b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;")
}

func TestRenderCardList_EmptyDestination(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCardList(&buf, []Card{{Title: "ok", Destination: "/a"}, {Title: "broken"}})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrEmptyDestination))
	assert.Contains(t, err.Error(), `card 1 ("broken")`)
	assert.Zero(t, buf.Len())
}

func TestCardsForCategory(t *testing.T) {
	s := testSite(t)
	guides := s.Nav.Sidebars[0].Items[1].(*nav.Category)

	cards := CardsForCategory(guides, s)
	assert.Equal(t, []Card{
		{Title: "ONE", Description: "First guide", Destination: "/proj/docs/guides/one", Icon: IconDoc},
		{Title: "TWO", Destination: "/proj/docs/guides/two", Icon: IconDoc},
		{Title: "GitHub", Description: "https://github.com/acme/proj", Destination: "https://github.com/acme/proj", Icon: IconLink},
		{Title: "Reference", Description: "1 item", Destination: "/proj/docs/ref/api", Icon: IconCategory},
	}, cards)
	assert.NoError(t, ValidateCards(cards))
}

func TestRenderSidebar_MarksActiveDoc(t *testing.T) {
	s := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, RenderSidebar(&buf, s, "docs", "guides/one"))
	doc := parse(t, buf.String())

	active := findAll(doc, byClass("menu__link--active"))
	require.Len(t, active, 1)
	href, _ := attr(active[0], "href")
	assert.Equal(t, "/proj/docs/guides/one", href)
	cur, _ := attr(active[0], "aria-current")
	assert.Equal(t, "page", cur)

	categories := findAll(doc, byClass("menu__item--category"))
	require.Len(t, categories, 2)
	_, guidesCollapsed := attr(categories[0], "data-collapsed")
	assert.False(t, guidesCollapsed)
	_, refCollapsed := attr(categories[1], "data-collapsed")
	assert.True(t, refCollapsed)

	guidesLink := findAll(categories[0], byClass("menu__link"))[0]
	href, _ = attr(guidesLink, "href")
	assert.Equal(t, "/proj/docs/category/guides", href)

	external := findAll(doc, func(n *html.Node) bool {
		v, _ := attr(n, "target")
		return v == "_blank"
	})
	require.Len(t, external, 1)
	assert.Equal(t, "GitHub", text(external[0]))

	badges := findAll(doc, byClass("badge"))
	require.Len(t, badges, 1)
	assert.Equal(t, "new", text(badges[0]))
}

func TestRenderSidebar_Unknown(t *testing.T) {
	s := testSite(t)
	err := RenderSidebar(&bytes.Buffer{}, s, "nope", "")
	require.Error(t, err)
}

func TestRenderPagination(t *testing.T) {
	s := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, RenderPagination(&buf, s, "guides/two"))
	doc := parse(t, buf.String())

	prev := findAll(doc, byClass("pagination-nav__link--prev"))
	next := findAll(doc, byClass("pagination-nav__link--next"))
	require.Len(t, prev, 1)
	require.Len(t, next, 1)
	href, _ := attr(prev[0], "href")
	assert.Equal(t, "/proj/docs/guides/one", href)
	href, _ = attr(next[0], "href")
	assert.Equal(t, "/proj/docs/ref/api", href)

	buf.Reset()
	require.NoError(t, RenderPagination(&buf, s, "intro"))
	doc = parse(t, buf.String())
	assert.Empty(t, findAll(doc, byClass("pagination-nav__link--prev")))
	assert.Len(t, findAll(doc, byClass("pagination-nav__link--next")), 1)
}

func TestRenderArticleFooter(t *testing.T) {
	s := testSite(t)
	intro, _ := s.Catalog.Get("intro")

	var buf bytes.Buffer
	require.NoError(t, RenderArticleFooter(&buf, s, intro))
	doc := parse(t, buf.String())

	assert.Equal(t, "Help improve this page", text(findAll(doc, byClass("article-footer__title"))[0]))
	links := findAll(findAll(doc, byClass("article-footer__links"))[0], func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 2)
	assert.Equal(t, "Contribute", text(links[0]))
	assert.Equal(t, "Chat", text(links[1]))

	edit := findAll(doc, byClass("article-footer__edit"))
	require.Len(t, edit, 1)
	href, _ := attr(edit[0], "href")
	assert.Equal(t, "https://github.com/acme/proj/edit/main/docs/intro.md", href)

	last := findAll(doc, byClass("article-footer__last-update"))
	require.Len(t, last, 1)
	assert.Equal(t, "Last updated on Jan 2, 2026 by Ada", text(last[0]))
}

func TestRenderArticleFooter_WithoutDocument(t *testing.T) {
	s := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, RenderArticleFooter(&buf, s, nil))
	doc := parse(t, buf.String())
	assert.Empty(t, findAll(doc, byClass("article-footer__edit")))
	assert.Len(t, findAll(doc, byClass("article-footer__links")), 1)
}

func TestRenderFooter(t *testing.T) {
	s := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, RenderFooter(&buf, s.Config))
	doc := parse(t, buf.String())

	footer := findAll(doc, byClass("footer"))
	require.Len(t, footer, 1)
	assert.True(t, hasClass(footer[0], "footer--dark"))

	items := findAll(doc, byClass("footer__link-item"))
	require.Len(t, items, 1)
	href, _ := attr(items[0], "href")
	assert.Equal(t, "/proj/docs/intro", href)
	assert.Equal(t, "Copyright Acme", text(findAll(doc, byClass("footer__copyright"))[0]))
}

func TestWriteAll(t *testing.T) {
	s := testSite(t)
	out := t.TempDir()

	files, err := WriteAll(s, out)
	require.NoError(t, err)
	assert.Len(t, files, 15)
	assert.Contains(t, files, "footer.html")
	assert.Contains(t, files, "sidebars/docs.html")
	assert.Contains(t, files, "docs/guides/one/pagination.html")
	assert.Contains(t, files, "category/guides.html")

	data, err := os.ReadFile(filepath.Join(out, "category", "guides.html"))
	require.NoError(t, err)
	assert.Len(t, findAll(parse(t, string(data)), byClass("card")), 4)
}

func TestFragmentWriter_RejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	out := filepath.Join(parent, "out")
	render := func(dst io.Writer) error {
		_, err := io.WriteString(dst, "<nav></nav>")
		return err
	}

	for _, rel := range []string{
		filepath.Join("sidebars", "..", "..", "escaped.html"),
		filepath.Join("..", "escaped.html"),
		string(filepath.Separator) + "abs.html",
	} {
		w := &fragmentWriter{dir: out}
		w.write(rel, render)
		require.Error(t, w.err, rel)
		assert.True(t, errors.HasCategory(w.err, errors.CategoryFileSystem), rel)
		assert.Empty(t, w.files)
	}
	_, err := os.Stat(filepath.Join(parent, "escaped.html"))
	assert.True(t, os.IsNotExist(err))

	w := &fragmentWriter{dir: out}
	w.write(filepath.Join("sidebars", "..", "footer.html"), render)
	require.NoError(t, w.err)
	assert.Equal(t, []string{"footer.html"}, w.files)
}
