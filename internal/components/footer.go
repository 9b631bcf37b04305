package components

import (
	"io"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/site"
)

type linkView struct {
	Label string
	Href  string
}

type lastUpdateView struct {
	ISO    string
	Date   string
	Author string
}

type articleFooterView struct {
	Title      string
	Links      []linkView
	EditURL    string
	LastUpdate *lastUpdateView
}

type footerColumnView struct {
	Title string
	Items []linkView
}

type footerView struct {
	Style     string
	Columns   []footerColumnView
	Copyright string
}

// RenderArticleFooter writes the footer shown beneath doc: the configured
// calls to action, the "Edit this page" link and the last update line.
// doc may be nil to render only the configured links.
func RenderArticleFooter(w io.Writer, s *site.Site, doc *content.Document) error {
	view := articleFooterView{
		Title: s.Config.ArticleFooter.Title,
		Links: links(s.Config, s.Config.ArticleFooter.Links),
	}
	if doc != nil {
		view.EditURL = s.EditURL(doc)
		if s.Config.Docs.ShowLastUpdate && doc.LastUpdate != nil {
			view.LastUpdate = &lastUpdateView{
				ISO:    doc.LastUpdate.Time.UTC().Format(time.RFC3339),
				Date:   doc.LastUpdate.Time.UTC().Format("Jan 2, 2006"),
				Author: doc.LastUpdate.Author,
			}
		}
	}
	return execute(w, "article_footer.html", view)
}

// RenderFooter writes the global footer.
func RenderFooter(w io.Writer, cfg *config.Config) error {
	view := footerView{Style: cfg.Footer.Style, Copyright: cfg.Footer.Copyright}
	for _, col := range cfg.Footer.Links {
		view.Columns = append(view.Columns, footerColumnView{Title: col.Title, Items: links(cfg, col.Items)})
	}
	return execute(w, "footer.html", view)
}

// links resolves configured links; `to` paths are relative to the base URL.
func links(cfg *config.Config, in []config.Link) []linkView {
	out := make([]linkView, 0, len(in))
	for _, l := range in {
		href := l.Href
		if href == "" {
			href = content.JoinRoute(cfg.Site.BaseURL, l.To, cfg.Site.TrailingSlash)
		}
		out = append(out, linkView{Label: l.Label, Href: href})
	}
	return out
}
