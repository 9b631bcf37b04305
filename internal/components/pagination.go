package components

import (
	"io"

	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

type pageLinkView struct {
	Label string
	Href  string
}

type paginationView struct {
	Previous *pageLinkView
	Next     *pageLinkView
}

// RenderPagination writes the previous/next links of a document.
func RenderPagination(w io.Writer, s *site.Site, docID string) error {
	p := s.Nav.Pagination(docID)
	return execute(w, "pagination.html", paginationView{
		Previous: pageLink(p.Previous, s),
		Next:     pageLink(p.Next, s),
	})
}

func pageLink(l *nav.PageLink, s *site.Site) *pageLinkView {
	if l == nil {
		return nil
	}
	href, ok := s.DocURL(l.DocID)
	if !ok {
		return nil
	}
	return &pageLinkView{Label: l.Label, Href: href}
}
