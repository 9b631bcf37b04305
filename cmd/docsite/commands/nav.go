package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Sidebar string `short:"s" help:"Only print this sidebar"`
	Format  string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type navPage struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

type navSidebar struct {
	Name  string    `json:"name"`
	Pages []navPage `json:"pages"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	s, err := site.Load(root.Config, site.Options{})
	if err != nil {
		return err
	}

	sidebars := s.Nav.Sidebars
	if n.Sidebar != "" {
		sb, ok := s.Nav.Sidebar(n.Sidebar)
		if !ok {
			return errors.NavigationError("unknown sidebar").
				WithContext("sidebar", n.Sidebar).
				WithContext("path", s.Config.SidebarsPath()).
				Build()
		}
		sidebars = []*nav.Sidebar{sb}
	}

	if n.Format == "json" {
		err = writeNavJSON(g.out(), s, sidebars)
	} else {
		err = writeNavText(g.out(), s, sidebars)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to write navigation").Build()
	}
	// The tree is printed even when it does not resolve so authors can see
	// what was kept.
	return s.ResolveErr
}

func pagesOf(s *site.Site, name string) []navPage {
	seq := s.Nav.Sequence(name)
	pages := make([]navPage, 0, len(seq))
	for _, p := range seq {
		page := navPage{ID: p.DocID, Label: p.Label}
		pg := s.Nav.Pagination(p.DocID)
		if pg.Previous != nil {
			page.Previous = pg.Previous.DocID
		}
		if pg.Next != nil {
			page.Next = pg.Next.DocID
		}
		pages = append(pages, page)
	}
	return pages
}

func writeNavJSON(w io.Writer, s *site.Site, sidebars []*nav.Sidebar) error {
	out := make([]navSidebar, 0, len(sidebars))
	for _, sb := range sidebars {
		out = append(out, navSidebar{Name: sb.Name, Pages: pagesOf(s, sb.Name)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeNavText(w io.Writer, s *site.Site, sidebars []*nav.Sidebar) error {
	var b strings.Builder
	for i, sb := range sidebars {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Sidebar: %s\n", sb.Name)
		_ = nav.Walk(sb.Items, func(node nav.Node, trail []string) error {
			indent := strings.Repeat("  ", len(trail)+1)
			switch v := node.(type) {
			case *nav.Category:
				fmt.Fprintf(&b, "%s%s/\n", indent, v.Label)
			case *nav.DocRef:
				fmt.Fprintf(&b, "%s%s (%s)\n", indent, v.Label, v.ID)
			case *nav.Link:
				fmt.Fprintf(&b, "%s%s -> %s\n", indent, v.Label, v.Href)
			}
			return nil
		})

		b.WriteString("Pagination:\n")
		for _, p := range pagesOf(s, sb.Name) {
			fmt.Fprintf(&b, "  %s: previous=%s next=%s\n", p.ID, orDash(p.Previous), orDash(p.Next))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
