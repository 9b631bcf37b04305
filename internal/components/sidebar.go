package components

import (
	"io"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

type sidebarView struct {
	Name  string
	Items []sidebarItem
}

type sidebarItem struct {
	Kind      nav.Kind
	Label     string
	Href      string
	External  bool
	Active    bool
	Collapsed bool
	ClassName string
	Badge     string
	Items     []sidebarItem
}

// RenderSidebar writes a resolved sidebar as nested lists. The item of
// activeID is marked and the categories containing it are expanded.
func RenderSidebar(w io.Writer, s *site.Site, name, activeID string) error {
	sb, ok := s.Nav.Sidebar(name)
	if !ok {
		return errors.RenderError("unknown sidebar").WithContext("sidebar", name).Build()
	}
	items, _ := sidebarItems(sb.Items, s, activeID)
	return execute(w, "sidebar.html", sidebarView{Name: sb.Name, Items: items})
}

// sidebarItems converts nodes to view items and reports whether activeID
// is among them.
func sidebarItems(nodes []nav.Node, s *site.Site, activeID string) ([]sidebarItem, bool) {
	out := make([]sidebarItem, 0, len(nodes))
	containsActive := false
	for _, n := range nodes {
		hints := n.Hints()
		item := sidebarItem{Kind: n.Kind(), Label: nav.LabelOf(n), ClassName: hints.ClassName, Badge: hints.Badge}
		switch v := n.(type) {
		case *nav.DocRef:
			item.Href, _ = s.DocURL(v.ID)
			item.Active = activeID != "" && v.ID == activeID
		case *nav.Link:
			item.Href = v.Href
			item.External = markdown.Link{Destination: v.Href}.IsExternal()
		case *nav.Category:
			item.Href = s.CategoryURL(v)
			item.Active = activeID != "" && v.Link != nil && v.Link.DocID == activeID
			children, childActive := sidebarItems(v.Items, s, activeID)
			item.Items = children
			item.Collapsed = v.Collapsible && v.Collapsed && !childActive && !item.Active
			if childActive {
				containsActive = true
			}
		}
		if item.Active {
			containsActive = true
		}
		out = append(out, item)
	}
	return out, containsActive
}
