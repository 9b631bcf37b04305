package nav

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"git.home.luguber.info/inful/docsite/internal/content"
)

const propertyDocs = 12

func propertyCatalog(t *rapid.T) *content.Catalog {
	c := content.NewCatalog("docs")
	for i := range propertyDocs {
		if err := c.Add(newDoc(fmt.Sprintf("doc%d", i))); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return c
}

func drawItems(t *rapid.T, depth int, label string) []Node {
	n := rapid.IntRange(0, 4).Draw(t, label+"/n")
	items := make([]Node, 0, n)
	for i := range n {
		name := fmt.Sprintf("%s/%d", label, i)
		kind := rapid.IntRange(0, 3).Draw(t, name+"/kind")
		switch {
		case kind == 1 && depth < 3:
			cat := &Category{Label: name, Items: drawItems(t, depth+1, name)}
			if len(cat.Items) == 0 || rapid.Bool().Draw(t, name+"/linked") {
				cat.Link = &CategoryLink{Type: LinkTypeDoc, DocID: fmt.Sprintf("doc%d", rapid.IntRange(0, propertyDocs-1).Draw(t, name+"/link"))}
			}
			items = append(items, cat)
		case kind == 2:
			items = append(items, &Link{Label: name, Href: "https://example.com/" + name})
		case kind == 3:
			items = append(items, &DocRef{ID: fmt.Sprintf("doc%d", rapid.IntRange(0, propertyDocs-1).Draw(t, name+"/ref")), Ref: true})
		default:
			items = append(items, &DocRef{ID: fmt.Sprintf("doc%d", rapid.IntRange(0, propertyDocs-1).Draw(t, name+"/id"))})
		}
	}
	return items
}

// preorderPages lists the paginated doc ids of items: a category's link doc
// before its children, ref entries and links skipped, first occurrence wins.
func preorderPages(items []Node, seen map[string]bool, out []string) []string {
	visit := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, n := range items {
		switch v := n.(type) {
		case *DocRef:
			if !v.Ref {
				visit(v.ID)
			}
		case *Category:
			if v.Link != nil && v.Link.Type == LinkTypeDoc {
				visit(v.Link.DocID)
			}
			out = preorderPages(v.Items, seen, out)
		}
	}
	return out
}

func TestPagination_MatchesPreorder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		docs := propertyCatalog(t)
		guides := drawItems(t, 0, "guides")
		api := drawItems(t, 0, "api")
		sb := NewSidebars(&Sidebar{Name: "guides", Items: guides}, &Sidebar{Name: "api", Items: api})

		res, err := Resolve(sb, docs)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		for name, items := range map[string][]Node{"guides": guides, "api": api} {
			want := preorderPages(items, make(map[string]bool), nil)
			got := make([]string, 0, len(want))
			for _, p := range res.Sequence(name) {
				got = append(got, p.DocID)
			}
			if !slices.Equal(want, got) {
				t.Fatalf("sidebar %s: sequence %v, want %v", name, got, want)
			}
		}
	})
}

func TestPagination_DeterministicAndConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		docs := propertyCatalog(t)
		sb := NewSidebars(&Sidebar{Name: "docs", Items: drawItems(t, 0, "root")})

		first, err := Resolve(sb, docs)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		second, err := Resolve(sb, docs)
		if err != nil {
			t.Fatalf("resolve again: %v", err)
		}

		seq := first.Sequence("docs")
		seen := make(map[string]bool)
		for i, p := range seq {
			if seen[p.DocID] {
				t.Fatalf("doc %s paginated twice", p.DocID)
			}
			seen[p.DocID] = true

			a, b := first.Pagination(p.DocID), second.Pagination(p.DocID)
			if prevID(a) != prevID(b) || nextID(a) != nextID(b) {
				t.Fatalf("pagination of %s differs between runs", p.DocID)
			}
			if i > 0 && prevID(a) != seq[i-1].DocID {
				t.Fatalf("previous of %s is %q, want %q", p.DocID, prevID(a), seq[i-1].DocID)
			}
			if i+1 < len(seq) && nextID(a) != seq[i+1].DocID {
				t.Fatalf("next of %s is %q, want %q", p.DocID, nextID(a), seq[i+1].DocID)
			}
		}
	})
}
