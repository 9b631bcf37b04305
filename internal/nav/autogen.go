package nav

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/content"
)

var titleCaser = cases.Title(language.English)

// entry is one item of an autogenerated directory before sorting.
type entry struct {
	position *float64
	name     string
	node     Node
}

// expand turns a docs directory into sidebar items: its documents as doc
// references and its sub directories as categories. Entries are ordered by
// position (unpositioned last), then by file name.
func (r *resolver) expand(dir *content.Dir, style Style) []Node {
	entries := make([]entry, 0, len(dir.Docs)+len(dir.Subdirs))
	for _, doc := range dir.Docs {
		entries = append(entries, entry{
			position: doc.SidebarPosition,
			name:     path.Base(doc.Path),
			node:     &DocRef{ID: doc.ID, Label: doc.Label(), Style: style},
		})
	}
	for _, sub := range dir.Subdirs {
		d, ok := r.docs.Dir(sub)
		if !ok {
			continue
		}
		cat := r.autoCategory(d, style)
		if cat == nil {
			continue
		}
		pos := d.Position
		if d.Meta != nil && d.Meta.Position != nil {
			pos = d.Meta.Position
		}
		entries = append(entries, entry{position: pos, name: path.Base(d.Path), node: cat})
	}
	slices.SortStableFunc(entries, compareEntries)

	out := make([]Node, len(entries))
	for i, e := range entries {
		out[i] = e.node
	}
	return out
}

func compareEntries(a, b entry) int {
	switch {
	case a.position != nil && b.position != nil && *a.position != *b.position:
		if *a.position < *b.position {
			return -1
		}
		return 1
	case a.position != nil && b.position == nil:
		return -1
	case a.position == nil && b.position != nil:
		return 1
	}
	return strings.Compare(a.name, b.name)
}

// autoCategory builds the category for a sub directory. The directory's
// index document becomes the category link unless the category file says
// otherwise. Directories without any document yield nil.
func (r *resolver) autoCategory(d *content.Dir, style Style) *Category {
	cat := &Category{
		Label:       HumanizeName(d.Name()),
		Collapsible: true,
		Collapsed:   true,
		Style:       style,
	}
	var index *content.Document
	for _, doc := range d.Docs {
		if doc.IsIndex() {
			index = doc
			break
		}
	}

	if m := d.Meta; m != nil {
		if m.Label != "" {
			cat.Label = m.Label
		}
		if m.Collapsible != nil {
			cat.Collapsible = *m.Collapsible
		}
		if m.Collapsed != nil {
			cat.Collapsed = *m.Collapsed
		}
		if m.ClassName != "" {
			cat.ClassName = m.ClassName
		}
		cat.Description = m.Description
		if m.Link != nil {
			cat.Link = r.metaLink(m.Link, cat.Label, d.Path)
		}
	}
	if cat.Link == nil && index != nil {
		cat.Link = &CategoryLink{Type: LinkTypeDoc, DocID: index.ID}
	}
	if !cat.Collapsible {
		cat.Collapsed = false
	}

	for _, n := range r.expand(d, style) {
		if ref, ok := n.(*DocRef); ok && cat.Link != nil && cat.Link.Type == LinkTypeDoc && ref.ID == cat.Link.DocID {
			continue
		}
		cat.Items = append(cat.Items, n)
	}
	if len(cat.Items) == 0 && cat.Link == nil {
		return nil
	}
	return cat
}

func (r *resolver) metaLink(m *content.CategoryLinkMeta, label, dir string) *CategoryLink {
	switch CategoryLinkType(m.Type) {
	case LinkTypeDoc:
		if _, ok := r.docs.Get(m.ID); !ok {
			r.fail(ProblemUnresolvedDoc, nil, m.ID, "category link doc %q in %s does not exist", m.ID, dir)
			return nil
		}
		return &CategoryLink{Type: LinkTypeDoc, DocID: m.ID}
	case LinkTypeGeneratedIndex:
		l := &CategoryLink{Type: LinkTypeGeneratedIndex, Slug: m.Slug, Title: m.Title, Description: m.Description}
		if l.Slug == "" {
			l.Slug = GeneratedIndexSlug(label)
		}
		if l.Title == "" {
			l.Title = label
		}
		return l
	default:
		return nil
	}
}

// HumanizeName turns a file or directory name such as "getting-started"
// into a label ("Getting Started").
func HumanizeName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}
