package nav

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-slug"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DocumentSet is the view of the content catalog the resolver needs.
// *content.Catalog implements it.
type DocumentSet interface {
	Get(id string) (*content.Document, bool)
	Dir(path string) (*content.Dir, bool)
}

// ProblemKind classifies a resolution failure.
type ProblemKind string

const (
	ProblemUnresolvedDoc ProblemKind = "unresolved-doc"
	ProblemEmptyLabel    ProblemKind = "empty-label"
	ProblemMissingHref   ProblemKind = "missing-href"
	ProblemEmptyCategory ProblemKind = "empty-category"
	ProblemMissingDir    ProblemKind = "missing-dir"
	ProblemBadOverride   ProblemKind = "bad-override"
)

// ResolveError describes one node that could not be resolved.
type ResolveError struct {
	Kind    ProblemKind
	Sidebar string
	// Trail holds the labels of the enclosing categories.
	Trail   []string
	DocID   string
	Message string
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString("sidebar ")
	b.WriteString(e.Sidebar)
	for _, t := range e.Trail {
		b.WriteString(" > ")
		b.WriteString(t)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Resolved is a navigation tree after autogenerated expansion and
// verification against the catalog. It is not modified after Resolve
// returns.
type Resolved struct {
	Sidebars []*Sidebar
	Problems []*ResolveError

	docs  DocumentSet
	pages *pageIndex
}

// Sidebar returns a resolved sidebar by name.
func (r *Resolved) Sidebar(name string) (*Sidebar, bool) {
	for _, sb := range r.Sidebars {
		if sb.Name == name {
			return sb, true
		}
	}
	return nil, false
}

// Document looks up a document in the catalog the tree was resolved against.
func (r *Resolved) Document(id string) (*content.Document, bool) {
	return r.docs.Get(id)
}

// Resolve expands and verifies every sidebar. The returned tree is always
// non-nil and contains every node that resolved; when any node failed the
// error is a navigation error wrapping the joined *ResolveError values.
func Resolve(sidebars *Sidebars, docs DocumentSet) (*Resolved, error) {
	r := &resolver{docs: docs}
	out := &Resolved{docs: docs}

	for _, sb := range sidebars.All() {
		r.sidebar = sb.Name
		items := r.items(sb.Items, nil)
		out.Sidebars = append(out.Sidebars, &Sidebar{Name: sb.Name, Items: items})
	}

	out.pages = buildPageIndex(out.Sidebars)
	r.checkOverrides(out.pages)
	out.Problems = r.problems

	slog.Debug("Resolved navigation",
		slog.Int("sidebars", len(out.Sidebars)),
		logfields.Docs(out.pages.len()),
		logfields.Issues(len(r.problems)))

	if len(r.problems) == 0 {
		return out, nil
	}
	errs := make([]error, len(r.problems))
	for i, p := range r.problems {
		errs[i] = p
	}
	return out, errors.WrapError(stderrors.Join(errs...), errors.CategoryNavigation, "navigation tree does not resolve").
		UserAction().
		WithContext("problems", len(r.problems)).
		Build()
}

type resolver struct {
	docs     DocumentSet
	sidebar  string
	problems []*ResolveError
}

func (r *resolver) fail(kind ProblemKind, trail []string, docID, format string, args ...any) {
	r.problems = append(r.problems, &ResolveError{
		Kind:    kind,
		Sidebar: r.sidebar,
		Trail:   append([]string(nil), trail...),
		DocID:   docID,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *resolver) items(in []Node, trail []string) []Node {
	out := make([]Node, 0, len(in))
	for _, n := range in {
		switch v := n.(type) {
		case *DocRef:
			if d := r.doc(v, trail); d != nil {
				out = append(out, d)
			}
		case *Link:
			if strings.TrimSpace(v.Label) == "" {
				r.fail(ProblemEmptyLabel, trail, "", "link to %q has an empty label", v.Href)
				continue
			}
			if strings.TrimSpace(v.Href) == "" {
				r.fail(ProblemMissingHref, trail, "", "link %q has no href", v.Label)
				continue
			}
			l := *v
			out = append(out, &l)
		case *Category:
			if c := r.category(v, trail); c != nil {
				out = append(out, c)
			}
		case *Autogenerated:
			dir, ok := r.docs.Dir(v.DirName)
			if !ok {
				r.fail(ProblemMissingDir, trail, "", "autogenerated directory %q does not exist", v.DirName)
				continue
			}
			out = append(out, r.expand(dir, v.Style)...)
		}
	}
	return out
}

func (r *resolver) doc(v *DocRef, trail []string) *DocRef {
	doc, ok := r.docs.Get(v.ID)
	if !ok {
		r.fail(ProblemUnresolvedDoc, trail, v.ID, "doc %q does not exist", v.ID)
		return nil
	}
	d := *v
	if strings.TrimSpace(d.Label) == "" {
		d.Label = doc.Label()
	}
	if strings.TrimSpace(d.Label) == "" {
		r.fail(ProblemEmptyLabel, trail, v.ID, "doc %q has an empty label", v.ID)
		return nil
	}
	return &d
}

func (r *resolver) category(v *Category, trail []string) *Category {
	if strings.TrimSpace(v.Label) == "" {
		r.fail(ProblemEmptyLabel, trail, "", "category has an empty label")
		return nil
	}
	c := *v
	inner := append(trail[:len(trail):len(trail)], v.Label)
	c.Items = r.items(v.Items, inner)

	if v.Link != nil {
		link := *v.Link
		switch link.Type {
		case LinkTypeDoc:
			if _, ok := r.docs.Get(link.DocID); !ok {
				r.fail(ProblemUnresolvedDoc, inner, link.DocID, "category link doc %q does not exist", link.DocID)
				c.Link = nil
			} else {
				c.Link = &link
			}
		case LinkTypeGeneratedIndex:
			if link.Slug == "" {
				link.Slug = GeneratedIndexSlug(v.Label)
			}
			if link.Title == "" {
				link.Title = v.Label
			}
			c.Link = &link
		}
	}

	if len(c.Items) == 0 && c.Link == nil {
		// Only report the category itself when none of its items failed.
		if len(v.Items) == 0 {
			r.fail(ProblemEmptyCategory, trail, "", "category %q has no items and no link", v.Label)
		}
		return nil
	}
	return &c
}

// checkOverrides verifies pagination_prev / pagination_next targets of every
// document reachable from the tree.
func (r *resolver) checkOverrides(pages *pageIndex) {
	r.sidebar = ""
	for _, id := range pages.ids() {
		doc, ok := r.docs.Get(id)
		if !ok {
			continue
		}
		r.sidebar = pages.sidebarOf(id)
		for _, o := range []struct {
			key string
			ov  content.Override
		}{{"pagination_prev", doc.PaginationPrev}, {"pagination_next", doc.PaginationNext}} {
			if !o.ov.Set || o.ov.ID == "" {
				continue
			}
			if _, ok := r.docs.Get(o.ov.ID); !ok {
				r.fail(ProblemBadOverride, nil, id, "%s of %q points at missing doc %q", o.key, id, o.ov.ID)
			}
		}
	}
}

// GeneratedIndexSlug is the default route of a category's generated index.
func GeneratedIndexSlug(label string) string {
	s, err := slug.Normalize(label)
	if err != nil || s == "" {
		s = strings.ToLower(strings.Join(strings.Fields(label), "-"))
	}
	return "/category/" + s
}
