package nav

import "slices"

// PageLink is one neighbour in pagination.
type PageLink struct {
	DocID string `json:"id"`
	Label string `json:"label"`
}

// Pagination holds the previous and next neighbours of a document; either
// may be nil.
type Pagination struct {
	Previous *PageLink `json:"previous,omitempty"`
	Next     *PageLink `json:"next,omitempty"`
}

// Occurrence is one place a doc id is referenced in the tree.
type Occurrence struct {
	Sidebar string
	Trail   []string
}

type position struct {
	sidebar string
	index   int
}

// pageIndex holds the pre-order page sequence of every sidebar and the
// first occurrence of every doc.
type pageIndex struct {
	sequences   map[string][]PageLink
	first       map[string]position
	order       []string
	occurrences map[string][]Occurrence
	refs        map[string]bool
}

func buildPageIndex(sidebars []*Sidebar) *pageIndex {
	idx := &pageIndex{
		sequences:   make(map[string][]PageLink),
		first:       make(map[string]position),
		occurrences: make(map[string][]Occurrence),
		refs:        make(map[string]bool),
	}
	for _, sb := range sidebars {
		var seq []PageLink
		seen := make(map[string]bool)
		add := func(id, label string) {
			if seen[id] {
				return
			}
			seen[id] = true
			if _, ok := idx.first[id]; !ok {
				idx.first[id] = position{sidebar: sb.Name, index: len(seq)}
				idx.order = append(idx.order, id)
			}
			seq = append(seq, PageLink{DocID: id, Label: label})
		}
		_ = Walk(sb.Items, func(n Node, trail []string) error {
			switch v := n.(type) {
			case *Category:
				if v.Link != nil && v.Link.Type == LinkTypeDoc {
					idx.note(v.Link.DocID, sb.Name, trail)
					add(v.Link.DocID, v.Label)
				}
			case *DocRef:
				if v.Ref {
					idx.refs[v.ID] = true
					return nil
				}
				idx.note(v.ID, sb.Name, trail)
				add(v.ID, v.Label)
			}
			return nil
		})
		idx.sequences[sb.Name] = seq
	}
	return idx
}

func (idx *pageIndex) note(id, sidebar string, trail []string) {
	idx.occurrences[id] = append(idx.occurrences[id], Occurrence{Sidebar: sidebar, Trail: slices.Clone(trail)})
}

func (idx *pageIndex) len() int { return len(idx.order) }

func (idx *pageIndex) ids() []string { return idx.order }

func (idx *pageIndex) sidebarOf(id string) string { return idx.first[id].sidebar }

// Sequence returns the pre-order page sequence of a sidebar.
func (r *Resolved) Sequence(sidebar string) []PageLink {
	return slices.Clone(r.pages.sequences[sidebar])
}

// Pages returns every paginated doc id in first-occurrence order.
func (r *Resolved) Pages() []string {
	return slices.Clone(r.pages.order)
}

// SidebarOf returns the sidebar a doc is first paginated in.
func (r *Resolved) SidebarOf(id string) (string, bool) {
	p, ok := r.pages.first[id]
	return p.sidebar, ok
}

// Contains reports whether a doc is referenced anywhere in the tree.
func (r *Resolved) Contains(id string) bool {
	_, ok := r.pages.occurrences[id]
	return ok || r.pages.refs[id]
}

// Duplicates returns doc ids listed more than once with every place they
// occur. ref entries are not counted.
func (r *Resolved) Duplicates() map[string][]Occurrence {
	out := make(map[string][]Occurrence)
	for id, occ := range r.pages.occurrences {
		if len(occ) > 1 {
			out[id] = slices.Clone(occ)
		}
	}
	return out
}

// Pagination returns the neighbours of a doc in the sidebar where it first
// occurs. Front matter pagination_prev / pagination_next override the
// computed neighbours; an override set to null removes the neighbour.
func (r *Resolved) Pagination(id string) Pagination {
	var p Pagination
	pos, ok := r.pages.first[id]
	if ok {
		seq := r.pages.sequences[pos.sidebar]
		if pos.index > 0 {
			prev := seq[pos.index-1]
			p.Previous = &prev
		}
		if pos.index+1 < len(seq) {
			next := seq[pos.index+1]
			p.Next = &next
		}
	}

	doc, ok := r.docs.Get(id)
	if !ok {
		return p
	}
	if doc.PaginationPrev.Set {
		p.Previous = r.overrideLink(doc.PaginationPrev.ID)
	}
	if doc.PaginationNext.Set {
		p.Next = r.overrideLink(doc.PaginationNext.ID)
	}
	return p
}

func (r *Resolved) overrideLink(id string) *PageLink {
	if id == "" {
		return nil
	}
	doc, ok := r.docs.Get(id)
	if !ok {
		return nil
	}
	return &PageLink{DocID: id, Label: doc.Label()}
}
