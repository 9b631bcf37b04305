// Package nav models the sidebar navigation tree, resolves it against the
// content catalog and computes previous/next pagination.
//
// A tree is a closed set of node variants: *Category, *DocRef, *Link and
// *Autogenerated. Autogenerated nodes only exist before resolution; a
// Resolved tree contains categories, doc references and links.
package nav

// Kind names a node variant.
type Kind string

const (
	KindCategory      Kind = "category"
	KindDoc           Kind = "doc"
	KindLink          Kind = "link"
	KindAutogenerated Kind = "autogenerated"
)

// Node is one entry of a sidebar. The interface is sealed.
type Node interface {
	Kind() Kind
	Hints() Style
	isNode()
}

// Style carries optional presentational hints.
type Style struct {
	ClassName   string         `json:"className,omitempty"`
	Badge       string         `json:"badge,omitempty"`
	CustomProps map[string]any `json:"customProps,omitempty"`
}

// Category groups ordered child items.
type Category struct {
	Label       string
	Items       []Node
	Collapsible bool
	Collapsed   bool
	Description string
	Link        *CategoryLink
	Style
}

// CategoryLinkType selects what a category label links to.
type CategoryLinkType string

const (
	LinkTypeDoc            CategoryLinkType = "doc"
	LinkTypeGeneratedIndex CategoryLinkType = "generated-index"
)

// CategoryLink makes a category clickable: either a doc or a generated
// index page listing the category's items as cards.
type CategoryLink struct {
	Type        CategoryLinkType
	DocID       string
	Slug        string
	Title       string
	Description string
}

// DocRef references a content document by id.
type DocRef struct {
	ID    string
	Label string
	// Ref entries are shown in the sidebar but do not take part in pagination.
	Ref bool
	Style
}

// Link points at an external URL.
type Link struct {
	Label string
	Href  string
	Style
}

// Autogenerated expands into the documents of a docs directory.
type Autogenerated struct {
	DirName string
	Style
}

func (*Category) Kind() Kind      { return KindCategory }
func (*DocRef) Kind() Kind        { return KindDoc }
func (*Link) Kind() Kind          { return KindLink }
func (*Autogenerated) Kind() Kind { return KindAutogenerated }

func (c *Category) Hints() Style      { return c.Style }
func (d *DocRef) Hints() Style        { return d.Style }
func (l *Link) Hints() Style          { return l.Style }
func (a *Autogenerated) Hints() Style { return a.Style }

func (*Category) isNode()      {}
func (*DocRef) isNode()        {}
func (*Link) isNode()          {}
func (*Autogenerated) isNode() {}

// LabelOf returns the display label of a node.
func LabelOf(n Node) string {
	switch v := n.(type) {
	case *Category:
		return v.Label
	case *DocRef:
		if v.Label != "" {
			return v.Label
		}
		return v.ID
	case *Link:
		return v.Label
	case *Autogenerated:
		return v.DirName
	default:
		return ""
	}
}
