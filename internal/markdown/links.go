package markdown

import (
	"net/url"
	"path"
	"strings"
)

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
	// LinkKindReferenceDefinition is a `[label]: dest` definition.
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
	Line        int
}

// IsExternal reports whether the destination carries a scheme or is
// protocol-relative. External links are not verified.
func (l Link) IsExternal() bool {
	if strings.HasPrefix(l.Destination, "//") {
		return true
	}
	u, err := url.Parse(l.Destination)
	return err == nil && u.Scheme != ""
}

// IsDocLink reports whether the destination points at another markdown
// document by relative file path (e.g. `../setup.md#ports`).
func (l Link) IsDocLink() bool {
	if l.Kind == LinkKindImage || l.IsExternal() || strings.HasPrefix(l.Destination, "#") {
		return false
	}
	ext := path.Ext(l.Target())
	return ext == ".md" || ext == ".mdx"
}

// Target returns the destination without fragment or query.
func (l Link) Target() string {
	dest := l.Destination
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	return dest
}
