// Package content discovers the markdown / MDX documents of a docs directory
// and indexes them by document id.
package content

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/gitmeta"
)

// Document is one authored markdown or MDX page.
type Document struct {
	// ID is the stable identifier navigation references resolve against:
	// the directory (number prefixes stripped) joined with the front matter
	// id or the file name.
	ID string
	// Path is the slash-separated path relative to the docs root.
	Path string
	// SourcePath is the OS path the document was read from.
	SourcePath string
	// Dir is the slash-separated directory relative to the docs root ("" for the root).
	Dir string
	// Name is the file name without extension and number prefix.
	Name string

	Title           string
	SidebarLabel    string
	Description     string
	Slug            string
	SidebarPosition *float64
	Draft           bool

	PaginationPrev Override
	PaginationNext Override

	Frontmatter map[string]any
	Body        []byte
	// BodyLine is the number of source lines preceding Body.
	BodyLine    int
	Fingerprint string
	LastUpdate  *gitmeta.LastUpdate
}

// Override is an explicit pagination neighbour from front matter. Set is
// true when the key is present; an empty ID means "no neighbour".
type Override struct {
	Set bool
	ID  string
}

// Label is the text used for the document in navigation.
func (d *Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// IsIndex reports whether the document is the index page of its directory.
func (d *Document) IsIndex() bool {
	n := strings.ToLower(d.Name)
	return n == "index" || n == "readme"
}

// URLPath returns the document route relative to the docs route base,
// without leading slash.
func (d *Document) URLPath() string {
	switch {
	case strings.HasPrefix(d.Slug, "/"):
		return strings.Trim(d.Slug, "/")
	case d.Slug != "":
		return strings.Trim(path.Join(stripDirPrefixes(d.Dir), d.Slug), "/")
	case d.IsIndex():
		return stripDirPrefixes(d.Dir)
	default:
		return strings.Trim(path.Join(stripDirPrefixes(d.Dir), d.Name), "/")
	}
}

// Permalink joins the route base (for example "/project/docs/") with the
// document route.
func (d *Document) Permalink(routeBase string, trailingSlash bool) string {
	return JoinRoute(routeBase, d.URLPath(), trailingSlash)
}

// JoinRoute joins a route base and a relative route into an absolute URL path.
func JoinRoute(routeBase, rel string, trailingSlash bool) string {
	p := "/" + strings.Trim(strings.TrimSuffix(routeBase, "/")+"/"+strings.Trim(rel, "/"), "/")
	if trailingSlash && p != "/" {
		p += "/"
	}
	return p
}

var numberPrefix = regexp.MustCompile(`^(\d+)\s*[-_.]+\s*([^-_.\s].*)$`)

// StripNumberPrefix removes an ordering prefix such as "01-" from a file or
// directory name and returns the prefix as a position.
func StripNumberPrefix(name string) (string, *float64) {
	m := numberPrefix.FindStringSubmatch(name)
	if m == nil {
		return name, nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return name, nil
	}
	return m[2], &n
}

func stripDirPrefixes(dir string) string {
	if dir == "" {
		return ""
	}
	parts := strings.Split(dir, "/")
	for i, p := range parts {
		parts[i], _ = StripNumberPrefix(p)
	}
	return strings.Join(parts, "/")
}
