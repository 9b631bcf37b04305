package content

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// CategoryMeta is the optional `_category_.yaml` of a directory, used when
// the directory is expanded into an autogenerated sidebar category.
type CategoryMeta struct {
	Label       string            `yaml:"label"`
	Position    *float64          `yaml:"position"`
	Collapsed   *bool             `yaml:"collapsed"`
	Collapsible *bool             `yaml:"collapsible"`
	ClassName   string            `yaml:"className"`
	Description string            `yaml:"description"`
	Link        *CategoryLinkMeta `yaml:"link"`
}

// CategoryLinkMeta is the `link` entry of a category file.
type CategoryLinkMeta struct {
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Dir is one directory of the docs tree.
type Dir struct {
	// Path is slash separated and relative to the docs root ("" for the root).
	Path     string
	Meta     *CategoryMeta
	Docs     []*Document
	Subdirs  []string
	Position *float64
}

// Name is the last path element with its number prefix stripped.
func (d *Dir) Name() string {
	n, _ := StripNumberPrefix(path.Base(d.Path))
	return n
}

// ProblemKind classifies a discovery problem.
type ProblemKind string

const (
	ProblemFrontmatter ProblemKind = "frontmatter"
	ProblemDuplicateID ProblemKind = "duplicate-id"
	ProblemCategory    ProblemKind = "category-file"
)

// Problem is a non-fatal discovery issue attributed to a file.
type Problem struct {
	Kind ProblemKind
	Path string
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s: %v", p.Path, p.Kind, p.Err)
}

// Catalog indexes discovered documents by id, by path and by directory.
type Catalog struct {
	Root     string
	Problems []Problem

	byID   map[string]*Document
	byPath map[string]*Document
	dirs   map[string]*Dir
	order  []*Document
}

// NewCatalog returns an empty catalog rooted at root.
func NewCatalog(root string) *Catalog {
	return &Catalog{
		Root:   root,
		byID:   make(map[string]*Document),
		byPath: make(map[string]*Document),
		dirs:   map[string]*Dir{"": {Path: ""}},
	}
}

// Add indexes a document. A duplicate id is returned as an error and the
// document is not indexed.
func (c *Catalog) Add(doc *Document) error {
	if existing, ok := c.byID[doc.ID]; ok {
		return fmt.Errorf("document id %q already used by %s", doc.ID, existing.Path)
	}
	c.byID[doc.ID] = doc
	c.byPath[doc.Path] = doc
	c.order = append(c.order, doc)
	d := c.ensureDir(doc.Dir)
	d.Docs = append(d.Docs, doc)
	return nil
}

// SetCategory attaches category metadata to a directory.
func (c *Catalog) SetCategory(dir string, meta *CategoryMeta) {
	c.ensureDir(dir).Meta = meta
}

func (c *Catalog) ensureDir(dir string) *Dir {
	if d, ok := c.dirs[dir]; ok {
		return d
	}
	_, pos := StripNumberPrefix(path.Base(dir))
	d := &Dir{Path: dir, Position: pos}
	c.dirs[dir] = d

	parent := path.Dir(dir)
	if parent == "." {
		parent = ""
	}
	p := c.ensureDir(parent)
	p.Subdirs = append(p.Subdirs, dir)
	slices.Sort(p.Subdirs)
	return d
}

// Get returns the document with the given id.
func (c *Catalog) Get(id string) (*Document, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByPath returns the document at a slash-separated path relative to the root.
func (c *Catalog) ByPath(p string) (*Document, bool) {
	d, ok := c.byPath[strings.TrimPrefix(path.Clean(p), "./")]
	return d, ok
}

// Dir returns the directory at a slash-separated path ("" or "." for the root).
func (c *Catalog) Dir(p string) (*Dir, bool) {
	p = strings.Trim(path.Clean("/"+p), "/")
	d, ok := c.dirs[p]
	return d, ok
}

// Docs returns every document in discovery order.
func (c *Catalog) Docs() []*Document {
	return slices.Clone(c.order)
}

// Len returns the number of indexed documents.
func (c *Catalog) Len() int { return len(c.order) }
