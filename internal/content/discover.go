package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/gitmeta"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// LastUpdater provides commit metadata for a file. *gitmeta.Repo implements it.
type LastUpdater interface {
	LastUpdate(file string) (*gitmeta.LastUpdate, error)
}

// Options controls discovery.
type Options struct {
	// IncludeDrafts keeps documents marked `draft: true`.
	IncludeDrafts bool
	// Git, when set, fills Document.LastUpdate.
	Git LastUpdater
}

var categoryFiles = map[string]bool{
	"_category_.yaml": true,
	"_category_.yml":  true,
	"_category_.json": true,
}

// IsDocFile reports whether a file name is a markdown or MDX document.
func IsDocFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// Discover walks root and returns the catalog of documents found. Problems
// with individual files are recorded on the catalog; only an unreadable
// root is returned as an error.
func Discover(root string, opts Options) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryContent, "docs directory not readable").
			Fatal().WithContext("path", root).Build()
	}
	if !info.IsDir() {
		return nil, errors.ContentError("docs path is not a directory").Fatal().WithContext("path", root).Build()
	}

	catalog := NewCatalog(root)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == root {
			return nil
		}
		name := d.Name()

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}

		if categoryFiles[name] {
			catalog.loadCategory(p, path.Dir(rel))
			return nil
		}
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || !IsDocFile(name) {
			return nil
		}

		doc, err := readDocument(p, rel)
		if err != nil {
			catalog.Problems = append(catalog.Problems, Problem{Kind: ProblemFrontmatter, Path: rel, Err: err})
			return nil
		}
		if doc.Draft && !opts.IncludeDrafts {
			slog.Debug("Skipping draft document", logfields.DocID(doc.ID), logfields.Path(rel))
			return nil
		}
		if opts.Git != nil {
			lu, err := opts.Git.LastUpdate(p)
			if err != nil {
				slog.Debug("No last update metadata", logfields.Path(rel), logfields.Error(err))
			}
			doc.LastUpdate = lu
		}
		if err := catalog.Add(doc); err != nil {
			catalog.Problems = append(catalog.Problems, Problem{Kind: ProblemDuplicateID, Path: rel, Err: err})
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk docs directory").
			WithContext("path", root).Build()
	}

	slog.Debug("Discovered documents", logfields.Docs(catalog.Len()), logfields.Path(root))
	return catalog, nil
}

func (c *Catalog) loadCategory(file, dir string) {
	if dir == "." {
		dir = ""
	}
	data, err := os.ReadFile(file)
	if err == nil {
		var meta CategoryMeta
		if err = yaml.Unmarshal(data, &meta); err == nil {
			c.SetCategory(dir, &meta)
			return
		}
	}
	c.Problems = append(c.Problems, Problem{Kind: ProblemCategory, Path: path.Join(dir, path.Base(filepath.ToSlash(file))), Err: err})
}

func readDocument(file, rel string) (*Document, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	fields, body, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, err
	}

	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	name, pos := StripNumberPrefix(base)

	doc := &Document{
		Path:            rel,
		SourcePath:      file,
		Dir:             dir,
		Name:            name,
		SidebarPosition: pos,
		Frontmatter:     fields,
		Body:            body,
		BodyLine:        bytes.Count(raw[:len(raw)-len(body)], []byte("\n")),
	}

	localID := name
	if id, ok, err := stringField(fields, "id"); err != nil {
		return nil, err
	} else if ok && id != "" {
		if strings.Contains(id, "/") {
			return nil, fmt.Errorf("front matter id %q must not contain '/'", id)
		}
		localID = id
	}
	doc.ID = strings.TrimPrefix(path.Join(stripDirPrefixes(dir), localID), "/")

	for key, dst := range map[string]*string{
		"title":         &doc.Title,
		"sidebar_label": &doc.SidebarLabel,
		"description":   &doc.Description,
		"slug":          &doc.Slug,
	} {
		v, _, err := stringField(fields, key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	if doc.Title == "" {
		doc.Title = markdown.ExtractTitle(body)
	}
	if doc.Title == "" {
		doc.Title = localID
	}

	if v, ok := fields["sidebar_position"]; ok {
		n, err := number(v)
		if err != nil {
			return nil, fmt.Errorf("sidebar_position: %w", err)
		}
		doc.SidebarPosition = &n
	}
	if v, ok := fields["draft"].(bool); ok {
		doc.Draft = v
	}
	if doc.PaginationPrev, err = override(fields, "pagination_prev"); err != nil {
		return nil, err
	}
	if doc.PaginationNext, err = override(fields, "pagination_next"); err != nil {
		return nil, err
	}

	canonical, err := frontmatter.Canonical(fields, mdfp.FingerprintField, "lastmod")
	if err != nil {
		return nil, err
	}
	doc.Fingerprint = mdfp.CalculateFingerprintFromParts(canonical, string(body))
	return doc, nil
}

func stringField(fields map[string]any, key string) (string, bool, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch s := v.(type) {
	case string:
		return s, true, nil
	case int, float64, bool:
		return fmt.Sprint(s), true, nil
	default:
		return "", false, fmt.Errorf("front matter %s must be a string, got %T", key, v)
	}
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
}

func override(fields map[string]any, key string) (Override, error) {
	v, ok := fields[key]
	if !ok {
		return Override{}, nil
	}
	if v == nil {
		return Override{Set: true}, nil
	}
	s, ok := v.(string)
	if !ok {
		return Override{}, fmt.Errorf("front matter %s must be a document id or null", key)
	}
	return Override{Set: true, ID: s}, nil
}
