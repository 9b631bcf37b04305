package components

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// WriteAll renders every fragment of the site below dir and returns the
// written files relative to dir:
//
//	footer.html
//	sidebars/<name>.html
//	docs/<doc id>/article-footer.html
//	docs/<doc id>/pagination.html
//	docs/<doc id>/sidebar.html
//	category/<slug>.html
func WriteAll(s *site.Site, dir string) ([]string, error) {
	w := &fragmentWriter{dir: dir}

	w.write("footer.html", func(out io.Writer) error { return RenderFooter(out, s.Config) })
	for _, sb := range s.Nav.Sidebars {
		w.write(filepath.Join("sidebars", sb.Name+".html"), func(out io.Writer) error {
			return RenderSidebar(out, s, sb.Name, "")
		})
	}
	for _, doc := range s.Catalog.Docs() {
		base := filepath.Join("docs", filepath.FromSlash(doc.ID))
		w.write(filepath.Join(base, "article-footer.html"), func(out io.Writer) error {
			return RenderArticleFooter(out, s, doc)
		})
		w.write(filepath.Join(base, "pagination.html"), func(out io.Writer) error {
			return RenderPagination(out, s, doc.ID)
		})
		if name, ok := s.Nav.SidebarOf(doc.ID); ok {
			w.write(filepath.Join(base, "sidebar.html"), func(out io.Writer) error {
				return RenderSidebar(out, s, name, doc.ID)
			})
		}
	}
	for _, cat := range s.GeneratedIndexes() {
		name := strings.Trim(strings.TrimPrefix(cat.Link.Slug, "/category/"), "/")
		w.write(filepath.Join("category", filepath.FromSlash(name)+".html"), func(out io.Writer) error {
			return RenderCardList(out, CardsForCategory(cat, s))
		})
	}

	if w.err != nil {
		return w.files, w.err
	}
	slog.Info("Rendered components", slog.Int("files", len(w.files)), logfields.Path(dir))
	return w.files, nil
}

// fragmentWriter stops at the first error.
type fragmentWriter struct {
	dir   string
	files []string
	err   error
}

func (w *fragmentWriter) write(rel string, render func(io.Writer) error) {
	if w.err != nil {
		return
	}
	rel = filepath.Clean(rel)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		w.err = errors.NewError(errors.CategoryFileSystem, "fragment path escapes output directory").
			WithContext("path", rel).Build()
		return
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		w.err = errors.WrapError(err, errors.CategoryRender, "failed to render fragment").
			WithContext("path", rel).Build()
		return
	}
	buf.WriteByte('\n')

	target := filepath.Join(w.dir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		w.err = errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(target)).Build()
		return
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o600); err != nil {
		w.err = errors.WrapError(err, errors.CategoryFileSystem, "failed to write fragment").
			WithContext("path", target).Build()
		return
	}
	w.files = append(w.files, filepath.ToSlash(rel))
}
