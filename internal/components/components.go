// Package components renders the presentational fragments of the site:
// card lists, the sidebar, previous/next pagination, the article footer and
// the global footer. Each renderer writes a self-contained HTML fragment.
package components

import (
	"embed"
	"html/template"
	"io"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to render component").
			WithContext("component", name).Build()
	}
	return nil
}

// Icons used for cards by item kind.
const (
	IconDoc      = "📄"
	IconLink     = "🔗"
	IconCategory = "🗃️"
)
