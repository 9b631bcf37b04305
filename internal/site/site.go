// Package site loads a documentation site: configuration, content catalog
// and the resolved navigation tree.
package site

import (
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/gitmeta"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// Stage names reported to the metrics recorder.
const (
	StageConfig   = "config"
	StageDiscover = "discover"
	StageSidebars = "sidebars"
	StageResolve  = "resolve"
)

// Site is a loaded documentation site.
type Site struct {
	Config   *config.Config
	Catalog  *content.Catalog
	Sidebars *nav.Sidebars
	Nav      *nav.Resolved

	// ConfigErr holds configuration validation failures.
	ConfigErr error
	// ResolveErr holds navigation resolution failures; Nav is still usable.
	ResolveErr error
}

// Options controls loading.
type Options struct {
	Recorder metrics.Recorder
}

// Load reads the configuration at cfgPath and everything it points to.
// Failures that leave nothing to inspect (unreadable configuration, docs
// directory or sidebars file) are returned as errors; validation and
// resolution failures are recorded on the Site for reporting.
func Load(cfgPath string, opts Options) (*Site, error) {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	s := &Site{}

	err := metrics.Stage(rec, StageConfig, func() error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		s.Config = cfg
		s.ConfigErr = cfg.Validate()
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = metrics.Stage(rec, StageDiscover, func() error {
		catalog, err := content.Discover(s.Config.DocsDir(), content.Options{
			IncludeDrafts: s.Config.Docs.IncludeDrafts,
			Git:           openGit(s.Config),
		})
		if err != nil {
			return err
		}
		s.Catalog = catalog
		rec.SetDocuments(catalog.Len())
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = metrics.Stage(rec, StageSidebars, func() error {
		sb, err := nav.LoadSidebars(s.Config.SidebarsPath())
		if err != nil {
			return err
		}
		s.Sidebars = sb
		return nil
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.Nav, s.ResolveErr = nav.Resolve(s.Sidebars, s.Catalog)
	rec.ObserveStageDuration(StageResolve, time.Since(start))
	if s.ResolveErr != nil {
		rec.IncStageResult(StageResolve, metrics.ResultWarning)
	} else {
		rec.IncStageResult(StageResolve, metrics.ResultSuccess)
	}
	return s, nil
}

// openGit returns commit metadata for the docs directory when the article
// footer shows last-update lines. A missing repository only disables them.
func openGit(cfg *config.Config) content.LastUpdater {
	if !cfg.Docs.ShowLastUpdate {
		return nil
	}
	repo, err := gitmeta.Open(cfg.DocsDir())
	if err != nil {
		slog.Warn("Last update metadata unavailable", logfields.Path(cfg.DocsDir()), logfields.Error(err))
		return nil
	}
	return repo
}

// DocURL returns the absolute URL path of a document.
func (s *Site) DocURL(id string) (string, bool) {
	doc, ok := s.Catalog.Get(id)
	if !ok {
		return "", false
	}
	return s.Permalink(doc), true
}

// Permalink returns the absolute URL path of doc.
func (s *Site) Permalink(doc *content.Document) string {
	return doc.Permalink(s.Config.RouteBase(), s.Config.Site.TrailingSlash)
}

// CategoryURL returns the destination of a category's link, or "" when
// the category is not clickable.
func (s *Site) CategoryURL(c *nav.Category) string {
	if c.Link == nil {
		return ""
	}
	switch c.Link.Type {
	case nav.LinkTypeDoc:
		u, _ := s.DocURL(c.Link.DocID)
		return u
	case nav.LinkTypeGeneratedIndex:
		return content.JoinRoute(s.Config.RouteBase(), c.Link.Slug, s.Config.Site.TrailingSlash)
	default:
		return ""
	}
}

// EditURL returns the "Edit this page" URL of doc, or "" when no edit URL
// is configured.
func (s *Site) EditURL(doc *content.Document) string {
	base := s.Config.Docs.EditURL
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + path.Join(filepath.ToSlash(s.Config.Docs.Path), doc.Path)
}

// GeneratedIndexes returns every category with a generated index page, in
// sidebar order.
func (s *Site) GeneratedIndexes() []*nav.Category {
	var out []*nav.Category
	for _, sb := range s.Nav.Sidebars {
		_ = nav.Walk(sb.Items, func(n nav.Node, _ []string) error {
			if c, ok := n.(*nav.Category); ok && c.Link != nil && c.Link.Type == nav.LinkTypeGeneratedIndex {
				out = append(out, c)
			}
			return nil
		})
	}
	return out
}
