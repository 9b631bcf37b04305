// Package manifest produces the JSON navigation manifest consumed by the
// site generator: every resolved sidebar plus per-document permalink,
// pagination and content fingerprint.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/gitmeta"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Version of the manifest format.
const Version = 1

// Manifest is a complete record of a resolved site.
type Manifest struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Site      SiteInfo  `json:"site"`
	Search    bool      `json:"search_enabled"`
	Sidebars  []Sidebar `json:"sidebars"`
	Docs      []Doc     `json:"docs"`
}

// SiteInfo carries the passthrough site identifiers.
type SiteInfo struct {
	Title            string `json:"title"`
	Tagline          string `json:"tagline,omitempty"`
	URL              string `json:"url"`
	BaseURL          string `json:"base_url"`
	RouteBase        string `json:"route_base"`
	OrganizationName string `json:"organization_name,omitempty"`
	ProjectName      string `json:"project_name,omitempty"`
	DeploymentBranch string `json:"deployment_branch,omitempty"`
	TrailingSlash    bool   `json:"trailing_slash"`
}

// Sidebar is one resolved sidebar.
type Sidebar struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a node of a resolved sidebar.
type Item struct {
	Type        nav.Kind       `json:"type"`
	Label       string         `json:"label"`
	ID          string         `json:"id,omitempty"`
	Href        string         `json:"href,omitempty"`
	Collapsible bool           `json:"collapsible,omitempty"`
	Collapsed   bool           `json:"collapsed,omitempty"`
	Description string         `json:"description,omitempty"`
	Link        *CategoryLink  `json:"link,omitempty"`
	ClassName   string         `json:"className,omitempty"`
	Badge       string         `json:"badge,omitempty"`
	CustomProps map[string]any `json:"customProps,omitempty"`
	Items       []Item         `json:"items,omitempty"`
}

// CategoryLink is the link target of a category.
type CategoryLink struct {
	Type  nav.CategoryLinkType `json:"type"`
	ID    string               `json:"id,omitempty"`
	Title string               `json:"title,omitempty"`
	Href  string               `json:"href"`
}

// Doc is the per-document record.
type Doc struct {
	ID          string              `json:"id"`
	Path        string              `json:"path"`
	Title       string              `json:"title"`
	Label       string              `json:"label"`
	Description string              `json:"description,omitempty"`
	Permalink   string              `json:"permalink"`
	Sidebar     string              `json:"sidebar,omitempty"`
	Pagination  nav.Pagination      `json:"pagination"`
	Fingerprint string              `json:"fingerprint"`
	LastUpdate  *gitmeta.LastUpdate `json:"last_update,omitempty"`
}

// Build assembles the manifest of a loaded site.
func Build(s *site.Site, now time.Time) *Manifest {
	cfg := s.Config
	m := &Manifest{
		Version:   Version,
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Site: SiteInfo{
			Title:            cfg.Site.Title,
			Tagline:          cfg.Site.Tagline,
			URL:              cfg.Site.URL,
			BaseURL:          cfg.Site.BaseURL,
			RouteBase:        cfg.RouteBase(),
			OrganizationName: cfg.Site.OrganizationName,
			ProjectName:      cfg.Site.ProjectName,
			DeploymentBranch: cfg.Site.DeploymentBranch,
			TrailingSlash:    cfg.Site.TrailingSlash,
		},
		Search:   cfg.Search.Status() == config.SearchEnabled,
		Sidebars: make([]Sidebar, 0, len(s.Nav.Sidebars)),
		Docs:     make([]Doc, 0, s.Catalog.Len()),
	}

	for _, sb := range s.Nav.Sidebars {
		m.Sidebars = append(m.Sidebars, Sidebar{Name: sb.Name, Items: items(sb.Items, s)})
	}
	for _, doc := range s.Catalog.Docs() {
		sidebar, _ := s.Nav.SidebarOf(doc.ID)
		m.Docs = append(m.Docs, Doc{
			ID:          doc.ID,
			Path:        doc.Path,
			Title:       doc.Title,
			Label:       doc.Label(),
			Description: doc.Description,
			Permalink:   s.Permalink(doc),
			Sidebar:     sidebar,
			Pagination:  s.Nav.Pagination(doc.ID),
			Fingerprint: doc.Fingerprint,
			LastUpdate:  doc.LastUpdate,
		})
	}
	return m
}

func items(nodes []nav.Node, s *site.Site) []Item {
	out := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		hints := n.Hints()
		item := Item{
			Type:        n.Kind(),
			Label:       nav.LabelOf(n),
			ClassName:   hints.ClassName,
			Badge:       hints.Badge,
			CustomProps: hints.CustomProps,
		}
		switch v := n.(type) {
		case *nav.DocRef:
			item.ID = v.ID
			item.Href, _ = s.DocURL(v.ID)
		case *nav.Link:
			item.Href = v.Href
		case *nav.Category:
			item.Collapsible = v.Collapsible
			item.Collapsed = v.Collapsed
			item.Description = v.Description
			if v.Link != nil {
				item.Link = &CategoryLink{Type: v.Link.Type, ID: v.Link.DocID, Title: v.Link.Title, Href: s.CategoryURL(v)}
			}
			item.Items = items(v.Items, s)
		}
		out = append(out, item)
	}
	return out
}

// Find returns the record of a document.
func (m *Manifest) Find(id string) (*Doc, bool) {
	for i := range m.Docs {
		if m.Docs[i].ID == id {
			return &m.Docs[i], true
		}
	}
	return nil, false
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.InternalError("failed to marshal manifest").WithCause(err).Build()
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest content, ignoring the
// build id and timestamp. Equal hashes mean the generator input did not change.
func (m *Manifest) Hash() (string, error) {
	hashInput := struct {
		Version  int       `json:"version"`
		Site     SiteInfo  `json:"site"`
		Search   bool      `json:"search"`
		Sidebars []Sidebar `json:"sidebars"`
		Docs     []Doc     `json:"docs"`
	}{
		Version:  m.Version,
		Site:     m.Site,
		Search:   m.Search,
		Sidebars: m.Sidebars,
		Docs:     m.Docs,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", errors.InternalError("failed to marshal manifest for hashing").WithCause(err).Build()
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Write stores the manifest at path, creating parent directories.
func (m *Manifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode manifest").Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create manifest directory").
			WithContext("path", filepath.Dir(path)).Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", path).Build()
	}
	return nil
}

// Load reads a manifest written by Write.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read manifest").
			WithContext("path", path).Build()
	}
	return FromJSON(data)
}
