// Package config loads docsite.yaml: the site identifiers passed through to
// the external generator, the docs/sidebars locations, and the article and
// global footer definitions rendered by the components package.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Config represents docsite.yaml.
type Config struct {
	Site          SiteConfig          `yaml:"site"`
	Docs          DocsConfig          `yaml:"docs"`
	ArticleFooter ArticleFooterConfig `yaml:"article_footer"`
	Footer        FooterConfig        `yaml:"footer"`
	Search        SearchConfig        `yaml:"-"`

	// path is the file the configuration was loaded from; relative
	// directories are resolved against its directory.
	path string
}

// SiteConfig holds values consumed verbatim by the external generator.
type SiteConfig struct {
	Title            string `yaml:"title"`
	Tagline          string `yaml:"tagline,omitempty"`
	URL              string `yaml:"url"`
	BaseURL          string `yaml:"base_url"`
	OrganizationName string `yaml:"organization_name,omitempty"`
	ProjectName      string `yaml:"project_name,omitempty"`
	DeploymentBranch string `yaml:"deployment_branch,omitempty"`
	TrailingSlash    bool   `yaml:"trailing_slash,omitempty"`
}

// DocsConfig locates content and navigation.
type DocsConfig struct {
	Path           string `yaml:"path"`
	RouteBasePath  string `yaml:"route_base_path"`
	Sidebars       string `yaml:"sidebars"`
	EditURL        string `yaml:"edit_url,omitempty"`
	ShowLastUpdate bool   `yaml:"show_last_update,omitempty"`
	IncludeDrafts  bool   `yaml:"include_drafts,omitempty"`
}

// Link is a labelled destination. To is a site-internal path, Href an
// external URL; exactly one should be set.
type Link struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Target returns whichever destination is set.
func (l Link) Target() string {
	if l.Href != "" {
		return l.Href
	}
	return l.To
}

// ArticleFooterConfig lists the calls to action rendered beneath every page.
type ArticleFooterConfig struct {
	Title string `yaml:"title,omitempty"`
	Links []Link `yaml:"links,omitempty"`
}

// FooterColumn is one titled column of the global footer.
type FooterColumn struct {
	Title string `yaml:"title"`
	Items []Link `yaml:"items"`
}

// FooterConfig describes the global footer.
type FooterConfig struct {
	Style     string         `yaml:"style,omitempty"`
	Links     []FooterColumn `yaml:"links,omitempty"`
	Copyright string         `yaml:"copyright,omitempty"`
}

// Load reads the configuration at path. .env files next to the working
// directory are loaded first and ${VAR} references are expanded. Defaults are
// applied; validation is left to Validate so callers can report every
// problem at once.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").Fatal().Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read configuration").WithContext("path", path).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
			Fatal().WithContext("path", path).Build()
	}
	cfg.path = path
	cfg.Search = SearchFromEnv()
	return cfg, nil
}

// Parse decodes configuration YAML and applies defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// DocsDir returns the docs directory resolved against the config file.
func (c *Config) DocsDir() string { return c.resolve(c.Docs.Path) }

// SidebarsPath returns the sidebars file resolved against the config file.
func (c *Config) SidebarsPath() string { return c.resolve(c.Docs.Sidebars) }

// RouteBase is the URL prefix of every document: base URL + route base path,
// with a leading and trailing slash.
func (c *Config) RouteBase() string {
	joined := strings.TrimSuffix(c.Site.BaseURL, "/") + "/" + strings.Trim(c.Docs.RouteBasePath, "/")
	if !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}
