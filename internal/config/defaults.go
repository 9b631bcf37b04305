package config

import "git.home.luguber.info/inful/docsite/internal/foundation/normalization"

const (
	defaultTitle         = "Documentation"
	defaultBaseURL       = "/"
	defaultDocsPath      = "docs"
	defaultRouteBasePath = "docs"
	defaultSidebars      = "sidebars.yaml"

	FooterStyleLight = "light"
	FooterStyleDark  = "dark"
)

var footerStyles = normalization.New("footer style", map[string]string{
	FooterStyleLight: FooterStyleLight,
	FooterStyleDark:  FooterStyleDark,
}, FooterStyleLight)

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = defaultTitle
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = defaultBaseURL
	}
	if cfg.Site.DeploymentBranch == "" {
		cfg.Site.DeploymentBranch = "gh-pages"
	}
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = defaultDocsPath
	}
	if cfg.Docs.RouteBasePath == "" {
		cfg.Docs.RouteBasePath = defaultRouteBasePath
	}
	if cfg.Docs.Sidebars == "" {
		cfg.Docs.Sidebars = defaultSidebars
	}
	if cfg.Footer.Style == "" {
		cfg.Footer.Style = FooterStyleLight
	}
	// Unknown styles are kept as written so validation can report them.
	if style, err := footerStyles.Lookup(cfg.Footer.Style); err == nil {
		cfg.Footer.Style = style
	}
}
