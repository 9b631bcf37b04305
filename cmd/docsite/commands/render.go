package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/components"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output string `short:"o" help:"Directory the HTML fragments are written to" default:"build/components" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	s, err := loadResolved(root.Config)
	if err != nil {
		return err
	}

	written, err := components.WriteAll(s, r.Output)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %d fragments to %s\n", len(written), r.Output)
	return nil
}

// loadResolved loads a site and refuses to continue when its
// configuration is invalid or its navigation does not resolve.
func loadResolved(cfgPath string) (*site.Site, error) {
	s, err := site.Load(cfgPath, site.Options{})
	if err != nil {
		return nil, err
	}
	if s.ConfigErr != nil {
		return nil, errors.WrapError(s.ConfigErr, errors.CategoryConfig, "invalid site configuration").
			UserAction().WithContext("path", s.Config.Path()).Build()
	}
	if s.ResolveErr != nil {
		return nil, s.ResolveErr
	}
	return s, nil
}
