package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// ManifestCmd implements the 'manifest' command.
type ManifestCmd struct {
	Output string `short:"o" help:"Manifest file path" default:"build/manifest.json" type:"path"`
}

func (m *ManifestCmd) Run(g *Global, root *CLI) error {
	s, err := loadResolved(root.Config)
	if err != nil {
		return err
	}

	man := manifest.Build(s, time.Now())
	if err := man.Write(m.Output); err != nil {
		return err
	}
	hash, err := man.Hash()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to hash manifest").Build()
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote manifest %s (%d docs, hash %s)\n", m.Output, len(man.Docs), hash[:12])
	return nil
}
