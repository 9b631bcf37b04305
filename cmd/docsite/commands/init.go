package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing files"`
	Dir   string `arg:"" optional:"" default:"." help:"Directory to scaffold" type:"path"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Initializing documentation site in %s\n", i.Dir)
	written, err := config.Init(i.Dir, i.Force)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return errors.WrapError(err, errors.CategoryConfig, "failed to scaffold site").
			WithContext("path", i.Dir).Build()
	}
	for _, p := range written {
		_, _ = fmt.Fprintf(out, "  created %s\n", p)
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
