// Package commands implements the docsite subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; stdout when nil.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file path" default:"docsite.yaml" type:"path"`
	EnvFile string           `name:"env-file" help:"Additional .env file loaded before the configuration" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check    CheckCmd    `cmd:"" default:"1" help:"Load the site, resolve navigation and report problems"`
	Nav      NavCmd      `cmd:"" help:"Print sidebar order and pagination"`
	Render   RenderCmd   `cmd:"" help:"Write sidebar, card list, footer and pagination fragments"`
	Manifest ManifestCmd `cmd:"" help:"Write the JSON navigation manifest"`
	Init     InitCmd     `cmd:"" help:"Scaffold docsite.yaml, sidebars.yaml and a docs directory"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if c.EnvFile != "" {
		// Explicit env files are required to exist, unlike the implicit .env.
		if err := godotenv.Load(c.EnvFile); err != nil {
			return err
		}
	}
	return nil
}
