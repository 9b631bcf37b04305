package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/lint"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Format      string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet       bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Watch       bool   `short:"w" help:"Re-run the check whenever configuration, sidebars or docs change"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics of the run to this file" type:"path"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	if !c.Watch {
		return c.check(g, root.Config)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, g, root.Config)
}

func (c *CheckCmd) watch(ctx context.Context, g *Global, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	rerun := func(context.Context) {
		if err := c.check(g, cfgPath); err != nil {
			slog.Warn("Check failed", logfields.Error(err))
		}
	}
	w, err := watch.New(watch.Targets{
		ConfigPath:   cfg.Path(),
		SidebarsPath: cfg.SidebarsPath(),
		DocsDir:      cfg.DocsDir(),
	}, watch.DefaultDebounce, rerun)
	if err != nil {
		return err
	}

	rerun(ctx)
	return w.Run(ctx)
}

// check runs a single pass. Error-level issues are returned as a
// validation error so the process exits with code 2.
func (c *CheckCmd) check(g *Global, cfgPath string) error {
	start := time.Now()
	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}
	finish := func(outcome metrics.OutcomeLabel) {
		rec.IncRunOutcome(outcome)
		rec.ObserveRunDuration(time.Since(start))
		if prom == nil {
			return
		}
		if err := prom.WriteTextfile(c.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(c.MetricsFile), logfields.Error(err))
		}
	}

	s, err := site.Load(cfgPath, site.Options{Recorder: rec})
	if err != nil {
		finish(metrics.OutcomeFailed)
		return err
	}

	result := lint.NewLinter(&lint.Config{Quiet: c.Quiet, Format: c.Format}).Lint(s)
	rec.SetIssues("error", result.ErrorCount())
	rec.SetIssues("warning", result.WarningCount())
	rec.SetIssues("info", result.InfoCount())

	if err := lint.NewFormatter(c.Format).Format(g.out(), result, s.Config.Path()); err != nil {
		finish(metrics.OutcomeFailed)
		return errors.WrapError(err, errors.CategoryInternal, "failed to write check report").Build()
	}

	slog.Debug("Check finished",
		logfields.Docs(result.FilesTotal),
		logfields.Issues(len(result.Issues)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	switch {
	case result.HasErrors():
		finish(metrics.OutcomeFailed)
		return errors.ValidationError("documentation site has errors").
			WithContext("errors", result.ErrorCount()).
			WithContext("path", s.Config.Path()).
			Build()
	case result.HasWarnings():
		finish(metrics.OutcomeWarning)
	default:
		finish(metrics.OutcomeSuccess)
	}
	return nil
}
