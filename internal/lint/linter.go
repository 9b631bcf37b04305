package lint

import (
	"cmp"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Linter runs rules over a loaded site.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a linter with every built-in rule.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&ConfigRule{},
			&SearchRule{},
			&NavigationRule{},
			&DuplicateDocRule{},
			&ContentRule{},
			&OrphanRule{},
			&BrokenLinkRule{},
			&CardRule{},
		},
	}
}

// Rules returns the rules the linter applies, in order.
func (l *Linter) Rules() []Rule {
	return slices.Clone(l.rules)
}

// Lint applies every rule to s. Issues are ordered by file, line and rule
// so output is stable across runs.
func (l *Linter) Lint(s *site.Site) *Result {
	result := &Result{Issues: []Issue{}}
	if s.Catalog != nil {
		result.FilesTotal = s.Catalog.Len()
	}

	for _, rule := range l.rules {
		issues := rule.Check(s)
		slog.Debug("Lint rule finished", logfields.Rule(rule.Name()), logfields.Issues(len(issues)))
		for _, issue := range issues {
			// Skip info and warnings in quiet mode
			if l.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}

	slices.SortStableFunc(result.Issues, func(a, b Issue) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Rule, b.Rule),
		)
	})
	return result
}
