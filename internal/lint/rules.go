package lint

import (
	stderrors "errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/docsite/internal/components"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Rule identifiers.
const (
	RuleNavUnresolvedDoc      = "nav-unresolved-doc"
	RuleNavEmptyLabel         = "nav-empty-label"
	RuleNavLinkHref           = "nav-link-href"
	RuleNavEmptyCategory      = "nav-empty-category"
	RuleNavAutogenDir         = "nav-autogen-dir"
	RuleNavPaginationOverride = "nav-pagination-override"
	RuleNavDuplicateDoc       = "nav-duplicate-doc"
	RuleContentFrontmatter    = "content-frontmatter"
	RuleContentDuplicateID    = "content-duplicate-id"
	RuleContentOrphan         = "content-orphan"
	RuleContentBrokenLink     = "content-broken-link"
	RuleConfigInvalid         = "config-invalid"
	RuleConfigSearch          = "config-search"
	RuleCardEmptyDestination  = "card-empty-destination"
)

func configFile(s *site.Site) string {
	if s.Config == nil || s.Config.Path() == "" {
		return "docsite.yaml"
	}
	return filepath.Base(s.Config.Path())
}

func sidebarsFile(s *site.Site) string {
	return filepath.ToSlash(s.Config.Docs.Sidebars)
}

func docFile(s *site.Site, rel string) string {
	return path.Join(filepath.ToSlash(s.Config.Docs.Path), rel)
}

// ConfigRule reports configuration validation failures, one issue per field.
type ConfigRule struct{}

func (r *ConfigRule) Name() string { return RuleConfigInvalid }

func (r *ConfigRule) Check(s *site.Site) []Issue {
	if s.ConfigErr == nil {
		return nil
	}
	var verrs validation.Errors
	if !stderrors.As(s.ConfigErr, &verrs) {
		return []Issue{{
			FilePath: configFile(s),
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  s.ConfigErr.Error(),
		}}
	}

	keys := make([]string, 0, len(verrs))
	for k := range verrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	issues := make([]Issue, 0, len(keys))
	for _, k := range keys {
		issues = append(issues, Issue{
			FilePath: configFile(s),
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("%s: %v", k, verrs[k]),
		})
	}
	return issues
}

// SearchRule warns about incomplete search credentials. Missing
// credentials only disable search.
type SearchRule struct{}

func (r *SearchRule) Name() string { return RuleConfigSearch }

func (r *SearchRule) Check(s *site.Site) []Issue {
	if s.Config.Search.Status() != config.SearchPartial {
		return nil
	}
	return []Issue{{
		FilePath:    configFile(s),
		Severity:    SeverityWarning,
		Rule:        r.Name(),
		Message:     "Search credentials are incomplete; search stays disabled",
		Explanation: "Missing: " + strings.Join(s.Config.Search.Missing(), ", "),
		Fix:         "Set all search variables or none of them",
	}}
}

// NavigationRule reports navigation resolution failures.
type NavigationRule struct{}

func (r *NavigationRule) Name() string { return "nav" }

var navRules = map[nav.ProblemKind]struct {
	rule string
	fix  string
}{
	nav.ProblemUnresolvedDoc: {RuleNavUnresolvedDoc, "Fix the doc id or create the document"},
	nav.ProblemEmptyLabel:    {RuleNavEmptyLabel, "Give the item a non-empty label"},
	nav.ProblemMissingHref:   {RuleNavLinkHref, "Give the link an href"},
	nav.ProblemEmptyCategory: {RuleNavEmptyCategory, "Add items or a link to the category, or remove it"},
	nav.ProblemMissingDir:    {RuleNavAutogenDir, "Point dirName at a directory below the docs root"},
	nav.ProblemBadOverride:   {RuleNavPaginationOverride, "Point pagination_prev/pagination_next at an existing doc id or null"},
}

func (r *NavigationRule) Check(s *site.Site) []Issue {
	if s.Nav == nil {
		return nil
	}
	issues := make([]Issue, 0, len(s.Nav.Problems))
	for _, p := range s.Nav.Problems {
		meta := navRules[p.Kind]
		issue := Issue{
			FilePath: sidebarsFile(s),
			Severity: SeverityError,
			Rule:     meta.rule,
			Message:  p.Error(),
			Fix:      meta.fix,
			DocID:    p.DocID,
		}
		if p.Kind == nav.ProblemBadOverride {
			if doc, ok := s.Catalog.Get(p.DocID); ok {
				issue.FilePath = docFile(s, doc.Path)
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

// DuplicateDocRule warns about docs referenced more than once. Pagination
// uses the first occurrence.
type DuplicateDocRule struct{}

func (r *DuplicateDocRule) Name() string { return RuleNavDuplicateDoc }

func (r *DuplicateDocRule) Check(s *site.Site) []Issue {
	if s.Nav == nil {
		return nil
	}
	dups := s.Nav.Duplicates()
	ids := make([]string, 0, len(dups))
	for id := range dups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	issues := make([]Issue, 0, len(ids))
	for _, id := range ids {
		places := make([]string, 0, len(dups[id]))
		for _, o := range dups[id] {
			places = append(places, strings.Join(append([]string{o.Sidebar}, o.Trail...), " > "))
		}
		issues = append(issues, Issue{
			FilePath:    sidebarsFile(s),
			Severity:    SeverityWarning,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("doc %q is referenced %d times", id, len(dups[id])),
			Explanation: "Referenced in:\n" + strings.Join(places, "\n") + "\nPrevious/next links follow the first occurrence.",
			DocID:       id,
		})
	}
	return issues
}

// ContentRule reports documents that could not be read or indexed.
type ContentRule struct{}

func (r *ContentRule) Name() string { return "content" }

func (r *ContentRule) Check(s *site.Site) []Issue {
	if s.Catalog == nil {
		return nil
	}
	issues := make([]Issue, 0, len(s.Catalog.Problems))
	for _, p := range s.Catalog.Problems {
		issue := Issue{
			FilePath: docFile(s, p.Path),
			Severity: SeverityError,
			Message:  p.Err.Error(),
		}
		switch p.Kind {
		case content.ProblemDuplicateID:
			issue.Rule = RuleContentDuplicateID
			issue.Fix = "Set a unique `id` in the front matter or rename the file"
		default:
			issue.Rule = RuleContentFrontmatter
			issue.Fix = "Fix the YAML between the --- delimiters"
		}
		issues = append(issues, issue)
	}
	return issues
}

// OrphanRule warns about documents no sidebar references.
type OrphanRule struct{}

func (r *OrphanRule) Name() string { return RuleContentOrphan }

func (r *OrphanRule) Check(s *site.Site) []Issue {
	if s.Catalog == nil || s.Nav == nil {
		return nil
	}
	var issues []Issue
	for _, doc := range s.Catalog.Docs() {
		if s.Nav.Contains(doc.ID) {
			continue
		}
		issues = append(issues, Issue{
			FilePath: docFile(s, doc.Path),
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("doc %q is not reachable from any sidebar", doc.ID),
			Fix:      "Reference the doc in " + sidebarsFile(s) + " or mark it as draft",
			DocID:    doc.ID,
		})
	}
	return issues
}

// BrokenLinkRule warns about relative links to markdown files that do not
// exist. External links are not checked.
type BrokenLinkRule struct{}

func (r *BrokenLinkRule) Name() string { return RuleContentBrokenLink }

func (r *BrokenLinkRule) Check(s *site.Site) []Issue {
	if s.Catalog == nil {
		return nil
	}
	var issues []Issue
	for _, doc := range s.Catalog.Docs() {
		for _, link := range markdown.ExtractLinks(doc.Body) {
			if !link.IsDocLink() {
				continue
			}
			target := link.Target()
			if strings.HasPrefix(target, "/") {
				target = strings.TrimPrefix(target, "/")
			} else {
				target = path.Join(doc.Dir, target)
			}
			if linkExists(s.Catalog, target) {
				continue
			}
			issues = append(issues, Issue{
				FilePath: docFile(s, doc.Path),
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("link to missing file %s", link.Destination),
				Line:     doc.BodyLine + link.Line,
				DocID:    doc.ID,
			})
		}
	}
	return issues
}

// linkExists accepts indexed documents and files discovery skipped, such
// as drafts or partials.
func linkExists(c *content.Catalog, rel string) bool {
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return false
	}
	if _, ok := c.ByPath(rel); ok {
		return true
	}
	_, err := os.Stat(filepath.Join(c.Root, filepath.FromSlash(rel)))
	return err == nil
}

// CardRule checks that every generated index page renders cards with a
// destination.
type CardRule struct{}

func (r *CardRule) Name() string { return RuleCardEmptyDestination }

func (r *CardRule) Check(s *site.Site) []Issue {
	if s.Nav == nil {
		return nil
	}
	var issues []Issue
	for _, cat := range s.GeneratedIndexes() {
		for _, card := range components.CardsForCategory(cat, s) {
			if card.Destination != "" {
				continue
			}
			issues = append(issues, Issue{
				FilePath: sidebarsFile(s),
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("card %q on the %q index page has no destination", card.Title, cat.Label),
				Fix:      "Give the category a link or at least one document",
			})
		}
	}
	return issues
}
