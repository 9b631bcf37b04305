package config

import (
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var httpURL = validation.Match(regexp.MustCompile(`^https?://`)).Error("must be an absolute http(s) URL")

func init() {
	// Report field names the way they are spelled in docsite.yaml.
	validation.ErrorTag = "yaml"
}

// Validate checks the configuration. The returned error, when non-nil, is a
// validation.Errors keyed by dotted field path so callers can report each
// problem separately.
func (c *Config) Validate() error {
	errs := validation.Errors{}
	collect(errs, "site", c.Site.validate())
	collect(errs, "docs", c.Docs.validate())
	collect(errs, "footer", c.Footer.validate())
	for i, l := range c.ArticleFooter.Links {
		collect(errs, indexKey("article_footer.links", i), l.validate())
	}
	return errs.Filter()
}

func (s SiteConfig) validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.URL, validation.Required, is.URL, httpURL),
		validation.Field(&s.BaseURL, validation.Required, validation.By(slashWrapped)),
	)
}

func (d DocsConfig) validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Path, validation.Required),
		validation.Field(&d.Sidebars, validation.Required),
		validation.Field(&d.EditURL, is.URL),
	)
}

func (f FooterConfig) validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(f.Style, validation.In(FooterStyleLight, FooterStyleDark)); err != nil {
		errs["style"] = err
	}
	for i, col := range f.Links {
		for j, item := range col.Items {
			collect(errs, indexKey(indexKey("links", i)+".items", j), item.validate())
		}
	}
	return errs.Filter()
}

func (l Link) validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Label, validation.Required),
		validation.Field(&l.Href, validation.When(l.To == "", validation.Required.Error("either to or href is required")), is.URL),
		validation.Field(&l.To, validation.When(l.Href != "", validation.Empty.Error("to and href are mutually exclusive"))),
	)
}

// collect flattens nested validation.Errors under a dotted prefix.
func collect(into validation.Errors, prefix string, err error) {
	if err == nil {
		return
	}
	nested, ok := err.(validation.Errors)
	if !ok {
		into[prefix] = err
		return
	}
	for k, v := range nested {
		collect(into, prefix+"."+k, v)
	}
}

func indexKey(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func slashWrapped(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return validation.NewError("validation_slash_wrapped", "must start and end with /")
	}
	return nil
}
