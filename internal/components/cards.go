package components

import (
	stderrors "errors"
	"fmt"
	"io"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ErrEmptyDestination is returned for a card without a destination.
var ErrEmptyDestination = stderrors.New("card has an empty destination")

// Card is one entry of a card list.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Destination string `json:"destination"`
	Icon        string `json:"icon,omitempty"`
}

// ValidateCards checks that every card has a destination.
func ValidateCards(cards []Card) error {
	var errs []error
	for i, c := range cards {
		if c.Destination == "" {
			errs = append(errs, fmt.Errorf("card %d (%q): %w", i, c.Title, ErrEmptyDestination))
		}
	}
	return stderrors.Join(errs...)
}

// RenderCardList writes one card per entry, in order. An empty list renders
// an empty section.
func RenderCardList(w io.Writer, cards []Card) error {
	if err := ValidateCards(cards); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid card list").Build()
	}
	if cards == nil {
		cards = []Card{}
	}
	return execute(w, "card_list.html", cards)
}

// CardsForCategory derives the cards of a category's generated index page
// from its items. A category item links to its own target, or to the first
// document it contains.
func CardsForCategory(cat *nav.Category, s *site.Site) []Card {
	cards := make([]Card, 0, len(cat.Items))
	for _, item := range cat.Items {
		switch v := item.(type) {
		case *nav.DocRef:
			c := Card{Title: v.Label, Icon: IconDoc}
			if doc, ok := s.Catalog.Get(v.ID); ok {
				c.Description = doc.Description
				c.Destination = s.Permalink(doc)
			}
			cards = append(cards, c)
		case *nav.Link:
			cards = append(cards, Card{Title: v.Label, Description: v.Href, Destination: v.Href, Icon: IconLink})
		case *nav.Category:
			c := Card{Title: v.Label, Description: v.Description, Icon: IconCategory}
			if c.Description == "" {
				c.Description = itemCount(len(v.Items))
			}
			c.Destination = s.CategoryURL(v)
			if c.Destination == "" {
				c.Destination = firstDocURL(v, s)
			}
			cards = append(cards, c)
		}
	}
	return cards
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func firstDocURL(cat *nav.Category, s *site.Site) string {
	var url string
	_ = nav.Walk(cat.Items, func(n nav.Node, _ []string) error {
		if url != "" {
			return nav.SkipChildren
		}
		switch v := n.(type) {
		case *nav.DocRef:
			url, _ = s.DocURL(v.ID)
		case *nav.Category:
			url = s.CategoryURL(v)
		}
		return nil
	})
	return url
}
