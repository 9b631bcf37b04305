package nav

import "errors"

// SkipChildren can be returned by a WalkFunc to skip a category's items.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in pre-order. trail holds the labels of
// the enclosing categories, outermost first.
type WalkFunc func(n Node, trail []string) error

// Walk visits items in pre-order: a category is visited before its items,
// which are visited in listed order before the category's next sibling.
func Walk(items []Node, fn WalkFunc) error {
	return walk(items, nil, fn)
}

func walk(items []Node, trail []string, fn WalkFunc) error {
	for _, n := range items {
		err := fn(n, trail)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if c, ok := n.(*Category); ok {
			if err := walk(c.Items, append(trail[:len(trail):len(trail)], c.Label), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
