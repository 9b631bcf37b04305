package nav

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Sidebar is a named, ordered list of top-level items.
type Sidebar struct {
	Name  string
	Items []Node
}

// Sidebars is the ordered set of sidebars declared in sidebars.yaml.
type Sidebars struct {
	list []*Sidebar
}

// NewSidebars builds sidebars programmatically, in the given order.
func NewSidebars(sidebars ...*Sidebar) *Sidebars {
	return &Sidebars{list: sidebars}
}

// All returns the sidebars in declaration order.
func (s *Sidebars) All() []*Sidebar { return s.list }

// Get returns a sidebar by name.
func (s *Sidebars) Get(name string) (*Sidebar, bool) {
	for _, sb := range s.list {
		if sb.Name == name {
			return sb, true
		}
	}
	return nil, false
}

// LoadSidebars reads and decodes a sidebars file.
func LoadSidebars(path string) (*Sidebars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNavigation, "failed to read sidebars").
			Fatal().WithContext("path", path).Build()
	}
	sb, err := ParseSidebars(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNavigation, "invalid sidebars file").
			Fatal().UserAction().WithContext("path", path).Build()
	}
	return sb, nil
}

// ParseSidebars decodes sidebars YAML.
func ParseSidebars(data []byte) (*Sidebars, error) {
	var sb Sidebars
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}

// UnmarshalYAML decodes a mapping of sidebar name to items, preserving order.
func (s *Sidebars) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return lineErr(value, "sidebars must be a mapping of sidebar name to items")
	}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		if seen[key.Value] {
			return lineErr(key, "duplicate sidebar %q", key.Value)
		}
		seen[key.Value] = true

		items, err := decodeItems(body)
		if err != nil {
			return err
		}
		s.list = append(s.list, &Sidebar{Name: key.Value, Items: items})
	}
	return nil
}

// decodeItems accepts a sequence of items or the shorthand mapping
// `{Category label: [items]}`.
func decodeItems(n *yaml.Node) ([]Node, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := decodeItem(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.MappingNode:
		return decodeShorthandCategories(n)
	default:
		return nil, lineErr(n, "expected a list of items")
	}
}

func decodeShorthandCategories(n *yaml.Node) ([]Node, error) {
	items := make([]Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		children, err := decodeItems(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		items = append(items, &Category{
			Label:       n.Content[i].Value,
			Items:       children,
			Collapsible: true,
			Collapsed:   true,
		})
	}
	return items, nil
}

type rawLink struct {
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type rawItem struct {
	Type        string         `yaml:"type"`
	ID          string         `yaml:"id"`
	Label       *string        `yaml:"label"`
	Href        string         `yaml:"href"`
	DirName     string         `yaml:"dirName"`
	Items       yaml.Node      `yaml:"items"`
	Collapsed   *bool          `yaml:"collapsed"`
	Collapsible *bool          `yaml:"collapsible"`
	Description string         `yaml:"description"`
	Link        *rawLink       `yaml:"link"`
	ClassName   string         `yaml:"className"`
	Badge       string         `yaml:"badge"`
	CustomProps map[string]any `yaml:"customProps"`
}

func decodeItem(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if strings.TrimSpace(n.Value) == "" {
			return nil, lineErr(n, "empty doc id")
		}
		return &DocRef{ID: n.Value}, nil
	case yaml.MappingNode:
	default:
		return nil, lineErr(n, "expected a doc id or an item mapping")
	}

	if !hasKey(n, "type") {
		if len(n.Content) == 2 && n.Content[1].Kind == yaml.SequenceNode {
			cats, err := decodeShorthandCategories(n)
			if err != nil {
				return nil, err
			}
			return cats[0], nil
		}
		if hasKey(n, "id") {
			return decodeTyped(n, "doc")
		}
		return nil, lineErr(n, "item needs a type")
	}
	return decodeTyped(n, "")
}

func decodeTyped(n *yaml.Node, fallbackType string) (Node, error) {
	var raw rawItem
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	if raw.Type == "" {
		raw.Type = fallbackType
	}
	style := Style{ClassName: raw.ClassName, Badge: raw.Badge, CustomProps: raw.CustomProps}
	label := ""
	if raw.Label != nil {
		label = *raw.Label
	}

	switch raw.Type {
	case "doc", "ref":
		if raw.ID == "" {
			return nil, lineErr(n, "%s item needs an id", raw.Type)
		}
		return &DocRef{ID: raw.ID, Label: label, Ref: raw.Type == "ref", Style: style}, nil
	case "link":
		if raw.Label == nil {
			return nil, lineErr(n, "link item needs a label")
		}
		return &Link{Label: label, Href: raw.Href, Style: style}, nil
	case "autogenerated":
		if raw.DirName == "" {
			return nil, lineErr(n, "autogenerated item needs a dirName")
		}
		return &Autogenerated{DirName: raw.DirName, Style: style}, nil
	case "category":
		if raw.Label == nil {
			return nil, lineErr(n, "category item needs a label")
		}
		cat := &Category{
			Label:       label,
			Collapsible: true,
			Collapsed:   true,
			Description: raw.Description,
			Style:       style,
		}
		if raw.Collapsible != nil {
			cat.Collapsible = *raw.Collapsible
		}
		if raw.Collapsed != nil {
			cat.Collapsed = *raw.Collapsed
		}
		if !cat.Collapsible {
			cat.Collapsed = false
		}
		if raw.Items.Kind != 0 {
			items, err := decodeItems(&raw.Items)
			if err != nil {
				return nil, err
			}
			cat.Items = items
		}
		if raw.Link != nil {
			link, err := decodeCategoryLink(n, raw.Link)
			if err != nil {
				return nil, err
			}
			cat.Link = link
		}
		return cat, nil
	default:
		return nil, lineErr(n, "unknown item type %q", raw.Type)
	}
}

func decodeCategoryLink(n *yaml.Node, raw *rawLink) (*CategoryLink, error) {
	switch CategoryLinkType(raw.Type) {
	case LinkTypeDoc:
		if raw.ID == "" {
			return nil, lineErr(n, "category doc link needs an id")
		}
		return &CategoryLink{Type: LinkTypeDoc, DocID: raw.ID}, nil
	case LinkTypeGeneratedIndex:
		return &CategoryLink{
			Type:        LinkTypeGeneratedIndex,
			Slug:        raw.Slug,
			Title:       raw.Title,
			Description: raw.Description,
		}, nil
	default:
		return nil, lineErr(n, "unknown category link type %q", raw.Type)
	}
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

func lineErr(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
