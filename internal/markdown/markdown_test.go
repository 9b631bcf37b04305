package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"first h1", "Intro text\n\n# Run a Validator\n\n# Second\n", "Run a Validator"},
		{"emphasis inside", "# The *Quick* Start\n", "The Quick Start"},
		{"no h1", "## Only h2\n", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle([]byte(tt.body)))
		})
	}
}

func TestExtractLinks(t *testing.T) {
	body := []byte("See [setup](./setup.md#ports) and ![diagram](img/a.png).\n\n" +
		"Visit <https://example.com>.\n\n" +
		"[faq]: ../faq.mdx\n")

	links := ExtractLinks(body)
	require.Len(t, links, 4)

	assert.Equal(t, LinkKindInline, links[0].Kind)
	assert.Equal(t, "./setup.md#ports", links[0].Destination)
	assert.Equal(t, 1, links[0].Line)
	assert.Equal(t, LinkKindImage, links[1].Kind)
	assert.Equal(t, LinkKindAuto, links[2].Kind)
	assert.Equal(t, 3, links[2].Line)
	assert.Equal(t, LinkKindReferenceDefinition, links[3].Kind)
	assert.Equal(t, "../faq.mdx", links[3].Destination)
}

func TestLinkClassification(t *testing.T) {
	tests := []struct {
		link     Link
		external bool
		doc      bool
		target   string
	}{
		{Link{Kind: LinkKindInline, Destination: "./setup.md#ports"}, false, true, "./setup.md"},
		{Link{Kind: LinkKindInline, Destination: "https://github.com/org/repo"}, true, false, "https://github.com/org/repo"},
		{Link{Kind: LinkKindInline, Destination: "//cdn.example.com/x.md"}, true, false, "//cdn.example.com/x.md"},
		{Link{Kind: LinkKindInline, Destination: "#anchor"}, false, false, ""},
		{Link{Kind: LinkKindImage, Destination: "a.md"}, false, false, "a.md"},
		{Link{Kind: LinkKindInline, Destination: "my%20page.mdx?x=1"}, false, true, "my page.mdx"},
	}
	for _, tt := range tests {
		t.Run(tt.link.Destination, func(t *testing.T) {
			assert.Equal(t, tt.external, tt.link.IsExternal())
			assert.Equal(t, tt.doc, tt.link.IsDocLink())
			assert.Equal(t, tt.target, tt.link.Target())
		})
	}
}
