// Package frontmatter splits and decodes the YAML front matter block of
// markdown / MDX content documents.
package frontmatter

import (
	"bytes"
	"errors"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. Both LF and CRLF line endings are recognised.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML decodes raw front matter (without delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its front matter in one step.
func Parse(content []byte) (fields map[string]any, body []byte, err error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	fields, err = ParseYAML(fm)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}

// Canonical serialises fields as YAML with sorted keys and LF newlines,
// leaving out the excluded keys. The trailing newline is trimmed so the
// result can be fed directly into a content fingerprint.
func Canonical(fields map[string]any, exclude ...string) (string, error) {
	filtered := maps.Clone(fields)
	for _, k := range exclude {
		delete(filtered, k)
	}
	if len(filtered) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(filtered); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
