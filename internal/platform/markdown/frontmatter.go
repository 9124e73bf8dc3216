package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Note is a markdown document with optional YAML frontmatter.
type Note struct {
	Meta map[string]any
	Body string
}

// ParseNote splits content into frontmatter and body. Content without a
// leading fence is all body.
func ParseNote(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, fence)
	raw, body, ok := strings.Cut(rest, "\n"+fence)
	if !ok {
		return Note{}, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: body}, nil
}

// Render writes the frontmatter (keys sorted) followed by the body,
// separated by one blank line.
func (n Note) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence)
	if len(n.Meta) > 0 {
		raw, err := yaml.Marshal(n.Meta)
		if err != nil {
			return "", fmt.Errorf("marshal frontmatter: %w", err)
		}
		buf.Write(raw)
	}
	buf.WriteString(fence)
	if !strings.HasPrefix(n.Body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}
