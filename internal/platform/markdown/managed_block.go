package markdown

import "strings"

// Block is a generated region of a note delimited by two marker lines.
// Everything outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's content in body, appending the block when body
// has none yet.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + generated + "\n" + b.End
	if start, end, ok := b.bounds(body); ok {
		return body[:start] + block + body[end:]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

// Content returns what is currently between the markers.
func (b Block) Content(body string) (string, bool) {
	start, end, ok := b.bounds(body)
	if !ok {
		return "", false
	}
	inner := body[start+len(b.Start) : end-len(b.End)]
	return strings.Trim(inner, "\n"), true
}

func (b Block) bounds(body string) (int, int, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return 0, 0, false
	}
	end := strings.Index(body[start+len(b.Start):], b.End)
	if end < 0 {
		return 0, 0, false
	}
	return start, start + len(b.Start) + end + len(b.End), true
}
