package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits optional YAML/TOML front matter from the markdown
// body. Sources without front matter are returned unchanged with nil
// metadata.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	if !hasFrontMatter(source) {
		return nil, source, nil
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// hasFrontMatter only accepts a delimiter on the very first line followed by
// a line break, so a leading thematic break is not mistaken for metadata
// unless it is closed later in the file.
func hasFrontMatter(source []byte) bool {
	for _, delim := range [][]byte{[]byte("---\n"), []byte("+++\n"), []byte("---\r\n"), []byte("+++\r\n")} {
		if bytes.HasPrefix(source, delim) {
			rest := source[len(delim):]
			closing := bytes.TrimRight(delim, "\r\n")
			return bytes.Contains(rest, append([]byte("\n"), closing...)) || bytes.HasPrefix(rest, closing)
		}
	}
	return false
}
