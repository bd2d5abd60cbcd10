package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// DefaultExtensions lists the goldmark extensions enabled when the
// configuration names none.
var DefaultExtensions = []string{"table", "strikethrough", "footnote", "tasklist"}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
	"footnotes":     extension.Footnote,
}

// SupportedExtension reports whether name maps to a goldmark extension the
// renderer has handlers for.
func SupportedExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// newGoldmarkParser builds the block and inline parser only; rendering is done
// by the dispatch table, so goldmark's HTML renderer is never used.
func newGoldmarkParser(names []string) parser.Parser {
	engine := goldmark.New(goldmark.WithExtensions(collectExtensions(names)...))
	return engine.Parser()
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		names = DefaultExtensions
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
