package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-mdstrings/internal/segment"
)

// listItem packs an item into a ListEntry container. The first line is
// merged for translation; the remaining lines are kept as rendered and get
// indented by the enclosing list.
func (p *pass) listItem(n ast.Node) (string, error) {
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	lines, err := p.enc.Lines(strings.TrimLeft(inner, "\n"))
	if err != nil {
		return "", err
	}
	lines = trimTrailingBlank(lines)

	tight := true
	if list, ok := n.Parent().(*ast.List); ok {
		tight = list.IsTight
	}

	var b strings.Builder
	if len(lines) > 0 {
		first, err := p.human(lines[0])
		if err != nil {
			return "", err
		}
		b.WriteString(first)
	}
	b.WriteByte('\n')
	for _, line := range lines[min(1, len(lines)):] {
		if line == "" && tight {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return p.enc.Container(segment.ListEntry, b.String()), nil
}

// list numbers ordered items from 1 whatever the source numbering and uses a
// single "* " bullet for unordered items.
func (p *pass) list(n ast.Node) (string, error) {
	node := n.(*ast.List)
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	entries, err := segment.Containers(inner, segment.ListEntry)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteByte('\n')
	for i, entry := range entries {
		marker := "* "
		if node.IsOrdered() {
			marker = strconv.Itoa(i+1) + ". "
		}
		indent := p.enc.Literal(strings.Repeat(" ", len(marker)))

		lines, err := p.enc.Lines(entry.Payload)
		if err != nil {
			return "", err
		}
		lines = trimTrailingBlank(lines)
		for j, line := range lines {
			switch {
			case j == 0:
				b.WriteString(p.enc.Literal(marker))
				b.WriteString(line)
			case line != "":
				b.WriteString(indent)
				b.WriteString(line)
			}
			b.WriteByte('\n')
		}
		if len(lines) == 0 {
			b.WriteString(p.enc.Literal(marker))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
