package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

func (p *pass) paragraph(n ast.Node) (string, error) {
	out, ok, err := p.r.directives.render(p.enc, p.sourceLines(n))
	if err != nil {
		return "", err
	}
	if ok {
		return out, nil
	}
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	merged, err := p.human(inner)
	if err != nil {
		return "", err
	}
	return block(merged), nil
}

func (p *pass) heading(n ast.Node) (string, error) {
	node := n.(*ast.Heading)
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	marker := strings.Repeat("#", node.Level+p.r.headingOffset) + " "
	return block(p.enc.Literal(marker) + inner), nil
}

func (p *pass) thematicBreak(ast.Node) (string, error) {
	return block(p.enc.Literal("---")), nil
}

func (p *pass) codeBlock(n ast.Node) (string, error) {
	info := "no-highlight"
	if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		if value := strings.TrimSpace(string(fenced.Info.Segment.Value(p.source))); value != "" {
			info = value
		}
	}

	lines := p.sourceLines(n)
	fence := "```"
	for _, line := range lines {
		for strings.Contains(line, fence) {
			fence += "`"
		}
	}

	var b strings.Builder
	b.WriteString(p.enc.Literal(fence + info))
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(p.enc.Literal(line))
		b.WriteByte('\n')
	}
	b.WriteString(p.enc.Literal(fence))
	return block(b.String()), nil
}

func (p *pass) blockquote(n ast.Node) (string, error) {
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	lines, err := p.enc.Lines(inner)
	if err != nil {
		return "", err
	}
	if last := len(lines) - 1; last >= 0 && lines[last] == "" {
		lines = lines[:last]
	}

	var b strings.Builder
	for _, line := range lines {
		if line != "" {
			b.WriteString(p.enc.Literal("> "))
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (p *pass) htmlBlock(n ast.Node) (string, error) {
	node := n.(*ast.HTMLBlock)
	lines := p.sourceLines(n)
	if node.HasClosure() {
		lines = append(lines, strings.TrimRight(string(node.ClosureLine.Value(p.source)), "\r\n"))
	}
	out, ok, err := p.r.directives.render(p.enc, lines)
	if err != nil {
		return "", err
	}
	if ok {
		return out, nil
	}
	return "", fault.MalformedInput("block HTML not allowed: %q", strings.Join(lines, "\n"))
}

func (p *pass) footnoteList(n ast.Node) (string, error) {
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	return "\n" + inner, nil
}

// footnote renders a definition as "[^N]: first line" with continuation
// lines indented under it. N is the goldmark footnote index, which is the
// same number footnoteLink writes for every reference to this definition.
func (p *pass) footnote(n ast.Node) (string, error) {
	node := n.(*east.Footnote)
	label := string(node.Ref)
	if node.Index > 0 {
		label = strconv.Itoa(node.Index)
	}

	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	lines, err := p.enc.Lines(strings.TrimLeft(inner, "\n"))
	if err != nil {
		return "", err
	}
	lines = trimTrailingBlank(lines)

	var b strings.Builder
	b.WriteString(p.enc.Literal("[^" + label + "]: "))
	if len(lines) > 0 {
		first, err := p.human(lines[0])
		if err != nil {
			return "", err
		}
		b.WriteString(first)
	}
	b.WriteByte('\n')
	for _, line := range lines[min(1, len(lines)):] {
		if line != "" {
			b.WriteString(p.enc.Literal("    "))
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
