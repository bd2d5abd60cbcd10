package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func (p *pass) text(n ast.Node) (string, error) {
	node := n.(*ast.Text)
	value := string(node.Segment.Value(p.source))
	if node.IsRaw() {
		return p.enc.Literal(value), nil
	}
	if node.HardLineBreak() {
		value = strings.TrimRight(value, " ")
		value = strings.TrimSuffix(value, "\\")
	}

	out := p.textRuns(value)
	switch {
	case node.HardLineBreak():
		p.prose.WriteByte(proseBreak)
		out += p.enc.Literal("\\\n")
	case node.SoftLineBreak():
		p.prose.WriteByte(proseBreak)
		out += p.enc.Literal(" ")
	}
	return out, nil
}

// textRuns encodes prose, keeping backslash escapes as literal runs.
func (p *pass) textRuns(value string) string {
	var (
		b     strings.Builder
		start int
	)
	flush := func(end int) {
		if end > start {
			p.prose.WriteString(value[start:end])
			b.WriteString(p.enc.Translatable(normalizeText(value[start:end])))
		}
	}
	for i := 0; i < len(value)-1; i++ {
		if value[i] != '\\' || !strings.ContainsRune(asciiPunct, rune(value[i+1])) {
			continue
		}
		flush(i)
		p.prose.WriteByte(proseBreak)
		b.WriteString(p.enc.Literal(value[i : i+2]))
		i++
		start = i + 1
	}
	flush(len(value))
	return b.String()
}

func normalizeText(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "\t", "        ")
}

func (p *pass) str(n ast.Node) (string, error) {
	node := n.(*ast.String)
	value := string(node.Value)
	if node.IsCode() || node.IsRaw() {
		return p.enc.Literal(value), nil
	}
	p.prose.WriteString(value)
	return p.enc.Translatable(normalizeText(value)), nil
}

func (p *pass) emphasis(n ast.Node) (string, error) {
	node := n.(*ast.Emphasis)
	return p.wrap(n, strings.Repeat("*", node.Level))
}

func (p *pass) strikethrough(n ast.Node) (string, error) {
	return p.wrap(n, "~~")
}

func (p *pass) wrap(n ast.Node, marker string) (string, error) {
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	return p.enc.Literal(marker) + inner + p.enc.Literal(marker), nil
}

func (p *pass) codeSpan(n ast.Node) (string, error) {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Segment.Value(p.source)
			if len(value) > 0 && value[len(value)-1] == '\n' {
				b.Write(value[:len(value)-1])
				b.WriteByte(' ')
				continue
			}
			b.Write(value)
		case *ast.String:
			b.Write(c.Value)
		default:
			return "", fault.MalformedInput("unsupported construct %s in code span", child.Kind())
		}
	}
	return p.enc.Literal(codeSpanMarkup(b.String())), nil
}

// codeSpanMarkup wraps code in a backtick fence longer than any backtick run
// it contains, padding with spaces where the fence would otherwise merge.
func codeSpanMarkup(code string) string {
	longest, run := 0, 0
	for i := 0; i < len(code); i++ {
		if code[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)

	pad := ""
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") {
		pad = " "
	} else if len(code) > 1 && code[0] == ' ' && code[len(code)-1] == ' ' && strings.TrimSpace(code) != "" {
		pad = " "
	}
	return fence + pad + code + pad + fence
}

func (p *pass) link(n ast.Node) (string, error) {
	node := n.(*ast.Link)
	return p.linkMarkup(n, "[", node.Destination, node.Title)
}

func (p *pass) image(n ast.Node) (string, error) {
	node := n.(*ast.Image)
	return p.linkMarkup(n, "![", node.Destination, node.Title)
}

func (p *pass) linkMarkup(n ast.Node, open string, destination, title []byte) (string, error) {
	label, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	target := "](" + string(destination)
	if len(title) > 0 {
		target += ` "` + strings.ReplaceAll(string(title), `"`, `\"`) + `"`
	}
	target += ")"
	return p.enc.Literal(open) + label + p.enc.Literal(target), nil
}

func (p *pass) autoLink(n ast.Node) (string, error) {
	node := n.(*ast.AutoLink)
	return p.enc.Literal("<" + string(node.Label(p.source)) + ">"), nil
}

func (p *pass) rawHTML(n ast.Node) (string, error) {
	node := n.(*ast.RawHTML)
	var b strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		seg := node.Segments.At(i)
		b.Write(seg.Value(p.source))
	}
	return "", fault.MalformedInput("inline HTML not allowed: %q", b.String())
}

// taskCheckBox writes the box followed by one space. A box glued to the
// text after it, as in "[x](y)", stays glued.
func (p *pass) taskCheckBox(n ast.Node) (string, error) {
	box := "[ ]"
	if n.(*east.TaskCheckBox).IsChecked {
		box = "[x]"
	}
	if lines := p.sourceLines(n.Parent()); len(lines) > 0 {
		line := strings.TrimLeft(lines[0], " \t")
		if len(line) > len(box) && line[len(box)] != ' ' && line[len(box)] != '\t' {
			return p.enc.Literal(box), nil
		}
	}
	return p.enc.Literal(box + " "), nil
}

func (p *pass) footnoteLink(n ast.Node) (string, error) {
	node := n.(*east.FootnoteLink)
	return p.enc.Literal("[^" + strconv.Itoa(node.Index) + "]"), nil
}

func (p *pass) footnoteBacklink(ast.Node) (string, error) {
	return "", nil
}
