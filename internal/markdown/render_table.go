package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/segment"
)

const (
	flagAlign      = "align"
	minColumnWidth = 5
)

// tableCell emits the cell flags followed by the cell content. Line ends in
// the content become spaces.
func (p *pass) tableCell(n ast.Node) (string, error) {
	node := n.(*east.TableCell)
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	content, err := p.flattenCell(inner)
	if err != nil {
		return "", err
	}
	flag := p.enc.Container(segment.CellFlag, flagAlign+"="+node.Alignment.String())
	return flag + p.enc.Container(segment.TableCell, content), nil
}

// flattenCell joins the lines of a cell and keeps a "!" that directly
// precedes a literal "[" together with it, so the image marker stays literal
// and the alt text keeps its own translatable run.
func (p *pass) flattenCell(stream string) (string, error) {
	if p.enc.Plain() {
		return strings.ReplaceAll(stream, "\n", " "), nil
	}
	tokens, err := segment.Tokens(stream)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.LineEnd {
			b.WriteString(p.enc.Literal(" "))
			continue
		}
		seg := tok.Segment
		if seg.Class == segment.Translatable && strings.HasSuffix(seg.Payload, "!") && i+1 < len(tokens) {
			next := tokens[i+1]
			if !next.LineEnd && next.Segment.Class == segment.Literal && next.Segment.Payload == "[" {
				b.WriteString(p.enc.Translatable(strings.TrimSuffix(seg.Payload, "!")))
				b.WriteString(p.enc.Literal("!["))
				i++
				continue
			}
		}
		b.WriteString(tok.Raw)
	}
	return b.String(), nil
}

func (p *pass) tableRow(n ast.Node) (string, error) {
	inner, err := p.renderChildren(n)
	if err != nil {
		return "", err
	}
	return p.enc.Container(segment.TableRow, inner), nil
}

type tableCell struct {
	flags   map[string]string
	content string
}

// table renders header rows, a canonical separator row and body rows. Column
// widths and alignment are collected from every row before anything is
// written.
func (p *pass) table(n ast.Node) (string, error) {
	var header, body [][]tableCell
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out, err := p.render(child)
		if err != nil {
			return "", err
		}
		rows, err := p.decodeRows(out)
		if err != nil {
			return "", err
		}
		if child.Kind() == east.KindTableHeader {
			header = append(header, rows...)
		} else {
			body = append(body, rows...)
		}
	}

	var (
		widths []int
		align  []string
	)
	for _, row := range append(append([][]tableCell{}, header...), body...) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, minColumnWidth)
				align = append(align, "")
			}
			text, err := p.enc.Text(cell.content)
			if err != nil {
				return "", err
			}
			widths[i] = max(widths[i], runewidth.StringWidth(text))
			if value, ok := cell.flags[flagAlign]; ok {
				align[i] = value
			}
		}
	}

	var b strings.Builder
	b.WriteByte('\n')
	for _, row := range header {
		p.writeRow(&b, row)
	}
	for i := range widths {
		if i > 0 {
			b.WriteString(p.enc.Literal(" | "))
		}
		b.WriteString(p.enc.Literal(separatorCell(align[i], widths[i])))
	}
	b.WriteByte('\n')
	for _, row := range body {
		p.writeRow(&b, row)
	}
	return b.String(), nil
}

func (p *pass) writeRow(b *strings.Builder, row []tableCell) {
	for i, cell := range row {
		if i > 0 {
			b.WriteString(p.enc.Literal(" | "))
		}
		b.WriteString(cell.content)
	}
	b.WriteByte('\n')
}

func (p *pass) decodeRows(stream string) ([][]tableCell, error) {
	rows, err := segment.Containers(stream, segment.TableRow)
	if err != nil {
		return nil, err
	}
	out := make([][]tableCell, 0, len(rows))
	for _, row := range rows {
		parts, err := segment.Containers(row.Payload, segment.CellFlag, segment.TableCell)
		if err != nil {
			return nil, err
		}
		var (
			cells []tableCell
			flags = map[string]string{}
		)
		for _, part := range parts {
			if part.Class == segment.CellFlag {
				key, value, ok := strings.Cut(part.Payload, "=")
				if !ok {
					return nil, fault.MalformedInput("invalid cell flag %q", part.Payload)
				}
				flags[key] = value
				continue
			}
			cells = append(cells, tableCell{flags: flags, content: part.Payload})
			flags = map[string]string{}
		}
		out = append(out, cells)
	}
	return out, nil
}

func separatorCell(align string, width int) string {
	width = max(width, minColumnWidth)
	switch align {
	case east.AlignCenter.String():
		return ":" + strings.Repeat("-", width-2) + ":"
	case east.AlignLeft.String():
		return ":" + strings.Repeat("-", width-1)
	case east.AlignRight.String():
		return strings.Repeat("-", width-1) + ":"
	default:
		return strings.Repeat("-", width)
	}
}
