package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/internal/runtimeconfig"
	"github.com/goliatone/go-mdstrings/internal/segment"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// handlerFunc renders one node into an encoded stream. Handlers pull the
// rendered stream of their children through the pass when they need it.
type handlerFunc func(p *pass, n ast.Node) (string, error)

// Renderer turns markdown into a tagged stream, classifying every span as
// literal or translatable. A Renderer is safe to reuse sequentially; each
// call to Render uses its own pass state.
type Renderer struct {
	enc           segment.Encoder
	human         segment.Reconstructor
	parser        parser.Parser
	directives    *directiveMatcher
	headingOffset int
	debug         bool
	logger        interfaces.Logger
	handlers      map[ast.NodeKind]handlerFunc
}

// NewRenderer builds a renderer from the runtime configuration. A nil logger
// disables the debug trace.
func NewRenderer(cfg runtimeconfig.Config, logger interfaces.Logger) *Renderer {
	if logger == nil {
		logger = logging.NoOp()
	}
	mode := segment.Tagged
	if cfg.Human {
		mode = segment.Plain
	}
	enc := segment.NewEncoder(mode)

	r := &Renderer{
		enc:           enc,
		human:         segment.NewReconstructor(enc),
		parser:        newGoldmarkParser(cfg.Markdown.Extensions),
		directives:    newDirectiveMatcher(cfg.Directives),
		headingOffset: cfg.HeadingOffset,
		debug:         cfg.Debug,
		logger:        logger,
	}
	r.handlers = r.defaultHandlers()
	return r
}

// Encoder exposes the encoder matching the renderer mode.
func (r *Renderer) Encoder() segment.Encoder {
	return r.enc
}

func (r *Renderer) defaultHandlers() map[ast.NodeKind]handlerFunc {
	return map[ast.NodeKind]handlerFunc{
		ast.KindDocument:        (*pass).renderChildren,
		ast.KindTextBlock:       (*pass).renderChildren,
		ast.KindParagraph:       (*pass).paragraph,
		ast.KindHeading:         (*pass).heading,
		ast.KindThematicBreak:   (*pass).thematicBreak,
		ast.KindCodeBlock:       (*pass).codeBlock,
		ast.KindFencedCodeBlock: (*pass).codeBlock,
		ast.KindBlockquote:      (*pass).blockquote,
		ast.KindHTMLBlock:       (*pass).htmlBlock,
		ast.KindList:            (*pass).list,
		ast.KindListItem:        (*pass).listItem,

		ast.KindText:     (*pass).text,
		ast.KindString:   (*pass).str,
		ast.KindEmphasis: (*pass).emphasis,
		ast.KindCodeSpan: (*pass).codeSpan,
		ast.KindLink:     (*pass).link,
		ast.KindImage:    (*pass).image,
		ast.KindAutoLink: (*pass).autoLink,
		ast.KindRawHTML:  (*pass).rawHTML,

		east.KindStrikethrough:    (*pass).strikethrough,
		east.KindTaskCheckBox:     (*pass).taskCheckBox,
		east.KindTable:            (*pass).table,
		east.KindTableHeader:      (*pass).tableRow,
		east.KindTableRow:         (*pass).tableRow,
		east.KindTableCell:        (*pass).tableCell,
		east.KindFootnoteLink:     (*pass).footnoteLink,
		east.KindFootnoteBacklink: (*pass).footnoteBacklink,
		east.KindFootnoteList:     (*pass).footnoteList,
		east.KindFootnote:         (*pass).footnote,
	}
}

// Render parses source and returns the document-level stream.
func (r *Renderer) Render(source []byte) (string, error) {
	root := r.parser.Parse(text.NewReader(source))
	p := &pass{r: r, enc: r.enc, source: source}
	out, err := p.render(root)
	if err != nil {
		return "", err
	}
	if err := r.directives.stray(p.prose.String()); err != nil {
		return "", err
	}
	return out, nil
}

// pass holds the state of one conversion.
type pass struct {
	r      *Renderer
	enc    segment.Encoder
	source []byte
	depth  int
	// prose collects the translatable text seen so far. Markup between
	// runs is recorded as proseBreak.
	prose strings.Builder
}

const proseBreak = '\x00'

func (p *pass) render(n ast.Node) (string, error) {
	handler, ok := p.r.handlers[n.Kind()]
	if !ok {
		return "", fault.MalformedInput("unsupported construct %s", n.Kind())
	}
	inline := n.Kind() == ast.KindText || n.Kind() == ast.KindString
	if !inline {
		p.prose.WriteByte(proseBreak)
	}
	p.depth++
	out, err := handler(p, n)
	p.depth--
	if !inline {
		p.prose.WriteByte(proseBreak)
	}
	if err != nil {
		return "", err
	}
	if p.r.debug {
		p.r.logger.Debug("markdown handler",
			"kind", n.Kind().String(),
			"depth", p.depth,
			"output", out,
		)
	}
	return out, nil
}

func (p *pass) renderChildren(n ast.Node) (string, error) {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out, err := p.render(child)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (p *pass) human(stream string) (string, error) {
	return p.r.human.Human(stream)
}

// sourceLines returns the raw source lines of a block without line endings.
func (p *pass) sourceLines(n ast.Node) []string {
	lines := n.Lines()
	if lines == nil {
		return nil
	}
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(p.source)), "\r\n"))
	}
	return out
}

// block wraps a block body so it starts on a fresh line.
func block(body string) string {
	return "\n" + body + "\n"
}
