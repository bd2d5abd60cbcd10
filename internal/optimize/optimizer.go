// Package optimize turns a finished document stream into output records,
// merging adjacent runs of the same class and lifting include directives
// into records of their own.
package optimize

import (
	"strings"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/segment"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// Record aliases the shared output record so callers of this package do not
// need to import pkg/interfaces.
type Record = interfaces.Record

// maxLineEnds is the longest run of consecutive line ends kept by
// Canonicalize; one blank line separates blocks.
const maxLineEnds = 2

type Optimizer struct {
	enc segment.Encoder
}

func New(enc segment.Encoder) *Optimizer {
	return &Optimizer{enc: enc}
}

// Canonicalize trims line ends from both ends of the stream and caps runs of
// line ends at two. Applying it twice gives the same result as once.
func (o *Optimizer) Canonicalize(stream string) (string, error) {
	if o.enc.Plain() {
		text := strings.TrimSpace(stream)
		for strings.Contains(text, "\n\n\n") {
			text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
		}
		return text, nil
	}

	tokens, err := segment.Tokens(stream)
	if err != nil {
		return "", err
	}
	start, end := 0, len(tokens)
	for start < end && tokens[start].LineEnd {
		start++
	}
	for end > start && tokens[end-1].LineEnd {
		end--
	}

	var (
		b   strings.Builder
		run int
	)
	b.Grow(len(stream))
	for _, tok := range tokens[start:end] {
		if tok.LineEnd {
			run++
			if run > maxLineEnds {
				continue
			}
		} else {
			run = 0
		}
		b.WriteString(tok.Raw)
	}
	return b.String(), nil
}

// Optimize canonicalizes stream and folds it into records. In plain mode the
// whole document becomes a single literal record.
func (o *Optimizer) Optimize(stream string) ([]Record, error) {
	canonical, err := o.Canonicalize(stream)
	if err != nil {
		return nil, err
	}
	if o.enc.Plain() {
		if canonical == "" {
			return nil, nil
		}
		return []Record{{Kind: interfaces.RecordLiteral, Text: canonical}}, nil
	}

	lines, err := segment.Lines(canonical)
	if err != nil {
		return nil, err
	}
	acc := &accumulator{}
	for i, line := range lines {
		segs, err := segment.Decode(line)
		if err != nil {
			return nil, err
		}
		segs = nonEmpty(segs)

		if acc.pendingLineEnd {
			acc.resolveLineEnd(len(segs) > 0 && segs[0].Class == segment.Translatable)
		}
		for _, seg := range segs {
			if err := acc.add(seg); err != nil {
				return nil, err
			}
		}
		// A directive record stands in for its whole line, so its own line
		// end is dropped: "a\n\n<dir>\n\nb" keeps "\n\n" before the
		// directive and "\n" after it.
		if i == len(lines)-1 || directivesOnly(segs) {
			continue
		}
		acc.lineEnd()
	}
	if acc.pendingLineEnd {
		acc.resolveLineEnd(false)
	}
	acc.flushLiteral()
	acc.flushTranslatable()
	return acc.records, nil
}

// accumulator holds the pending literal and translatable buffers. At most one
// of them is non-empty at any time.
type accumulator struct {
	records      []Record
	literal      strings.Builder
	translatable strings.Builder
	// pendingLineEnd marks a line end after translatable text whose class is
	// decided by the start of the next line.
	pendingLineEnd bool
}

func (a *accumulator) add(seg segment.Segment) error {
	switch {
	case seg.Class == segment.Literal:
		a.flushTranslatable()
		a.literal.WriteString(seg.Payload)
	case seg.Class == segment.Translatable:
		a.flushLiteral()
		a.translatable.WriteString(seg.Payload)
	case seg.Class.IsDirective():
		a.flushLiteral()
		a.flushTranslatable()
		a.records = append(a.records, Record{Kind: directiveKind(seg.Class), Text: seg.Payload})
	default:
		return fault.MalformedInput("unexpected %s segment at document level", seg.Class)
	}
	return nil
}

// lineEnd records the end of a source line. A newline following translatable
// text is held back so consecutive translatable lines merge into one record.
func (a *accumulator) lineEnd() {
	if a.translatable.Len() > 0 {
		a.pendingLineEnd = true
		return
	}
	a.literal.WriteByte('\n')
}

func (a *accumulator) resolveLineEnd(continuesTranslatable bool) {
	a.pendingLineEnd = false
	if continuesTranslatable {
		a.translatable.WriteByte('\n')
		return
	}
	a.flushTranslatable()
	a.literal.WriteByte('\n')
}

func (a *accumulator) flushLiteral() {
	if a.literal.Len() == 0 {
		return
	}
	a.records = append(a.records, Record{Kind: interfaces.RecordLiteral, Text: a.literal.String()})
	a.literal.Reset()
}

func (a *accumulator) flushTranslatable() {
	if a.translatable.Len() == 0 {
		return
	}
	a.records = append(a.records, Record{Kind: interfaces.RecordTranslatable, Text: a.translatable.String()})
	a.translatable.Reset()
}

func directiveKind(class segment.Class) interfaces.RecordKind {
	switch class {
	case segment.DocInclude:
		return interfaces.RecordDocInclude
	case segment.ItemsInclude:
		return interfaces.RecordItemsInclude
	default:
		return interfaces.RecordMarkdownInclude
	}
}

func directivesOnly(segs []segment.Segment) bool {
	if len(segs) == 0 {
		return false
	}
	for _, seg := range segs {
		if !seg.Class.IsDirective() {
			return false
		}
	}
	return true
}

func nonEmpty(segs []segment.Segment) []segment.Segment {
	out := segs[:0]
	for _, seg := range segs {
		if seg.Payload == "" && !seg.Class.IsDirective() {
			continue
		}
		out = append(out, seg)
	}
	return out
}
