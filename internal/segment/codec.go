package segment

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

// Class identifies what a segment carries. The underlying byte is the tag
// written on the wire.
type Class byte

const (
	Literal         Class = '_'
	Translatable    Class = 'x'
	DocInclude      Class = 'd'
	ItemsInclude    Class = 'i'
	MarkdownInclude Class = 'I'
	ListEntry       Class = 'l'
	TableRow        Class = 'r'
	TableCell       Class = 'c'
	CellFlag        Class = 'f'
)

// ParseClass maps a wire tag to its class.
func ParseClass(tag byte) (Class, bool) {
	c := Class(tag)
	if c.Valid() {
		return c, true
	}
	return 0, false
}

func (c Class) Valid() bool {
	switch c {
	case Literal, Translatable, DocInclude, ItemsInclude, MarkdownInclude,
		ListEntry, TableRow, TableCell, CellFlag:
		return true
	default:
		return false
	}
}

// IsText reports whether the class carries plain text.
func (c Class) IsText() bool {
	return c == Literal || c == Translatable
}

func (c Class) IsDirective() bool {
	return c == DocInclude || c == ItemsInclude || c == MarkdownInclude
}

// IsContainer reports whether the payload is itself an encoded stream or
// structural metadata used by list and table rendering.
func (c Class) IsContainer() bool {
	return c == ListEntry || c == TableRow || c == TableCell || c == CellFlag
}

func (c Class) String() string {
	switch c {
	case Literal:
		return "literal"
	case Translatable:
		return "translatable"
	case DocInclude:
		return "doc_include"
	case ItemsInclude:
		return "items_include"
	case MarkdownInclude:
		return "markdown_include"
	case ListEntry:
		return "list_entry"
	case TableRow:
		return "table_row"
	case TableCell:
		return "table_cell"
	case CellFlag:
		return "cell_flag"
	default:
		return "unknown(" + strconv.Quote(string(rune(c))) + ")"
	}
}

// Segment is one length-prefixed unit of the encoding.
type Segment struct {
	Class   Class
	Payload string
}

// Len returns the payload length in bytes.
func (s Segment) Len() int {
	return len(s.Payload)
}

// String returns the wire form of the segment.
func (s Segment) String() string {
	return Encode(s.Class, s.Payload)
}

// Encode frames payload as <tag><byte length>:<payload>. It never omits empty
// payloads; use an Encoder for the text classes.
func Encode(class Class, payload string) string {
	var b strings.Builder
	b.Grow(len(payload) + 8)
	b.WriteByte(byte(class))
	b.WriteString(strconv.Itoa(len(payload)))
	b.WriteByte(':')
	b.WriteString(payload)
	return b.String()
}

// DecodeOne reads the segment at the head of stream and returns the
// unconsumed remainder.
func DecodeOne(stream string) (string, Segment, error) {
	if stream == "" {
		return "", Segment{}, fault.MalformedInput("empty stream")
	}
	class, ok := ParseClass(stream[0])
	if !ok {
		return "", Segment{}, fault.MalformedInput("unknown segment tag %q in %s", stream[0], preview(stream))
	}

	colon := strings.IndexByte(stream, ':')
	if colon < 0 {
		return "", Segment{}, fault.MalformedInput("missing length separator in %s", preview(stream))
	}
	digits := stream[1:colon]
	if digits == "" || !allDigits(digits) {
		return "", Segment{}, fault.MalformedInput("invalid segment length %q in %s", digits, preview(stream))
	}
	length, err := strconv.Atoi(digits)
	if err != nil {
		return "", Segment{}, fault.MalformedInput("invalid segment length %q: %v", digits, err)
	}

	body := stream[colon+1:]
	if length > len(body) {
		return "", Segment{}, fault.MalformedInput("segment length %d exceeds %d available bytes", length, len(body))
	}
	return body[length:], Segment{Class: class, Payload: body[:length]}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func preview(stream string) string {
	const max = 32
	if len(stream) > max {
		return strconv.Quote(stream[:max]) + "..."
	}
	return strconv.Quote(stream)
}

// Mode selects between the tagged wire format and plain text output.
type Mode int

const (
	// Tagged frames every text run with its class.
	Tagged Mode = iota
	// Plain writes text runs unframed. Containers are still framed so list
	// and table rendering keep working.
	Plain
)

// Encoder produces the text segments of a stream.
type Encoder struct {
	mode Mode
}

func NewEncoder(mode Mode) Encoder {
	return Encoder{mode: mode}
}

func (e Encoder) Mode() Mode {
	return e.mode
}

// Plain reports whether text runs are written unframed.
func (e Encoder) Plain() bool {
	return e.mode == Plain
}

// Literal encodes text that must never be translated. Empty text yields
// nothing.
func (e Encoder) Literal(text string) string {
	if text == "" {
		return ""
	}
	if e.Plain() {
		return text
	}
	return Encode(Literal, text)
}

// Translatable encodes text subject to localization. Leading and trailing
// spaces become separate literal segments and interior space runs collapse
// to a single space.
func (e Encoder) Translatable(text string) string {
	if text == "" {
		return ""
	}
	lead, core, trail := splitSpaces(text)
	core = collapseSpaces(core)
	if core == "" {
		return e.Literal(lead + trail)
	}
	if !e.Plain() {
		core = Encode(Translatable, core)
	}
	return e.Literal(lead) + core + e.Literal(trail)
}

// Container frames payload regardless of mode.
func (e Encoder) Container(class Class, payload string) string {
	return Encode(class, payload)
}

func splitSpaces(text string) (lead, core, trail string) {
	start := 0
	for start < len(text) && text[start] == ' ' {
		start++
	}
	end := len(text)
	for end > start && text[end-1] == ' ' {
		end--
	}
	return text[:start], text[start:end], text[end:]
}

func collapseSpaces(text string) string {
	if !strings.Contains(text, "  ") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteByte(ch)
	}
	return b.String()
}
