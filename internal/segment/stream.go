package segment

import (
	"strings"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

// LineEnd is the bare byte placed between segments to mark a source line end.
const LineEnd = '\n'

// Token is either one decoded segment or a line end.
type Token struct {
	LineEnd bool
	Segment Segment
	// Raw holds the wire bytes the token was read from.
	Raw string
}

// Scanner walks a tagged stream token by token. Newlines inside payloads are
// never reported as line ends since boundaries come from the length fields.
type Scanner struct {
	stream string
	pos    int
	tok    Token
	err    error
}

func NewScanner(stream string) *Scanner {
	return &Scanner{stream: stream}
}

// Scan advances to the next token. It returns false at the end of the stream
// or on the first decode error, which Err then reports.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.stream) {
		return false
	}
	rest := s.stream[s.pos:]
	if rest[0] == LineEnd {
		s.tok = Token{LineEnd: true, Raw: rest[:1]}
		s.pos++
		return true
	}
	next, seg, err := DecodeOne(rest)
	if err != nil {
		s.err = err
		return false
	}
	consumed := len(rest) - len(next)
	s.tok = Token{Segment: seg, Raw: rest[:consumed]}
	s.pos += consumed
	return true
}

func (s *Scanner) Token() Token {
	return s.tok
}

// Offset is the byte position just past the current token.
func (s *Scanner) Offset() int {
	return s.pos
}

func (s *Scanner) Err() error {
	return s.err
}

// Tokens decodes the whole stream.
func Tokens(stream string) ([]Token, error) {
	var out []Token
	sc := NewScanner(stream)
	for sc.Scan() {
		out = append(out, sc.Token())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode returns the segments of stream, skipping line ends.
func Decode(stream string) ([]Segment, error) {
	var out []Segment
	sc := NewScanner(stream)
	for sc.Scan() {
		if tok := sc.Token(); !tok.LineEnd {
			out = append(out, tok.Segment)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Lines splits stream on line-end tokens. Like strings.Split, n line ends
// produce n+1 parts, each still encoded.
func Lines(stream string) ([]string, error) {
	lines := make([]string, 0, 4)
	start := 0
	sc := NewScanner(stream)
	for sc.Scan() {
		if sc.Token().LineEnd {
			lines = append(lines, stream[start:sc.Offset()-1])
			start = sc.Offset()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return append(lines, stream[start:]), nil
}

// Lines splits an encoded stream into source lines, honouring the encoder
// mode. Plain streams are split on every newline.
func (e Encoder) Lines(stream string) ([]string, error) {
	if e.Plain() {
		return strings.Split(stream, "\n"), nil
	}
	return Lines(stream)
}

// Text returns the decoded text of a stream of text segments and line ends.
func (e Encoder) Text(stream string) (string, error) {
	if e.Plain() {
		return stream, nil
	}
	var b strings.Builder
	sc := NewScanner(stream)
	for sc.Scan() {
		tok := sc.Token()
		switch {
		case tok.LineEnd:
			b.WriteByte(LineEnd)
		case tok.Segment.Class.IsText():
			b.WriteString(tok.Segment.Payload)
		default:
			return "", fault.MalformedInput("unexpected %s segment in text", tok.Segment.Class)
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Containers decodes a stream made only of container segments of the given
// classes. Line ends between them are ignored.
func Containers(stream string, classes ...Class) ([]Segment, error) {
	segs, err := Decode(stream)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if !classIn(seg.Class, classes) {
			return nil, fault.MalformedInput("unexpected %s segment, want one of %v", seg.Class, classes)
		}
	}
	return segs, nil
}

func classIn(c Class, classes []Class) bool {
	for _, candidate := range classes {
		if c == candidate {
			return true
		}
	}
	return false
}
