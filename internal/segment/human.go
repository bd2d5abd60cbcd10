package segment

import (
	"strings"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

// Reconstructor merges a stream of small literal and translatable runs into
// one unit a translator can read as a sentence.
type Reconstructor struct {
	enc Encoder
}

func NewReconstructor(enc Encoder) Reconstructor {
	return Reconstructor{enc: enc}
}

// part is a piece of the merged run. Link markup is opaque and keeps its
// bytes when the run is normalized.
type part struct {
	text   string
	opaque bool
}

// Human decodes stream and re-encodes it as a single run: translatable when
// any translatable segment was seen, otherwise literal. Link and image
// markup starting with a literal "[" or "![" is buffered until the payload
// closing its target and then kept byte for byte inside the run.
func (r Reconstructor) Human(stream string) (string, error) {
	if r.enc.Plain() {
		return stream, nil
	}

	var (
		parts     []part
		link      strings.Builder
		buffering bool
		sawX      bool
	)

	sc := NewScanner(stream)
	for sc.Scan() {
		tok := sc.Token()
		if tok.LineEnd {
			if buffering {
				link.WriteByte(LineEnd)
			} else {
				parts = append(parts, part{text: "\n"})
			}
			continue
		}

		seg := tok.Segment
		if !seg.Class.IsText() {
			return "", fault.MalformedInput("cannot reconstruct %s segment %q", seg.Class, seg.Payload)
		}
		if seg.Payload == "" {
			continue
		}
		if seg.Class == Translatable {
			sawX = true
		}

		if buffering {
			link.WriteString(seg.Payload)
			if closesLink(seg.Payload) {
				parts = append(parts, part{text: link.String(), opaque: true})
				link.Reset()
				buffering = false
			}
			continue
		}
		if seg.Class == Literal && (seg.Payload == "[" || seg.Payload == "![") {
			buffering = true
			link.WriteString(seg.Payload)
			continue
		}
		parts = append(parts, part{text: seg.Payload})
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if buffering {
		parts = append(parts, part{text: link.String(), opaque: true})
	}

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.text)
	}
	merged := b.String()
	if !sawX {
		return r.enc.Literal(merged), nil
	}

	lead, core, trail := splitSpaces(merged)
	if core == "" {
		return r.enc.Literal(merged), nil
	}
	core = collapseOutsideLinks(parts, len(lead), len(merged)-len(trail))
	return r.enc.Literal(lead) + Encode(Translatable, core) + r.enc.Literal(trail), nil
}

func closesLink(payload string) bool {
	return strings.Contains(payload, "]") &&
		(strings.HasSuffix(payload, ")") || strings.HasSuffix(payload, ") "))
}

// collapseOutsideLinks returns the bytes [from, to) of the merged parts with
// interior space runs collapsed everywhere except inside opaque parts.
func collapseOutsideLinks(parts []part, from, to int) string {
	var (
		b     strings.Builder
		plain strings.Builder
		pos   int
	)
	flush := func() {
		b.WriteString(collapseSpaces(plain.String()))
		plain.Reset()
	}
	for _, p := range parts {
		start, stop := pos, pos+len(p.text)
		pos = stop
		lo, hi := max(start, from), min(stop, to)
		if lo >= hi {
			continue
		}
		piece := p.text[lo-start : hi-start]
		if p.opaque {
			flush()
			b.WriteString(piece)
			continue
		}
		plain.WriteString(piece)
	}
	flush()
	return b.String()
}
