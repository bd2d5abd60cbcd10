package segment

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

func TestHumanKeepsLinkInsideTranslatableRun(t *testing.T) {
	enc := NewEncoder(Tagged)
	stream := enc.Translatable("See ") +
		enc.Literal("[") + enc.Translatable("docs") + enc.Literal("](http://x)") +
		enc.Translatable(" now.")

	got, err := NewReconstructor(enc).Human(stream)
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	segs, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected a single segment, got %#v", segs)
	}
	if segs[0].Class != Translatable {
		t.Fatalf("expected translatable class, got %s", segs[0].Class)
	}
	if segs[0].Payload != "See [docs](http://x) now." {
		t.Fatalf("unexpected payload %q", segs[0].Payload)
	}
	if !strings.Contains(segs[0].Payload, "[docs](http://x)") {
		t.Fatalf("link markup was split")
	}
}

func TestHumanLeavesLinkSpacingUntouched(t *testing.T) {
	enc := NewEncoder(Tagged)
	stream := Encode(Translatable, "a  b ") +
		enc.Literal("![") + Encode(Translatable, "x  y") + enc.Literal(`](u "t  t")`)

	got, err := NewReconstructor(enc).Human(stream)
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	want := Encode(Translatable, `a b ![x  y](u "t  t")`)
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestHumanLiteralOnly(t *testing.T) {
	enc := NewEncoder(Tagged)
	got, err := NewReconstructor(enc).Human(enc.Literal("`code`") + enc.Literal(" "))
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	if got != "_7:`code` " {
		t.Fatalf("unexpected literal run %q", got)
	}
}

func TestHumanSplitsSurroundingSpaces(t *testing.T) {
	enc := NewEncoder(Tagged)
	stream := enc.Literal(" ") + enc.Literal("**") + enc.Translatable("bold") + enc.Literal("**") + enc.Literal("  ")

	got, err := NewReconstructor(enc).Human(stream)
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	want := "_1: x8:**bold**_2:  "
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestHumanUnterminatedLinkIsFlushed(t *testing.T) {
	enc := NewEncoder(Tagged)
	stream := enc.Translatable("open ") + enc.Literal("[") + enc.Translatable("dangling")

	got, err := NewReconstructor(enc).Human(stream)
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	if got != Encode(Translatable, "open [dangling") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestHumanLineEndsBecomeNewlines(t *testing.T) {
	enc := NewEncoder(Tagged)
	got, err := NewReconstructor(enc).Human(enc.Translatable("one") + "\n" + enc.Translatable("two"))
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	if got != Encode(Translatable, "one\ntwo") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestHumanRejectsContainers(t *testing.T) {
	enc := NewEncoder(Tagged)
	_, err := NewReconstructor(enc).Human(enc.Translatable("a") + Encode(DocInclude, "x"))
	if !fault.IsMalformedInput(err) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestHumanPlainModeIsIdentity(t *testing.T) {
	enc := NewEncoder(Plain)
	in := "See [docs](http://x)  now."
	got, err := NewReconstructor(enc).Human(in)
	if err != nil {
		t.Fatalf("Human: %v", err)
	}
	if got != in {
		t.Fatalf("expected identity, got %q", got)
	}
}
