package markdown

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/identity"
)

func TestLoaderLoadFile(t *testing.T) {
	files := fstest.MapFS{
		"docs/a.md": {Data: []byte("+++\ntitle = \"A\"\n+++\nBody\n")},
	}
	loader := NewLoader(files, LoaderConfig{BasePath: "/srv", MaxBytes: 1024, StripFrontMatter: true})

	doc, err := loader.LoadFile(context.Background(), "/srv/docs/a.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FilePath != "docs/a.md" {
		t.Fatalf("expected relative path, got %q", doc.FilePath)
	}
	if doc.ID != identity.DocumentUUID("docs/a.md") {
		t.Fatalf("unexpected id %s", doc.ID)
	}
	if doc.FrontMatter["title"] != "A" {
		t.Fatalf("expected toml front matter, got %v", doc.FrontMatter)
	}
}

func TestLoaderKeepsFrontMatterWhenDisabled(t *testing.T) {
	source := "---\ntitle: A\n---\nBody\n"
	files := fstest.MapFS{"a.md": {Data: []byte(source)}}
	loader := NewLoader(files, LoaderConfig{BasePath: "."})

	doc, err := loader.LoadFile(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Body) != source || doc.FrontMatter != nil {
		t.Fatalf("expected untouched body, got %q %v", doc.Body, doc.FrontMatter)
	}
}

func TestLoaderRejectsOversizedInput(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("0123456789")}}
	loader := NewLoader(files, LoaderConfig{BasePath: ".", MaxBytes: 9})

	_, err := loader.LoadFile(context.Background(), "a.md")
	if !fault.IsMalformedInput(err) {
		t.Fatalf("expected input too large, got %v", err)
	}

	loader = NewLoader(files, LoaderConfig{BasePath: ".", MaxBytes: 10})
	if _, err := loader.LoadFile(context.Background(), "a.md"); err != nil {
		t.Fatalf("expected input at the cap to load, got %v", err)
	}
}

func TestLoaderPathErrors(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("x")}}

	noBase := NewLoader(files, LoaderConfig{BasePath: "."})
	if _, err := noBase.LoadFile(context.Background(), "/abs/a.md"); err == nil {
		t.Fatal("expected error for absolute path without base")
	}

	based := NewLoader(files, LoaderConfig{BasePath: "/srv/docs"})
	if _, err := based.LoadFile(context.Background(), "/srv/other/a.md"); err == nil {
		t.Fatal("expected error for path outside base")
	}
}

func TestLoaderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := NewLoader(fstest.MapFS{}, LoaderConfig{})
	if _, err := loader.LoadFile(ctx, "a.md"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseFrontMatter(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		wantMeta bool
		wantBody string
	}{
		{"yaml", "---\ntitle: Guide\n---\nHello\n", true, "Hello\n"},
		{"none", "Hello\n", false, "Hello\n"},
		{"thematic break only", "---\nHello\n", false, "---\nHello\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body, err := ParseFrontMatter([]byte(tc.source))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if (meta != nil) != tc.wantMeta {
				t.Fatalf("unexpected metadata %v", meta)
			}
			if tc.wantMeta && meta["title"] != "Guide" {
				t.Fatalf("unexpected title %v", meta["title"])
			}
			if string(body) != tc.wantBody && !(tc.wantMeta && string(body) == "\n"+tc.wantBody) {
				t.Fatalf("want body %q, got %q", tc.wantBody, body)
			}
		})
	}
}
