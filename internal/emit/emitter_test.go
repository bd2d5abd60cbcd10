package emit

import (
	"testing"

	"github.com/goliatone/go-mdstrings/internal/runtimeconfig"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	e, err := New(runtimeconfig.DefaultConfig().Output)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestListing(t *testing.T) {
	records := []interfaces.Record{
		{Kind: interfaces.RecordLiteral, Text: "## "},
		{Kind: interfaces.RecordTranslatable, Text: `Say "hi"` + "\nnow"},
		{Kind: interfaces.RecordLiteral, Text: "\n\n"},
		{Kind: interfaces.RecordDocInclude, Text: "foo/bar"},
		{Kind: interfaces.RecordItemsInclude, Text: "class"},
		{Kind: interfaces.RecordMarkdownInclude, Text: "shared"},
		{Kind: interfaces.RecordLiteral, Text: `\*`},
	}

	got := newTestEmitter(t).Listing(records)
	want := `"## ",
LANGPREF N_("Say \"hi\"\nnow"),
"\n\n",
DOCINCPREF "foo/bar",
ITEMSINCPREF "class",
MDINCLUDE "shared",
"\\*",
NULL
`
	if got != want {
		t.Fatalf("unexpected listing\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestListingEmpty(t *testing.T) {
	if got := newTestEmitter(t).Listing(nil); got != "NULL\n" {
		t.Fatalf("expected only the sentinel, got %q", got)
	}
}

func TestDeclaration(t *testing.T) {
	e := newTestEmitter(t)
	got, err := e.Declaration("tvh_doc_root_class_dvr", e.Listing([]interfaces.Record{
		{Kind: interfaces.RecordTranslatable, Text: "a < b & c"},
	}))
	if err != nil {
		t.Fatalf("Declaration: %v", err)
	}
	want := "const char *tvh_doc_root_class_dvr[] = {\nLANGPREF N_(\"a < b & c\"),\nNULL\n};\n"
	if got != want {
		t.Fatalf("unexpected declaration\nwant %q\ngot  %q", want, got)
	}
}

func TestPagesTable(t *testing.T) {
	got, err := newTestEmitter(t).PagesTable([]string{"class/dvrconfig", "", "firstconfig"})
	if err != nil {
		t.Fatalf("PagesTable: %v", err)
	}
	want := "\n\nconst struct tvh_doc_page tvh_doc_markdown_pages[] = {\n" +
		"  { \"class/dvrconfig\", tvh_doc_root_class_dvrconfig },\n" +
		"  { \"firstconfig\", tvh_doc_root_firstconfig },\n" +
		"  { NULL, NULL },\n};\n"
	if got != want {
		t.Fatalf("unexpected pages table\nwant %q\ngot  %q", want, got)
	}
}

func TestNewRejectsBrokenTemplate(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().Output
	cfg.DeclarationTemplate = "{% for %}"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected template compile error")
	}
}

func TestTextAndIdentifier(t *testing.T) {
	records := []interfaces.Record{
		{Kind: interfaces.RecordLiteral, Text: "# "},
		{Kind: interfaces.RecordTranslatable, Text: "Title"},
	}
	if got := Text(records); got != "# Title" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := Identifier("class/dvr/entry"); got != "class_dvr_entry" {
		t.Fatalf("unexpected identifier %q", got)
	}
}
