// Package emit writes optimized records as text: the decoded document in
// human mode, or a C string-table listing wrapped in a declaration.
package emit

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-mdstrings/internal/runtimeconfig"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

type Emitter struct {
	cfg         runtimeconfig.OutputConfig
	declaration *pongo2.Template
	pages       *pongo2.Template
}

// New compiles the declaration and pages templates. Empty templates fall
// back to the defaults.
func New(cfg runtimeconfig.OutputConfig) (*Emitter, error) {
	defaults := runtimeconfig.DefaultConfig().Output
	if strings.TrimSpace(cfg.DeclarationTemplate) == "" {
		cfg.DeclarationTemplate = defaults.DeclarationTemplate
	}
	if strings.TrimSpace(cfg.PagesTemplate) == "" {
		cfg.PagesTemplate = defaults.PagesTemplate
	}

	declaration, err := pongo2.FromString(cfg.DeclarationTemplate)
	if err != nil {
		return nil, fmt.Errorf("emit: compile declaration template: %w", err)
	}
	pages, err := pongo2.FromString(cfg.PagesTemplate)
	if err != nil {
		return nil, fmt.Errorf("emit: compile pages template: %w", err)
	}
	return &Emitter{cfg: cfg, declaration: declaration, pages: pages}, nil
}

// Text concatenates record payloads.
func Text(records []interfaces.Record) string {
	var b strings.Builder
	for _, record := range records {
		b.WriteString(record.Text)
	}
	return b.String()
}

// Listing renders one entry per record followed by the sentinel entry.
func (e *Emitter) Listing(records []interfaces.Record) string {
	var b strings.Builder
	for _, record := range records {
		quoted := Quote(record.Text)
		switch record.Kind {
		case interfaces.RecordTranslatable:
			fmt.Fprintf(&b, "%s(%s),\n", e.cfg.TranslateCall, quoted)
		case interfaces.RecordDocInclude:
			fmt.Fprintf(&b, "%s %s,\n", e.cfg.DocMacro, quoted)
		case interfaces.RecordItemsInclude:
			fmt.Fprintf(&b, "%s %s,\n", e.cfg.ItemsMacro, quoted)
		case interfaces.RecordMarkdownInclude:
			fmt.Fprintf(&b, "%s %s,\n", e.cfg.IncludeMacro, quoted)
		default:
			fmt.Fprintf(&b, "%s,\n", quoted)
		}
	}
	b.WriteString(e.cfg.Sentinel)
	b.WriteByte('\n')
	return b.String()
}

// Declaration wraps listing in an array declaration named name.
func (e *Emitter) Declaration(name, listing string) (string, error) {
	out, err := e.declaration.Execute(pongo2.Context{
		"name":    name,
		"listing": listing,
	})
	if err != nil {
		return "", fmt.Errorf("emit: render declaration %s: %w", name, err)
	}
	return out, nil
}

// PagesTable renders the lookup table mapping each page to its generated
// symbol. Blank page names are skipped.
func (e *Emitter) PagesTable(pages []string) (string, error) {
	entries := make([]map[string]any, 0, len(pages))
	for _, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		entries = append(entries, map[string]any{
			"name":   escape(page),
			"symbol": e.cfg.PagesSymbolPrefix + Identifier(page),
		})
	}
	out, err := e.pages.Execute(pongo2.Context{"pages": entries})
	if err != nil {
		return "", fmt.Errorf("emit: render pages table: %w", err)
	}
	return out, nil
}

// Identifier derives a C identifier from a page path.
func Identifier(path string) string {
	return strings.ReplaceAll(path, "/", "_")
}

var cEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func escape(s string) string {
	return cEscaper.Replace(s)
}

// Quote returns s as a double-quoted C string literal.
func Quote(s string) string {
	return `"` + escape(s) + `"`
}
