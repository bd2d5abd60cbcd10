package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// RecordKind classifies one optimized output record.
type RecordKind string

const (
	RecordLiteral         RecordKind = "literal"
	RecordTranslatable    RecordKind = "translatable"
	RecordDocInclude      RecordKind = "doc_include"
	RecordItemsInclude    RecordKind = "items_include"
	RecordMarkdownInclude RecordKind = "markdown_include"
)

// IsDirective reports whether the kind carries an include command rather than text.
func (k RecordKind) IsDirective() bool {
	switch k {
	case RecordDocInclude, RecordItemsInclude, RecordMarkdownInclude:
		return true
	default:
		return false
	}
}

// Record is one finalized entry ready for emission. Text holds the decoded
// payload; for directives it is the include path or identifier.
type Record struct {
	Kind RecordKind
	Text string
}

// Document is a markdown source loaded into memory.
type Document struct {
	ID       uuid.UUID
	FilePath string
	Body     []byte
	// Checksum is the BLAKE3 digest of the raw file content.
	Checksum []byte
	// FrontMatter holds metadata stripped from the top of the file, if any.
	FrontMatter map[string]any
}

// ConvertResult reports the outcome of converting one document.
type ConvertResult struct {
	DocumentID uuid.UUID
	Name       string
	Checksum   []byte
	Records    []Record
	// Output is the emitted text: the declaration in generation mode or the
	// decoded document in human mode.
	Output string
}

// MarkdownConverter exposes the conversion workflows used by the CLI and
// command handlers.
type MarkdownConverter interface {
	ConvertFile(ctx context.Context, path, name string) (*ConvertResult, error)
	ConvertBytes(ctx context.Context, source []byte, name string) (*ConvertResult, error)
	ConvertBatch(ctx context.Context, req BatchRequest) ([]*ConvertResult, error)
	Pages(ctx context.Context, pages []string) (string, error)
}

// BatchRequest describes a batch run. InputPattern and NamePattern carry a
// single %s placeholder expanded with each List entry.
type BatchRequest struct {
	InputPattern string
	NamePattern  string
	List         []string
	Output       WriterSink
	// OnEntry, when set, is called with each expanded input path before it
	// is converted.
	OnEntry func(input string)
}

// WriterSink receives the emitted text of each converted document in order.
type WriterSink interface {
	WriteString(s string) (int, error)
}
