package markdowncmd

import (
	"errors"
	"io"

	"github.com/goliatone/go-mdstrings/internal/commands"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract used when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterMarkdownCommands.
type HandlerSet struct {
	ConvertFile  *ConvertFileHandler
	ConvertBatch *ConvertBatchHandler
	ListPages    *ListPagesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	stdout       io.Writer
	open         OpenFunc
	fileOpts     []commands.HandlerOption[ConvertFileCommand]
	batchOpts    []commands.HandlerOption[ConvertBatchCommand]
	listPageOpts []commands.HandlerOption[ListPagesCommand]
}

// WithStdout sets the stream generated tables and progress lines go to.
// Defaults to io.Discard.
func WithStdout(w io.Writer) Option {
	return func(cfg *options) {
		cfg.stdout = w
	}
}

// WithOpenFunc replaces the batch output opener.
func WithOpenFunc(open OpenFunc) Option {
	return func(cfg *options) {
		cfg.open = open
	}
}

func WithConvertFileOptions(opts ...commands.HandlerOption[ConvertFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileOpts = append(cfg.fileOpts, opts...)
	}
}

func WithConvertBatchOptions(opts ...commands.HandlerOption[ConvertBatchCommand]) Option {
	return func(cfg *options) {
		cfg.batchOpts = append(cfg.batchOpts, opts...)
	}
}

func WithListPagesOptions(opts ...commands.HandlerOption[ListPagesCommand]) Option {
	return func(cfg *options) {
		cfg.listPageOpts = append(cfg.listPageOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the markdown handlers and registers them
// with reg when it is not nil.
func RegisterMarkdownCommands(reg CommandRegistry, service interfaces.MarkdownConverter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("markdown command registration: service is nil")
	}

	cfg := options{stdout: io.Discard}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.stdout == nil {
		cfg.stdout = io.Discard
	}

	logger := commands.CommandLogger(provider, "markdown")

	set := &HandlerSet{
		ConvertFile:  NewConvertFileHandler(service, cfg.stdout, logger, cfg.fileOpts...),
		ConvertBatch: NewConvertBatchHandler(service, cfg.stdout, cfg.open, logger, cfg.batchOpts...),
		ListPages:    NewListPagesHandler(service, cfg.stdout, logger, cfg.listPageOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.ConvertFile, set.ConvertBatch, set.ListPages} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
