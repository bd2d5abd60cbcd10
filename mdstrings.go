// Package mdstrings converts markdown documents into C string tables whose
// entries are tagged as literal, translatable or include directives.
package mdstrings

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/internal/logging/console"
	"github.com/goliatone/go-mdstrings/internal/logging/gologger"
	"github.com/goliatone/go-mdstrings/internal/markdown"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// Converter exports the conversion contract.
type Converter = interfaces.MarkdownConverter

// Record exports the optimized output record.
type Record = interfaces.Record

// ConvertResult exports the per-document result.
type ConvertResult = interfaces.ConvertResult

// BatchRequest exports the batch request.
type BatchRequest = interfaces.BatchRequest

// Module is the top level converter runtime.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	service  *markdown.Service
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider   interfaces.LoggerProvider
	logWriter  io.Writer
	basePath   string
	filesystem fs.FS
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(o *moduleOptions) {
		o.logWriter = w
	}
}

// WithBasePath roots relative inputs at dir.
func WithBasePath(dir string) Option {
	return func(o *moduleOptions) {
		o.basePath = dir
	}
}

// WithFilesystem reads inputs from filesystem instead of the OS.
func WithFilesystem(filesystem fs.FS) Option {
	return func(o *moduleOptions) {
		o.filesystem = filesystem
	}
}

// New validates cfg and wires the logger provider and the conversion service.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = NewLoggerProvider(cfg.Logging, options.logWriter)
		if err != nil {
			return nil, err
		}
	}

	serviceOpts := []markdown.ServiceOption{
		markdown.WithLogger(logging.MarkdownLogger(provider)),
	}
	if options.basePath != "" {
		serviceOpts = append(serviceOpts, markdown.WithBasePath(options.basePath))
	}
	if options.filesystem != nil {
		serviceOpts = append(serviceOpts, markdown.WithFilesystem(options.filesystem))
	}
	service, err := markdown.NewService(cfg, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("mdstrings: %w", err)
	}

	return &Module{cfg: cfg, provider: provider, service: service}, nil
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// Converter returns the conversion service.
func (m *Module) Converter() Converter {
	if m == nil {
		return nil
	}
	return m.service
}

// LoggerProvider returns the provider module loggers are drawn from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Logger returns the root logger.
func (m *Module) Logger() interfaces.Logger {
	if m == nil {
		return logging.NoOp()
	}
	return logging.RootLogger(m.provider)
}

// NewLoggerProvider builds the provider named by cfg.Provider.
func NewLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{
			Writer:   w,
			MinLevel: &level,
			OmitTime: true,
		}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
			Debug:     cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
