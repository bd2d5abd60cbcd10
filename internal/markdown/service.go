package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-mdstrings/internal/emit"
	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/identity"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/internal/optimize"
	"github.com/goliatone/go-mdstrings/internal/runtimeconfig"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// Service runs the full conversion for files or in-memory sources: render,
// optimize, emit.
type Service struct {
	cfg       runtimeconfig.Config
	loader    *Loader
	renderer  *Renderer
	optimizer *optimize.Optimizer
	emitter   *emit.Emitter
	logger    interfaces.Logger
}

var _ interfaces.MarkdownConverter = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	basePath   string
	filesystem fs.FS
	logger     interfaces.Logger
}

// WithBasePath roots relative input paths at dir. Defaults to the working
// directory.
func WithBasePath(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.basePath = dir
	}
}

// WithFilesystem reads inputs from filesystem instead of the OS.
func WithFilesystem(filesystem fs.FS) ServiceOption {
	return func(o *serviceOptions) {
		o.filesystem = filesystem
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService validates cfg and wires the conversion pipeline.
func NewService(cfg runtimeconfig.Config, opts ...ServiceOption) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := serviceOptions{basePath: "."}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.logger == nil {
		options.logger = logging.NoOp()
	}

	filesystem := options.filesystem
	if filesystem == nil {
		var err error
		filesystem, err = prepareFilesystem(options.basePath)
		if err != nil {
			return nil, err
		}
	}

	renderer := NewRenderer(cfg, options.logger)
	emitter, err := emit.New(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg: cfg,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:         options.basePath,
			MaxBytes:         cfg.MaxInputBytes,
			StripFrontMatter: cfg.Markdown.StripFrontMatter,
		}),
		renderer:  renderer,
		optimizer: optimize.New(renderer.Encoder()),
		emitter:   emitter,
		logger:    options.logger,
	}, nil
}

// ConvertFile loads path and converts it under the output identifier name.
func (s *Service) ConvertFile(ctx context.Context, path, name string) (*interfaces.ConvertResult, error) {
	doc, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	logger := logging.WithMarkdownContext(s.logger, doc.FilePath, name)
	logger.Debug("markdown document loaded",
		"bytes", len(doc.Body),
		"checksum", fmt.Sprintf("%x", doc.Checksum),
	)

	result, err := s.convert(doc.Body, name)
	if err != nil {
		return nil, fault.WithPath(doc.FilePath, err)
	}
	result.Checksum = doc.Checksum
	return result, nil
}

// ConvertBytes converts an in-memory markdown source.
func (s *Service) ConvertBytes(ctx context.Context, source []byte, name string) (*interfaces.ConvertResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.convert(source, name)
}

func (s *Service) convert(source []byte, name string) (*interfaces.ConvertResult, error) {
	name = emit.Identifier(strings.TrimSpace(name))
	if name == "" && !s.cfg.Human {
		return nil, fault.MissingArgument("name", nil)
	}

	stream, err := s.renderer.Render(source)
	if err != nil {
		return nil, err
	}
	records, err := s.optimizer.Optimize(stream)
	if err != nil {
		return nil, err
	}

	result := &interfaces.ConvertResult{
		DocumentID: identity.DocumentUUID(name),
		Name:       name,
		Records:    records,
	}
	if s.cfg.Human {
		result.Output = emit.Text(records)
		return result, nil
	}
	result.Output, err = s.emitter.Declaration(name, s.emitter.Listing(records))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConvertBatch converts every list entry in order, writing each output to
// req.Output. The first failure stops the batch.
func (s *Service) ConvertBatch(ctx context.Context, req interfaces.BatchRequest) ([]*interfaces.ConvertResult, error) {
	if req.Output == nil {
		return nil, fault.MissingArgument("out", nil)
	}
	if strings.TrimSpace(req.InputPattern) == "" {
		return nil, fault.MissingArgument("inpath", nil)
	}

	results := make([]*interfaces.ConvertResult, 0, len(req.List))
	for _, entry := range req.List {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		input := ExpandPattern(req.InputPattern, entry)
		if req.OnEntry != nil {
			req.OnEntry(input)
		}
		s.logger.Debug("markdown batch entry", "input", input)

		result, err := s.ConvertFile(ctx, input, ExpandPattern(req.NamePattern, entry))
		if err != nil {
			return results, err
		}
		if _, err := req.Output.WriteString(result.Output); err != nil {
			return results, fmt.Errorf("markdown batch write %s: %w", input, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Pages renders the page lookup table.
func (s *Service) Pages(ctx context.Context, pages []string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return s.emitter.PagesTable(pages)
}

// ExpandPattern substitutes value for every %s in pattern. A pattern without
// a placeholder is returned as is.
func ExpandPattern(pattern, value string) string {
	return strings.ReplaceAll(pattern, "%s", value)
}

// SplitList splits a space separated list, dropping empty entries.
func SplitList(list string) []string {
	return strings.Fields(list)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, errors.New("markdown service: base path " + basePath + " is not a directory")
	}
	return os.DirFS(basePath), nil
}
