package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdstrings"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	Config         mdstrings.Config
	BasePath       string
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the converter module with the pieces the CLI needs.
type Module struct {
	Module    *mdstrings.Module
	Converter interfaces.MarkdownConverter
	Provider  interfaces.LoggerProvider
	Logger    interfaces.Logger
}

// BuildModule constructs a converter module. Inputs resolve against
// BasePath, which defaults to the filesystem root so absolute paths work.
func BuildModule(opts Options) (*Module, error) {
	base := strings.TrimSpace(opts.BasePath)
	if base == "" {
		base = string(filepath.Separator)
	}

	moduleOpts := []mdstrings.Option{
		mdstrings.WithBasePath(base),
		mdstrings.WithLogWriter(opts.LogWriter),
	}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, mdstrings.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := mdstrings.New(opts.Config, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise converter: %w", err)
	}

	return &Module{
		Module:    module,
		Converter: module.Converter(),
		Provider:  module.LoggerProvider(),
		Logger:    logging.RootLogger(module.LoggerProvider()),
	}, nil
}

// AbsPath makes path absolute against the working directory. Empty paths
// stay empty so argument validation can report them.
func AbsPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return path, nil
	}
	return filepath.Abs(path)
}
