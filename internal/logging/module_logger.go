package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

const (
	rootModule     = "mdstrings"
	markdownModule = "mdstrings.markdown"
	commandsModule = "mdstrings.commands"
)

const (
	fieldMarkdownPath = "markdown_path"
	fieldOutputName   = "output_name"
)

// ModuleName expands a module name relative to the converter root, so
// "markdown" and "mdstrings.markdown" name the same logger. Blank names map
// to the root module.
func ModuleName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	switch {
	case name == "" || name == rootModule:
		return rootModule
	case strings.HasPrefix(name, rootModule+"."):
		return name
	default:
		return rootModule + "." + name
	}
}

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RootLogger returns the top-level logger used by the CLI.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown conversion.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandLogger returns the logger for a command handler, e.g.
// "mdstrings.commands.convert_file".
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+command)
}

// WithMarkdownContext enriches logger with the document path and output name.
// Empty values are ignored.
func WithMarkdownContext(logger interfaces.Logger, path, name string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldMarkdownPath] = trimmed
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		fields[fieldOutputName] = trimmed
	}
	return WithFields(logger, fields)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
// The map is copied; nil or empty maps return logger unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

type contextKey string

const contextFieldsKey contextKey = "mdstrings.logging.fields"

// ContextWithFields returns ctx carrying fields merged over any fields it
// already holds. The console provider adds them to every entry, which is how
// the CLI stamps each line with its run_id.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored by ContextWithFields.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
