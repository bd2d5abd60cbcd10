// Package gologger backs the converter's module loggers with go-logger.
package gologger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// Config mirrors runtimeconfig.LoggingConfig for the go-logger backend.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named modules. Names are relative to the
	// converter root: "markdown" selects "mdstrings.markdown".
	Focus []string
	// Debug lowers an unset level to debug and, without an explicit Focus,
	// narrows output to DebugFocus.
	Debug bool
}

// DebugFocus is the focus applied under Debug when none is configured: the
// markdown renderer trace and the command that drove it.
var DebugFocus = []string{"markdown", "commands.markdown"}

// Provider hands out go-logger children named after converter modules.
type Provider struct {
	root  *glog.BaseLogger
	focus []string
}

func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option

	level := levelName(cfg.Level)
	if level == "" && cfg.Debug {
		level = glog.Debug
	}
	if level != "" {
		options = append(options, glog.WithLevel(level))
	}

	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}
	options = append(options, format)

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	focus := cfg.Focus
	if len(moduleNames(focus)) == 0 && cfg.Debug {
		focus = DebugFocus
	}
	p := &Provider{
		root:  glog.NewLogger(options...),
		focus: moduleNames(focus),
	}
	if len(p.focus) > 0 {
		p.root.Focus(p.focus...)
	}
	return p, nil
}

// Focused returns the full module names output is limited to.
func (p *Provider) Focused() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.focus)
}

// GetLogger returns the go-logger child for module. Short names resolve
// against the converter root the same way Focus entries do.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	return wrap(p.root.GetLogger(logging.ModuleName(module)))
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", format)
	}
}

func levelName(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func moduleNames(names []string) []string {
	var out []string
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if full := logging.ModuleName(name); !slices.Contains(out, full) {
			out = append(out, full)
		}
	}
	return out
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields prefers go-logger's FieldsLogger and falls back to With with
// key/value pairs in key order.
func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return wrap(with.WithFields(copied))
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		args := make([]any, 0, len(keys)*2)
		for _, k := range keys {
			args = append(args, k, fields[k])
		}
		return wrap(with.With(args...))
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}
