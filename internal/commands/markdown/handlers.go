package markdowncmd

import (
	"context"
	"fmt"
	"io"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdstrings/internal/commands"
	"github.com/goliatone/go-mdstrings/internal/logging"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

const (
	convertFileOperation  = "markdown.convert_file"
	convertBatchOperation = "markdown.convert_batch"
	listPagesOperation    = "markdown.list_pages"
)

var (
	_ command.Commander[ConvertFileCommand]  = (*ConvertFileHandler)(nil)
	_ command.Commander[ConvertBatchCommand] = (*ConvertBatchHandler)(nil)
	_ command.Commander[ListPagesCommand]    = (*ListPagesHandler)(nil)
)

// OpenFunc opens the batch output file for appending.
type OpenFunc func(path string) (io.WriteCloser, error)

// OpenAppend opens path for appending, creating it when missing.
func OpenAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// ConvertFileHandler converts a single file and writes the declaration to
// its output stream.
type ConvertFileHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertFileHandler binds the handler to service, printing to out.
func NewConvertFileHandler(service interfaces.MarkdownConverter, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		result, err := service.ConvertFile(ctx, msg.Input, msg.Name)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"document_id": result.DocumentID,
			"records":     len(result.Records),
		}).Debug("markdown.command.convert_file.completed")
		_, err = fmt.Fprintln(out, result.Output)
		return err
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](baseLogger),
		commands.WithOperation[ConvertFileCommand](convertFileOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			return map[string]any{
				"input": msg.Input,
				"name":  msg.Name,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertFileHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertBatchHandler converts a list of files into one output file. Every
// entry is announced on the progress stream as "Markdown: <input>".
type ConvertBatchHandler struct {
	inner *commands.Handler[ConvertBatchCommand]
}

// NewConvertBatchHandler binds the handler to service. A nil open uses
// OpenAppend.
func NewConvertBatchHandler(service interfaces.MarkdownConverter, progress io.Writer, open OpenFunc, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertBatchCommand]) *ConvertBatchHandler {
	baseLogger := commands.EnsureLogger(logger)
	if open == nil {
		open = OpenAppend
	}

	exec := func(ctx context.Context, msg ConvertBatchCommand) (err error) {
		file, err := open(msg.Output)
		if err != nil {
			return fmt.Errorf("open %s: %w", msg.Output, err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", msg.Output, cerr)
			}
		}()

		results, err := service.ConvertBatch(ctx, interfaces.BatchRequest{
			InputPattern: msg.InputPattern,
			NamePattern:  msg.NamePattern,
			List:         msg.List,
			Output:       sink{file},
			OnEntry: func(input string) {
				if progress != nil {
					fmt.Fprintf(progress, "Markdown: %s\n", input)
				}
			},
		})
		logging.WithFields(baseLogger, map[string]any{
			"converted": len(results),
			"entries":   len(msg.List),
		}).Debug("markdown.command.convert_batch.completed")
		return err
	}

	handlerOpts := []commands.HandlerOption[ConvertBatchCommand]{
		commands.WithLogger[ConvertBatchCommand](baseLogger),
		commands.WithOperation[ConvertBatchCommand](convertBatchOperation),
		commands.WithMessageFields(func(msg ConvertBatchCommand) map[string]any {
			return map[string]any{
				"inpath": msg.InputPattern,
				"out":    msg.Output,
				"count":  len(msg.List),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertBatchCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertBatchHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertBatchCommand].
func (h *ConvertBatchHandler) Execute(ctx context.Context, msg ConvertBatchCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListPagesHandler prints the page lookup table.
type ListPagesHandler struct {
	inner *commands.Handler[ListPagesCommand]
}

func NewListPagesHandler(service interfaces.MarkdownConverter, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[ListPagesCommand]) *ListPagesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ListPagesCommand) error {
		table, err := service.Pages(ctx, msg.Pages)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, table)
		return err
	}

	handlerOpts := []commands.HandlerOption[ListPagesCommand]{
		commands.WithLogger[ListPagesCommand](baseLogger),
		commands.WithOperation[ListPagesCommand](listPagesOperation),
		commands.WithMessageFields(func(msg ListPagesCommand) map[string]any {
			return map[string]any{"pages": len(msg.Pages)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ListPagesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListPagesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ListPagesCommand].
func (h *ListPagesHandler) Execute(ctx context.Context, msg ListPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}

type sink struct {
	w io.Writer
}

func (s sink) WriteString(v string) (int, error) {
	return io.WriteString(s.w, v)
}
