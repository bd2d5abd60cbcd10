package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

type missingNameMessage struct{}

func (missingNameMessage) Type() string { return "mdstrings.test.missing_name" }

func (missingNameMessage) Validate() error {
	return fault.MissingArgument("name", validation.NewError("name_required", "Specify class name."))
}

func TestHandlerRestoresMissingArgumentCode(t *testing.T) {
	h := NewHandler[missingNameMessage](func(context.Context, missingNameMessage) error {
		t.Fatal("execution should not run")
		return nil
	})

	err := h.Execute(context.Background(), missingNameMessage{})
	if !fault.IsMissingArgument(err) {
		t.Fatalf("expected missing argument, got %v", err)
	}
	if got := TextCode(err); got != fault.TextCodeMissingArgument {
		t.Fatalf("expected %s, got %q", fault.TextCodeMissingArgument, got)
	}
	if got := Diagnostic(err); got != "MISSING_ARGUMENT: Specify class name." {
		t.Fatalf("unexpected diagnostic %q", got)
	}
}

func TestHandlerKeepsPipelineTextCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "malformed input",
			err:  fault.MalformedInput("inline HTML not allowed: %q", "<b>"),
			want: `MALFORMED_INPUT: inline HTML not allowed: "<b>"`,
		},
		{
			name: "input too large",
			err:  fault.InputTooLarge("docs/big.md", 8),
			want: "INPUT_TOO_LARGE: docs/big.md is larger than 8 bytes",
		},
		{
			name: "malformed input with path",
			err:  fault.WithPath("docs/a.md", fault.MalformedInput("unsupported construct %s", "Kind")),
			want: "MALFORMED_INPUT: docs/a.md: unsupported construct Kind",
		},
		{
			name: "missing input file",
			err:  fmt.Errorf("markdown loader read docs/a.md: %w", fs.ErrNotExist),
			want: "INPUT_NOT_FOUND: markdown input not found: markdown loader read docs/a.md: file does not exist",
		},
		{
			name: "plain failure",
			err:  errors.New("disk full"),
			want: "COMMAND_EXECUTION_FAILED: command execution failed: disk full",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler[testMessage](func(context.Context, testMessage) error {
				return tc.err
			})
			err := h.Execute(context.Background(), testMessage{})
			if got := Diagnostic(err); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHandlerReportsCancellationFromExecution(t *testing.T) {
	h := NewHandler[testMessage](func(context.Context, testMessage) error {
		return fmt.Errorf("markdown batch: %w", context.Canceled)
	})

	err := h.Execute(context.Background(), testMessage{})
	if got := TextCode(err); got != commandContextCanceled {
		t.Fatalf("expected %s, got %q", commandContextCanceled, got)
	}
}

func TestDiagnosticWithoutCategory(t *testing.T) {
	if got := Diagnostic(errors.New("unexpected argument --bogus")); got != "unexpected argument --bogus" {
		t.Fatalf("unexpected diagnostic %q", got)
	}
	if got := Diagnostic(nil); got != "" {
		t.Fatalf("expected empty diagnostic for nil, got %q", got)
	}
	if got := TextCode(errors.New("plain")); got != "" {
		t.Fatalf("expected no text code, got %q", got)
	}
}
