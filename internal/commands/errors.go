package commands

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdstrings/internal/fault"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
	commandInputNotFound    = "INPUT_NOT_FOUND"

	// messageValidationPrefix is prepended by command.ValidateMessage.
	messageValidationPrefix = "message validation failed: "
)

// wrapperCodes mark errors whose message is generic, so Diagnostic appends
// the underlying cause.
var wrapperCodes = map[string]struct{}{
	commandValidationCode:   {},
	commandContextCanceled:  {},
	commandContextTimeout:   {},
	commandContextErrorCode: {},
	commandExecuteFailed:    {},
	commandInputNotFound:    {},
}

// wrapValidationError tags validation failures. Pipeline errors re-coded by
// command.ValidateMessage get their own text code and message back.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	var coded *goerrors.Error
	if goerrors.As(err, &coded) {
		code := fault.Code(err)
		if code == "" || coded.TextCode == code {
			return err
		}
		restored := coded.Clone()
		restored.TextCode = code
		restored.Message = strings.TrimPrefix(restored.Message, messageValidationPrefix)
		return restored
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError keeps pipeline errors that already carry a text code
// (MALFORMED_INPUT, MISSING_ARGUMENT, INPUT_TOO_LARGE). Cancellation seen
// mid-batch is reported as a context error and unreadable inputs as
// INPUT_NOT_FOUND.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	case errors.Is(err, fs.ErrNotExist):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "markdown input not found").
			WithTextCode(commandInputNotFound)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(commandExecuteFailed)
	}
}

// TextCode returns the text code carried by err, or "" when it has none.
func TextCode(err error) string {
	var coded *goerrors.Error
	if !goerrors.As(err, &coded) {
		return ""
	}
	return coded.TextCode
}

// Diagnostic renders err as the one-line message printed on a fatal exit:
// "<TEXT_CODE>: <message>".
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	var coded *goerrors.Error
	if !goerrors.As(err, &coded) {
		return err.Error()
	}

	msg := coded.Message
	if _, generic := wrapperCodes[coded.TextCode]; generic && coded.Source != nil {
		msg += ": " + coded.Source.Error()
	}
	if coded.TextCode == "" {
		return msg
	}
	return coded.TextCode + ": " + msg
}
