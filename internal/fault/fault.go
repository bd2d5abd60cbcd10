// Package fault defines the error kinds shared by the conversion pipeline.
// Every kind is fatal for a build: callers report the diagnostic and stop.
package fault

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrMalformedInput marks unsupported markdown (raw HTML) and streams the
	// decoder cannot parse.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMissingArgument marks a required option that was not supplied.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInputTooLarge marks an input file above the configured read cap.
	ErrInputTooLarge = fmt.Errorf("%w: input exceeds size limit", ErrMalformedInput)
)

const (
	TextCodeMalformedInput  = "MALFORMED_INPUT"
	TextCodeMissingArgument = "MISSING_ARGUMENT"
	TextCodeInputTooLarge   = "INPUT_TOO_LARGE"
)

// MalformedInput returns a categorised ErrMalformedInput with the formatted detail.
func MalformedInput(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrMalformedInput, detail), goerrors.CategoryBadInput, detail).
		WithTextCode(TextCodeMalformedInput)
}

// InputTooLarge reports an input whose size exceeds limit bytes.
func InputTooLarge(path string, limit int64) error {
	detail := fmt.Sprintf("%s is larger than %d bytes", path, limit)
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrInputTooLarge, detail), goerrors.CategoryBadInput, detail).
		WithTextCode(TextCodeInputTooLarge)
}

// MissingArgument wraps a validation failure (or builds one from the name) as ErrMissingArgument.
func MissingArgument(name string, cause error) error {
	detail := fmt.Sprintf("%s is required", name)
	if cause != nil {
		detail = cause.Error()
	}
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrMissingArgument, detail), goerrors.CategoryValidation, detail).
		WithTextCode(TextCodeMissingArgument)
}

// IsMalformedInput reports whether err belongs to the malformed input family.
func IsMalformedInput(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMalformedInput) || goerrors.IsCategory(err, goerrors.CategoryBadInput)
}

// IsMissingArgument reports whether err is a missing argument failure.
func IsMissingArgument(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMissingArgument) || goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// Code returns the text code of the error kind err belongs to, or "".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInputTooLarge):
		return TextCodeInputTooLarge
	case errors.Is(err, ErrMalformedInput):
		return TextCodeMalformedInput
	case errors.Is(err, ErrMissingArgument):
		return TextCodeMissingArgument
	default:
		return ""
	}
}

// WithPath prefixes the message of err with the input path. Categorised
// errors keep their category and text code.
func WithPath(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	var coded *goerrors.Error
	if goerrors.As(err, &coded) {
		return goerrors.Wrap(err, coded.Category, path)
	}
	return fmt.Errorf("%s: %w", path, err)
}
