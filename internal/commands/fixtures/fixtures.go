// Package fixtures holds test doubles shared by command packages.
package fixtures

import (
	"bytes"
	"errors"
)

// RecordingRegistry captures registered command handlers.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records the handler, or fails with Err when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// ErrClosed is returned by a closed MemoryFile.
var ErrClosed = errors.New("fixtures: file closed")

// MemoryFile is an in-memory io.WriteCloser standing in for an output file.
type MemoryFile struct {
	bytes.Buffer
	Closed bool
}

func (f *MemoryFile) Write(p []byte) (int, error) {
	if f.Closed {
		return 0, ErrClosed
	}
	return f.Buffer.Write(p)
}

func (f *MemoryFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// Close marks the file closed.
func (f *MemoryFile) Close() error {
	f.Closed = true
	return nil
}
