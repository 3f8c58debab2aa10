package collab

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressSink observes a run. Notify is called once after each phase with
// a human-readable digest. author is empty for fan-out phases and names the
// synthesizer for the synthesis phase.
//
// Errors returned by Notify are logged and otherwise ignored; a failing sink
// never aborts a run.
type ProgressSink interface {
	Notify(ctx context.Context, author, phase, digest string) error
}

// NopSink discards every notification. Collaborate uses it when no sink is
// given.
type NopSink struct{}

// Notify implements ProgressSink.
func (NopSink) Notify(context.Context, string, string, string) error { return nil }

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(ctx context.Context, author, phase, digest string) error

// Notify implements ProgressSink.
func (f SinkFunc) Notify(ctx context.Context, author, phase, digest string) error {
	return f(ctx, author, phase, digest)
}

// WriterSink writes each digest to an io.Writer under a one-line header.
// It is safe for concurrent use.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Notify implements ProgressSink.
func (s *WriterSink) Notify(_ context.Context, author, phase, digest string) error {
	header := "── " + phase
	if author != "" {
		header += " (" + author + ")"
	}
	header += " ──"

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintf(s.w, "%s\n%s\n\n", header, strings.TrimRight(digest, "\n"))
	return err
}
