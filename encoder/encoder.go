// Package encoder turns batches of typed records into chunk sequences
// ready for the writer facade.
package encoder

import (
	"context"

	"github.com/baldanca/chunkio/chunk"
)

// Encoder converts a slice of typed records into a lazy chunk sequence.
//
// Implementations must be safe for concurrent use unless documented
// otherwise.
type Encoder[T any] interface {
	Chunks(ctx context.Context, items []T) chunk.Seq
	FileExtension() string
	ContentType() string
}

// abortError signals that the downstream consumer stopped pulling; the
// encoder unwinds without reporting an error.
type abortError struct{}

func (abortError) Error() string { return "encode aborted by consumer" }

// chunkEmitter adapts an io.Writer surface to a yield callback so that
// push-style encoders stream their output as generic chunks. Each Write
// becomes one chunk; the buffer is copied because encoders reuse it.
type chunkEmitter struct {
	yield   func(chunk.Chunk, error) bool
	aborted bool
}

func (e *chunkEmitter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	out := append([]byte(nil), p...)
	if !e.yield(chunk.FromBytes(out), nil) {
		e.aborted = true
		return 0, abortError{}
	}
	return len(p), nil
}

// fail reports err downstream unless the consumer already stopped.
func (e *chunkEmitter) fail(err error) {
	if !e.aborted {
		e.yield(chunk.Chunk{}, err)
	}
}
