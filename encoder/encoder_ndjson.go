package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/baldanca/chunkio/chunk"
)

// NDJSON encodes each record as one newline-terminated JSON line, yielded
// as one chunk per record.
type NDJSON[T any] struct{}

func (NDJSON[T]) FileExtension() string { return ".ndjson" }

func (NDJSON[T]) ContentType() string { return "application/x-ndjson" }

func (NDJSON[T]) Chunks(ctx context.Context, items []T) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		if ctx != nil && ctx.Err() != nil {
			yield(chunk.Chunk{}, ctx.Err())
			return
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)

		for i, it := range items {
			buf.Reset()
			if err := enc.Encode(it); err != nil {
				yield(chunk.Chunk{}, fmt.Errorf("ndjson encode item %d: %w", i, err))
				return
			}
			line := append([]byte(nil), buf.Bytes()...)
			if !yield(chunk.FromBytes(line), nil) {
				return
			}
		}
	}
}
