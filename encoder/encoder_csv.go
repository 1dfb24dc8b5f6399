package encoder

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/baldanca/chunkio/chunk"
)

// CSV encodes rows of string fields, one chunk per row. An optional header
// row is emitted first.
type CSV struct {
	Header []string
}

func (CSV) FileExtension() string { return ".csv" }

func (CSV) ContentType() string { return "text/csv" }

func (e CSV) Chunks(ctx context.Context, items [][]string) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		if ctx != nil && ctx.Err() != nil {
			yield(chunk.Chunk{}, ctx.Err())
			return
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		emit := func(row []string, at string) (ok bool) {
			buf.Reset()
			if err := w.Write(row); err != nil {
				yield(chunk.Chunk{}, fmt.Errorf("csv encode %s: %w", at, err))
				return false
			}
			w.Flush()
			if err := w.Error(); err != nil {
				yield(chunk.Chunk{}, fmt.Errorf("csv encode %s: %w", at, err))
				return false
			}
			line := append([]byte(nil), buf.Bytes()...)
			return yield(chunk.FromBytes(line), nil)
		}

		if len(e.Header) > 0 {
			if !emit(e.Header, "header") {
				return
			}
		}
		for i, row := range items {
			if !emit(row, fmt.Sprintf("row %d", i)) {
				return
			}
		}
	}
}
