package encoder

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/baldanca/chunkio/chunk"
)

// Parquet encodes record batches as a Parquet file streamed out in chunks.
// Column compression is internal to the Parquet format and independent of
// any codec the writer facade applies.
type Parquet[T any] struct {
	// Compression (optional): "", "snappy", "gzip", "zstd"
	Compression string
}

func (e Parquet[T]) FileExtension() string { return ".parquet" }

func (e Parquet[T]) ContentType() string { return "application/vnd.apache.parquet" }

func (e Parquet[T]) Chunks(ctx context.Context, items []T) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		if ctx != nil && ctx.Err() != nil {
			yield(chunk.Chunk{}, ctx.Err())
			return
		}

		options := make([]parquet.WriterOption, 0, 1)
		switch e.Compression {
		case "":
			// no compression
		case "snappy":
			options = append(options, parquet.Compression(&parquet.Snappy))
		case "gzip":
			options = append(options, parquet.Compression(&parquet.Gzip))
		case "zstd":
			options = append(options, parquet.Compression(&parquet.Zstd))
		default:
			yield(chunk.Chunk{}, fmt.Errorf("unsupported parquet compression: %q", e.Compression))
			return
		}

		emitter := &chunkEmitter{yield: yield}
		w := parquet.NewGenericWriter[T](emitter, options...)

		if _, err := w.Write(items); err != nil {
			_ = w.Close()
			emitter.fail(err)
			return
		}
		if err := w.Close(); err != nil {
			emitter.fail(err)
		}
	}
}
