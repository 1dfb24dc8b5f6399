package writer

import (
	"io"

	"github.com/baldanca/chunkio/chunk"
)

// TapHash wraps src so that each chunk's bytes are absorbed into digest
// immediately before the chunk is yielded downstream, unchanged. hash.Hash
// values satisfy the digest parameter directly.
//
// The tap is transparent — same values, order, and count — and buffers
// nothing: a consumer that stops early leaves the digest reflecting exactly
// the chunks it pulled.
func TapHash(src chunk.Seq, digest io.Writer) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		for c, err := range src {
			if err != nil {
				yield(chunk.Chunk{}, err)
				return
			}
			if _, err := digest.Write(c.Bytes()); err != nil {
				yield(chunk.Chunk{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}
