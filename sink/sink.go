// Package sink writes single normalized chunks to open destinations,
// specializing the write call when the chunk and the destination both
// support the bulk-binary path.
package sink

import (
	"io"
	"os"

	"github.com/baldanca/chunkio/chunk"
)

// BulkWriter is an optional interface for destinations that accept a typed
// chunk's native buffer directly, bypassing the generic write call. Raw
// binary file streams implement it; compressing wrappers and arbitrary
// handles do not.
type BulkWriter interface {
	WriteBulk(p []byte) (n int, err error)
}

// File wraps an open *os.File as a raw binary destination eligible for the
// bulk-binary path.
type File struct {
	*os.File
}

func (f File) WriteBulk(p []byte) (int, error) { return f.File.Write(p) }

// WriteChunk writes one chunk to w. When the chunk is a typed numeric block
// and w supports bulk binary writes, the chunk's native buffer goes through
// the bulk path in a single call; otherwise the chunk's byte representation
// goes through the generic write call. Either way the chunk is fully
// written or the stream's error is returned unmodified.
func WriteChunk(w io.Writer, c chunk.Chunk) error {
	if c.Typed() {
		if bw, ok := w.(BulkWriter); ok {
			_, err := bw.WriteBulk(c.Bytes())
			return err
		}
	}
	_, err := w.Write(c.Bytes())
	return err
}
