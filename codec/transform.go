package codec

import (
	"bytes"
	"io"
	"iter"

	"github.com/baldanca/chunkio/chunk"
)

// Compress lazily compresses a chunk sequence with the named codec. Each
// input chunk is fed to the compressor as it is pulled; whatever compressed
// bytes the codec has produced so far are yielded as generic chunks, with
// the codec trailer flushed after the input is exhausted. Working set is one
// chunk at a time; the input is never materialized.
func Compress(src chunk.Seq, name string) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		var buf bytes.Buffer
		cw, err := NewWriter(&buf, name)
		if err != nil {
			yield(chunk.Chunk{}, err)
			return
		}
		for c, err := range src {
			if err != nil {
				yield(chunk.Chunk{}, err)
				return
			}
			if _, err := cw.Write(c.Bytes()); err != nil {
				yield(chunk.Chunk{}, err)
				return
			}
			if buf.Len() > 0 {
				out := append([]byte(nil), buf.Bytes()...)
				buf.Reset()
				if !yield(chunk.FromBytes(out), nil) {
					return
				}
			}
		}
		if err := cw.Close(); err != nil {
			yield(chunk.Chunk{}, err)
			return
		}
		if buf.Len() > 0 {
			yield(chunk.FromBytes(buf.Bytes()), nil)
		}
	}
}

// Decompress lazily decompresses a chunk sequence produced by the named
// codec. Input chunks are pulled only as the decompressor needs more bytes.
func Decompress(src chunk.Seq, name string) chunk.Seq {
	return func(yield func(chunk.Chunk, error) bool) {
		next, stop := iter.Pull2(src)
		defer stop()

		sr := &seqReader{next: next}
		dr, err := NewReader(sr, name)
		if err != nil {
			yield(chunk.Chunk{}, err)
			return
		}
		defer dr.Close()

		buf := make([]byte, 64*1024)
		for {
			n, err := dr.Read(buf)
			if n > 0 {
				out := append([]byte(nil), buf[:n]...)
				if !yield(chunk.FromBytes(out), nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(chunk.Chunk{}, err)
				return
			}
		}
	}
}

// seqReader exposes a pulled chunk sequence as an io.Reader. An upstream
// error is surfaced as the read error.
type seqReader struct {
	next func() (chunk.Chunk, error, bool)
	rest []byte
}

func (r *seqReader) Read(p []byte) (int, error) {
	for len(r.rest) == 0 {
		c, err, ok := r.next()
		if !ok {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		r.rest = c.Bytes()
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}
