// Package writer is the streaming output facade: it commits a lazily
// produced chunk sequence to memory, to a freshly created file, or to a
// caller-owned handle, threading codec selection and optional hashing
// through the stream without ever materializing it.
package writer

import (
	"fmt"
	"io"

	"github.com/baldanca/chunkio/chunk"
	"github.com/baldanca/chunkio/codec"
	"github.com/baldanca/chunkio/sink"
)

// Destination selects where a write lands.
type Destination interface {
	destination()
}

// Path names a file to be created by the write. The file must not already
// exist; the writer never truncates or appends.
type Path string

func (Path) destination() {}

// Handle wraps a caller-owned open stream. The writer only writes to it;
// opening and closing remain entirely the caller's responsibility.
type Handle struct {
	W io.Writer
}

func (Handle) destination() {}

// Options configures a Writer. The default codec is explicit configuration,
// not hidden package state, so multiple writers with different defaults can
// coexist.
type Options struct {
	// DefaultCodec is the codec applied when a write selects
	// codec.UseDefault. Empty means codec.Default.
	DefaultCodec string
}

// Writer commits chunk sequences to destinations. A Writer holds no
// per-write state and is safe to reuse across calls.
type Writer struct {
	defaultCodec string
}

func New(opts Options) (*Writer, error) {
	def := opts.DefaultCodec
	if def == "" {
		def = codec.Default
	}
	if !codec.Registered(def) {
		return nil, fmt.Errorf("%w: default codec %q", codec.ErrUnknown, def)
	}
	return &Writer{defaultCodec: def}, nil
}

// ToMemory normalizes src and materializes it as an ordered slice of
// chunks. No codec, no hashing, no I/O; the source is exhausted exactly
// once.
func (w *Writer) ToMemory(src chunk.Source) ([]chunk.Chunk, error) {
	var out []chunk.Chunk
	for c, err := range chunk.Normalize(src) {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Write commits src to dst. codecName is resolved exactly once before any
// stream is opened or chunk pulled: codec.UseDefault selects the writer's
// configured default, codec.None selects no compression, anything else must
// be a registered codec.
//
// For a Path destination the chunk sequence keeps whatever typed or generic
// form it already has, compression happens in the opened stream, and the
// returned Destination is the final Path (extension conventions may change
// it from the requested one). For a Handle destination chunks are coerced
// to the generic representation, compression is applied as a lazy byte
// transform, and the original Handle is returned unchanged.
//
// On a mid-stream failure the destination is left in whatever partial state
// the last successful write produced; no cleanup is attempted.
func (w *Writer) Write(dst Destination, src chunk.Source, codecName string) (Destination, error) {
	name, err := w.resolveCodec(codecName)
	if err != nil {
		return nil, err
	}

	switch d := dst.(type) {
	case Path:
		final, err := w.writePath(string(d), src, name)
		if err != nil {
			return nil, err
		}
		return Path(final), nil
	case Handle:
		if err := w.writeHandle(d.W, src, name); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported destination type %T", dst)
	}
}

func (w *Writer) resolveCodec(codecName string) (string, error) {
	switch codecName {
	case codec.UseDefault:
		return w.defaultCodec, nil
	case codec.None:
		return codec.None, nil
	default:
		if !codec.Registered(codecName) {
			return "", fmt.Errorf("%w: %q", codec.ErrUnknown, codecName)
		}
		return codecName, nil
	}
}

func (w *Writer) writePath(path string, src chunk.Source, codecName string) (string, error) {
	final, f, err := resolvePath(path, codecName)
	if err != nil {
		return "", err
	}

	// The raw file keeps the bulk-binary path available; a selected codec
	// interposes a compressing stream and chunks take the generic path.
	var stream io.Writer = sink.File{File: f}
	var cw io.WriteCloser
	if codecName != codec.None {
		cw, err = codec.NewWriter(f, codecName)
		if err != nil {
			f.Close()
			return "", err
		}
		stream = cw
	}

	for c, err := range chunk.Normalize(src) {
		if err != nil {
			f.Close()
			return "", err
		}
		if err := sink.WriteChunk(stream, c); err != nil {
			f.Close()
			return "", err
		}
	}

	if cw != nil {
		if err := cw.Close(); err != nil {
			f.Close()
			return "", err
		}
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", final, err)
	}
	return final, nil
}

func (w *Writer) writeHandle(h io.Writer, src chunk.Source, codecName string) error {
	// The handle's type is unknown, so chunks are coerced to the portable
	// generic representation before any bytes reach it.
	seq := chunk.Coerce(chunk.Normalize(src), chunk.DTypeNone)
	if codecName != codec.None {
		seq = codec.Compress(seq, codecName)
	}

	for c, err := range seq {
		if err != nil {
			return err
		}
		if _, err := h.Write(c.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
