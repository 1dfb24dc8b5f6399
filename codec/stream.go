package codec

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// NewWriter wraps w in a compressing stream for the named codec. Closing
// the returned stream flushes the codec trailer; it does not close w.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	switch name {
	case Bz2:
		bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		if err != nil {
			return nil, fmt.Errorf("bzip2 writer: %w", err)
		}
		return bw, nil
	case Gz:
		return gzip.NewWriter(w), nil
	case Lz4:
		return lz4.NewWriter(w), nil
	case Xz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		return xw, nil
	case Zst:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

// NewReader wraps r in a decompressing stream for the named codec. Closing
// the returned stream releases codec state; it does not close r.
func NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	switch name {
	case Bz2:
		br, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, fmt.Errorf("bzip2 reader: %w", err)
		}
		return br, nil
	case Gz:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gr, nil
	case Lz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		return io.NopCloser(xr), nil
	case Zst:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

// OpenRead opens path for reading, decompressing by file extension: codec
// extensions route through the matching decompressor, "zip" opens the
// archive's single member, anything else reads the file as-is. Closing the
// returned stream closes the underlying file.
func OpenRead(path string) (io.ReadCloser, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if ext == "zip" {
		return openZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	if !Registered(ext) {
		return f, nil
	}
	dr, err := NewReader(f, ext)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stackedCloser{ReadCloser: dr, under: f}, nil
}

func openZip(path string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	if len(archive.File) != 1 {
		archive.Close()
		return nil, fmt.Errorf("open %q: archive must contain a single file, has %d", path, len(archive.File))
	}
	member, err := archive.File[0].Open()
	if err != nil {
		archive.Close()
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return &stackedCloser{ReadCloser: member, under: archive}, nil
}

// stackedCloser closes a decoding stream, then the resource under it.
type stackedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedCloser) Close() error {
	err := s.ReadCloser.Close()
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}
	return err
}
