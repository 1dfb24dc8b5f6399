// Command chunkio compresses and decompresses files through the streaming
// output layer, one chunk at a time.
//
//	chunkio compress [--codec gz] [--output path] [--hash] input
//	chunkio decompress [--output path] input
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/baldanca/chunkio/chunk"
	"github.com/baldanca/chunkio/codec"
	"github.com/baldanca/chunkio/writer"
)

const readChunkSize = 256 * 1024

type config struct {
	DefaultCodec string `yaml:"default_codec"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: chunkio <compress|decompress> [flags] <input>\n")
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(logger, os.Args[2:])
	case "decompress":
		err = runDecompress(logger, os.Args[2:])
	default:
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		logger.Error("chunkio failed", "error", err)
		os.Exit(1)
	}
}

func runCompress(logger *slog.Logger, args []string) error {
	flags := pflag.NewFlagSet("compress", pflag.ExitOnError)
	output := flags.StringP("output", "o", "", "output file path (default: input + codec extension)")
	codecName := flags.String("codec", "", "compression codec: "+strings.Join(codec.Names(), ", "))
	printHash := flags.Bool("hash", false, "print the blake3 hash of the uncompressed stream")
	configPath := flags.String("config", "", "YAML config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("compress requires exactly one input file")
	}
	input := flags.Arg(0)

	name := *codecName
	if name == "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		name = cfg.DefaultCodec
	}
	if !codec.Registered(name) {
		return fmt.Errorf("%w: %q", codec.ErrUnknown, name)
	}

	out := *output
	if out == "" {
		out = input + "." + name
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %q: %w", input, err)
	}
	defer in.Close()

	dst, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %q: %w", out, err)
	}
	defer dst.Close()

	w, err := writer.New(writer.Options{DefaultCodec: name})
	if err != nil {
		return err
	}

	src := chunk.Normalize(readerSource(in))
	digest := blake3.New()
	if *printHash {
		src = writer.TapHash(src, digest)
	}

	if _, err := w.Write(writer.Handle{W: dst}, chunk.AsSource(src), codec.UseDefault); err != nil {
		return err
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %q: %w", out, err)
	}

	if *printHash {
		fmt.Printf("%x  %s\n", digest.Sum(nil), input)
	}
	logger.Info("compressed", "input", input, "output", out, "codec", name)
	return nil
}

func runDecompress(logger *slog.Logger, args []string) error {
	flags := pflag.NewFlagSet("decompress", pflag.ExitOnError)
	output := flags.StringP("output", "o", "", "output file path (default: input without codec extension)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("decompress requires exactly one input file")
	}
	input := flags.Arg(0)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input), "."))
	if ext != "zip" && !codec.Registered(ext) {
		return fmt.Errorf("%q has no recognized compressed extension", input)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input))
	}

	in, err := codec.OpenRead(input)
	if err != nil {
		return err
	}
	defer in.Close()

	dst, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %q: %w", out, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, in)
	if err != nil {
		return fmt.Errorf("decompress %q: %w", input, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %q: %w", out, err)
	}

	logger.Info("decompressed", "input", input, "output", out, "bytes", n)
	return nil
}

// readerSource yields the contents of r as byte chunks of bounded size.
func readerSource(r io.Reader) chunk.Source {
	return func(yield func(any, error) bool) {
		buf := make([]byte, readChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				out := append([]byte(nil), buf[:n]...)
				if !yield(out, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

func loadConfig(path string) (config, error) {
	cfg := config{DefaultCodec: codec.Default}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.DefaultCodec == "" {
		cfg.DefaultCodec = codec.Default
	}
	return cfg, nil
}
