// Package codec is the registry of compression codecs used by the output
// layer: a fixed set of codec names, each mapped to a compressing stream
// constructor and to a lazy chunk-sequence transform.
package codec

import (
	"errors"
	"sort"
)

// Codec names. A codec name doubles as the file extension the writer
// appends when that codec is selected.
const (
	Bz2 = "bz2"
	Gz  = "gz"
	Lz4 = "lz4"
	Xz  = "xz"
	Zst = "zst"
)

// Default is the codec applied when a caller selects UseDefault without
// configuring an explicit default.
const Default = Bz2

// Selection sentinels for write calls.
const (
	// None selects no compression.
	None = ""
	// UseDefault selects the writer's configured default codec.
	UseDefault = "default"
)

// ErrUnknown reports a codec name outside the registry.
var ErrUnknown = errors.New("unknown codec")

var registered = map[string]bool{
	Bz2: true,
	Gz:  true,
	Lz4: true,
	Xz:  true,
	Zst: true,
}

// baseExtensions lists recognized uncompressed on-disk formats. The writer
// strips one trailing base-format or codec extension from a requested path
// before applying its own codec naming.
var baseExtensions = map[string]bool{
	"bin":     true,
	"csv":     true,
	"json":    true,
	"ndjson":  true,
	"npy":     true,
	"parquet": true,
	"txt":     true,
}

// Registered reports whether name is a known codec.
func Registered(name string) bool { return registered[name] }

// Names returns the registered codec names, sorted.
func Names() []string {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Strippable reports whether ext (without the leading dot) is an extension
// the writer strips before appending its own codec extension: either a
// recognized base format or a codec name.
func Strippable(ext string) bool {
	return baseExtensions[ext] || registered[ext]
}
