package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baldanca/chunkio/codec"
)

// resolvePath derives the final on-disk filename for a requested path under
// codecName and opens it for exclusive creation. When a codec is selected,
// one trailing recognized extension (base format or codec name) is stripped
// first — the writer's own compression naming is authoritative, not the
// caller's path — and "." plus the codec name is appended.
//
// The open is O_EXCL: an existing file is a fatal error, never a truncate
// or append. Partial output from an interrupted earlier write must surface,
// not vanish under a new one.
func resolvePath(path, codecName string) (string, *os.File, error) {
	if codecName != codec.None {
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); codec.Strippable(strings.ToLower(ext)) {
			path = strings.TrimSuffix(path, filepath.Ext(path))
		}
		path += "." + codecName
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("create %q: %w", path, err)
	}
	return path, f, nil
}
