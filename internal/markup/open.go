// File: internal/markup/open.go
package markup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
)

// StdinName is the conventional name for reading from standard input.
const StdinName = "-"

// stdin is swapped out in tests.
var stdin io.Reader = os.Stdin

// Open returns a reader for the named input. "-" (or "") reads standard input.
// Files ending in ".br" are decompressed transparently.
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == StdinName {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %q: %w", name, err)
	}
	if !strings.HasSuffix(strings.ToLower(name), BrotliExt) {
		return f, nil
	}
	return &closeWrapper{Reader: brotli.NewReader(f), closer: f}, nil
}

// closeWrapper pairs a decompressing reader with the file underneath it.
type closeWrapper struct {
	io.Reader
	closer io.Closer
}

func (w *closeWrapper) Close() error {
	return w.closer.Close()
}
