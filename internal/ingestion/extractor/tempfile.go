package extractor

import (
	"fmt"
	"io"
	"os"
)

// SaveTemp streams an upload to a temporary file and returns its path
// with a cleanup func. The caller must invoke cleanup on every exit
// path so partial uploads never linger on disk.
func SaveTemp(r io.Reader, pattern string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}
