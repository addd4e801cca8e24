// Package storage persists uploaded audio files on the local filesystem,
// scoped by user id.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Storage writes uploaded files below a root media directory.
type Storage struct {
	root string
}

// New creates a Storage rooted at dir.
func New(dir string) *Storage {
	return &Storage{root: dir}
}

// Save writes the file below <root>/<userID>/. The filename is reduced to
// its base name so clients cannot escape the user directory. An existing
// file with the same name is overwritten silently.
func (s *Storage) Save(userID uint, filename string, r io.Reader) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == string(os.PathSeparator) || name == "" {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	userDir := filepath.Join(s.root, strconv.FormatUint(uint64(userID), 10))
	if err := os.MkdirAll(userDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create user directory: %w", err)
	}

	path := filepath.Join(userDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path, nil
}
