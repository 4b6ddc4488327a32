package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFilePath is the save file used when no path is configured.
const DefaultFilePath = "~/.labyrinth/gameData.json"

func init() {
	Register("file", func(opts Options) (Medium, error) {
		return NewFile(opts.Path)
	})
}

// File stores the record in a single file, replaced atomically on write.
type File struct {
	path string
}

// NewFile returns a file medium at path. A leading ~ expands to the home
// directory; an empty path selects DefaultFilePath.
func NewFile(path string) (*File, error) {
	if path == "" {
		path = DefaultFilePath
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &File{path: expanded}, nil
}

// Name implements Medium.
func (f *File) Name() string { return "file" }

// Path returns the resolved location of the record.
func (f *File) Path() string { return f.path }

// Read implements Medium.
func (f *File) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", f.path, err)
	}
	return data, nil
}

// Write implements Medium. The record is written to a temporary file in the
// same directory and renamed over the old one.
func (f *File) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("persist: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("persist: replace %s: %w", f.path, err)
	}
	return nil
}

// Delete implements Medium.
func (f *File) Delete(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("persist: delete %s: %w", f.path, err)
	}
	return nil
}

// Close implements Medium.
func (f *File) Close() error { return nil }

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("persist: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
