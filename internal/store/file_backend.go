package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps each collection in its own JSON file.
type FileBackend struct {
	paths map[string]string
	dir   string
}

// NewFileBackend stores collections as <dir>/<name>.json unless paths
// overrides the location of a collection.
func NewFileBackend(dir string, paths map[string]string) *FileBackend {
	p := make(map[string]string, len(paths))
	for name, path := range paths {
		if path != "" {
			p[name] = path
		}
	}
	return &FileBackend{paths: p, dir: dir}
}

// Path returns the file that backs the named collection.
func (b *FileBackend) Path(name string) string {
	if p, ok := b.paths[name]; ok {
		return p
	}
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Write(_ context.Context, name string, data []byte) error {
	return writeFileReplacing(b.Path(name), data)
}

// writeFileReplacing writes data next to path and renames it into place,
// creating the directory first.
func writeFileReplacing(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
