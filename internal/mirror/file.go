package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one <key>.json file per key in a data directory. Writes
// go through a temp file and rename, so concurrent readers and the change
// watcher never observe a partial document.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory, the path a change watcher should observe.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing a key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// KeyForPath maps a mirror file path back to its key, for watchers
// translating file events into change topics.
func KeyForPath(path string) (string, bool) {
	base := filepath.Base(path)
	key, ok := strings.CutSuffix(base, ".json")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read mirror %q: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	path := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write mirror %q: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write mirror %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write mirror %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write mirror %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete mirror %q: %w", key, err)
	}
	return nil
}
