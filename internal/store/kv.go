package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotConfigured indicates the backing store was not initialised.
var ErrNotConfigured = errors.New("store: backend not configured")

// KeyValue is the persistence capability the tracked-items store needs:
// whole-value reads and writes of one key. Get returns nil for an absent key.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// FileKV stores each key as a JSON file under one directory.
type FileKV struct {
	dir string
}

// NewFileKV constructs a file-backed key-value store rooted at dir.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads a key's value. Absent keys return nil without error.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f == nil || f.dir == "" {
		return nil, ErrNotConfigured
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set writes a key's value, creating the directory on first use.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if f == nil || f.dir == "" {
		return ErrNotConfigured
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(f.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

var _ KeyValue = (*FileKV)(nil)
