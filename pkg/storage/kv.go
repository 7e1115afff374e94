package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// ErrQuotaExceeded is returned when a write would exceed the backend quota.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// KV is a namespaced key/value backend.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV keeps values in memory.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

// NewMemoryKV returns an empty in-memory backend. A positive quota limits the
// total stored bytes.
func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte), quota: quota}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		total := len(value)
		for k, v := range m.values {
			if k != key {
				total += len(v)
			}
		}
		if total > m.quota {
			return fmt.Errorf("memory kv: set %q: %w", key, ErrQuotaExceeded)
		}
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileKV stores one file per key under a directory. Writes go through a
// temporary file and a rename so readers never see partial data.
type FileKV struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

// NewFileKV creates dir if needed. A positive quota limits the size of any
// single value in bytes.
func NewFileKV(dir string, quota int64) (*FileKV, error) {
	if dir == "" {
		return nil, errors.New("file kv: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file kv: create %s: %w", dir, err)
	}
	return &FileKV{dir: dir, quota: quota}, nil
}

func (f *FileKV) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("file kv: invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("file kv: read %q: %w", key, err)
	}
	return data, true, nil
}

func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if f.quota > 0 && int64(len(value)) > f.quota {
		return fmt.Errorf("file kv: set %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("file kv: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file kv: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file kv: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file kv: rename %q: %w", key, err)
	}
	return nil
}

func (f *FileKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file kv: delete %q: %w", key, err)
	}
	return nil
}
