package storage

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileBackend stores each key as a JSON entry file. Entries live under a
// two-character subdirectory taken from the hash of the key.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

// fileEntry wraps stored data with its key so List can recover keys.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dir returns the root directory.
func (b *FileBackend) Dir() string { return b.dir }

// Name returns "file".
func (b *FileBackend) Name() string { return "file" }

// Get retrieves a value.
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	entry, ok, err := b.read(b.path(key))
	if err != nil || !ok {
		return nil, false, err
	}
	return entry.Data, true, nil
}

// Set stores a value. The entry is written to a temporary file and renamed
// into place.
func (b *FileBackend) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(fileEntry{Key: key, Data: data, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	path := b.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value.
func (b *FileBackend) Delete(ctx context.Context, key string) error {
	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List walks the directory and returns the keys with the given prefix.
// Unreadable or corrupt entries are skipped.
func (b *FileBackend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		entry, ok, err := b.read(path)
		if err != nil || !ok {
			return nil
		}
		if strings.HasPrefix(entry.Key, prefix) {
			keys = append(keys, entry.Key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)
	return keys, nil
}

// Clear removes every entry.
func (b *FileBackend) Clear() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(b.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing for the file backend.
func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) read(path string) (fileEntry, bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fileEntry{}, false, nil
	}
	if err != nil {
		return fileEntry{}, false, err
	}
	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Corrupt entry - treat as missing
		return fileEntry{}, false, nil
	}
	return entry, true, nil
}

// path converts a key to a file path.
func (b *FileBackend) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(b.dir, hash[:2], hash[2:]+".json")
}

var _ Backend = (*FileBackend)(nil)
