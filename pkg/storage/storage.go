// Package storage persists planograms.
//
// A [Backend] is a byte-level key/value store. Four are provided:
//
//   - [FileBackend]: JSON entry files under a directory, for CLI use
//   - [MemoryBackend]: a map, for tests and throwaway servers
//   - [RedisBackend]: a shared Redis instance
//   - [MongoBackend]: a MongoDB collection
//
// [Repository] sits on top of a backend and stores planogram documents under
// keys produced by a [Keyer]. Use [ScopedKeyer] to give tenants or
// environments separate namespaces within one backend.
package storage

import (
	"context"
)

// Backend is a key/value store for serialized documents.
type Backend interface {
	// Get returns the stored value; ok is false when the key does not exist.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every key starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Name identifies the backend kind in logs and hooks.
	Name() string

	// Close releases connections.
	Close() error
}
