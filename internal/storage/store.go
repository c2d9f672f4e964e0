// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
)

// Store defines a string key-value store for calculation history and presets.
// This abstraction allows swapping storage backends (SQLite, Redis, memory)
// without changing the service layer.
type Store interface {
	// Get returns the value for key. The bool is false when the key does not exist.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
