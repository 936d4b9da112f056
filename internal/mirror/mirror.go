// Package mirror provides the persisted-mirror abstraction behind the list
// view-models: a key-value store holding one JSON-encoded collection per
// entity key. Implementations cover a file per key, a SQLite table, and an
// in-memory map for tests.
package mirror

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value is persisted under a key.
var ErrNotFound = errors.New("mirror: key not found")

// Store persists one opaque document per key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
