// Package storage provides the named-blob persistence adapter backing the
// ledger store. Each key maps to a single serialized blob; writes are
// all-or-nothing per key, and nothing is atomic across keys. Callers must
// tolerate a crash between two Save calls leaving keys inconsistent.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no blob exists for the key.
var ErrNotFound = errors.New("blob not found")

// Store is a durable key-value store of named blobs.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Remove deletes the blob stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
