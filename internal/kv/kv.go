// Package kv defines the key-value contract the progress engine persists
// through, plus in-memory and Redis implementations.
package kv

import "context"

// Store reads and writes whole string documents by key.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
