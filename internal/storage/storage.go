// Package storage abstracts save-slot persistence behind a small backend
// interface with in-memory, SQLite and Postgres implementations selected by
// configuration.
package storage

import "errors"

// ErrNotFound is returned by Get when the slot holds no save.
var ErrNotFound = errors.New("storage: slot not found")

// Backend is the interface all storage implementations must satisfy.
// Payloads are opaque JSON blobs keyed by slot name.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Save slots
	Put(slot string, data []byte) error
	Get(slot string) ([]byte, error)
	Delete(slot string) error
}
