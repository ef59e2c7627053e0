// Package memory implements the storage backend as a process-local map.
// Saves do not survive a restart; useful for tests and throwaway runs.
package memory

import (
	"sync"

	"github.com/srw-lite/engine/internal/storage"
)

// Backend stores save slots in memory.
type Backend struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{slots: make(map[string][]byte)}
}

func (b *Backend) Init() error  { return nil }
func (b *Backend) Close() error { return nil }

func (b *Backend) Put(slot string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.slots[slot] = cp
	return nil
}

func (b *Backend) Get(slot string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.slots[slot]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (b *Backend) Delete(slot string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.slots, slot)
	return nil
}
