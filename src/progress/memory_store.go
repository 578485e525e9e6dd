package progress

import (
	"context"
	"sync"
)

// MemoryStore holds the checkpoint in process memory. Useful for tests and
// throwaway runs; nothing survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	cp    *Checkpoint
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load(_ context.Context) (*Checkpoint, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.cp.Clone(), nil
}

func (ms *MemoryStore) Save(_ context.Context, cp *Checkpoint) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.cp = cp.Clone()
	ms.saves++
	return nil
}

func (ms *MemoryStore) Close(context.Context) error { return nil }

// Saves reports how many times Save has been called.
func (ms *MemoryStore) Saves() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.saves
}

var _ Store = (*MemoryStore)(nil)
