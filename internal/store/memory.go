package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. It is the default when no Redis URL is
// configured and the workhorse in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	data   map[string]string
}

// NewMemory returns an empty in-memory store using DefaultPrefix.
func NewMemory() *MemoryStore {
	return &MemoryStore{prefix: DefaultPrefix, data: make(map[string]string)}
}

func (m *MemoryStore) key(k string) string {
	return m.prefix + ":" + k
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[m.key(key)]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key(key)] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, m.key(k))
	}
	return nil
}
