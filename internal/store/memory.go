package store

import (
	"bytes"
	"maps"
	"slices"
	"sync"

	"cookbook-go/internal/cookbook"
)

// MemoryStore is an in-memory implementation of the cookbook.Store interface.
// Nothing survives the process, which makes it useful for testing.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key, or nil when absent.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(data), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	return m.SetMany(map[string][]byte{key: value})
}

// SetMany stores every value under a single lock.
func (m *MemoryStore) SetMany(values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		m.records[key] = cloneValue(value)
	}
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

// Keys returns the stored keys in order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.records))
}

func (m *MemoryStore) Close() error {
	return nil
}

// cloneValue copies v. A nil value is stored as empty so Get can tell it apart from an absent key.
func cloneValue(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	return bytes.Clone(v)
}

// Compile-time check that MemoryStore implements cookbook.Store interface
var _ cookbook.Store = (*MemoryStore)(nil)
