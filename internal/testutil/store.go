package testutil

import (
	"errors"
	"sync"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/store"
)

// ErrInjected is returned by FailingStore once it is armed.
var ErrInjected = errors.New("injected store failure")

// NewTestStore creates a new in-memory store for testing.
func NewTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// FailingStore wraps a Store and fails every write once Fail has been called.
// Reads keep working so tests can check that nothing changed.
type FailingStore struct {
	cookbook.Store

	mu      sync.Mutex
	failing bool
	writes  int
}

func NewFailingStore(inner cookbook.Store) *FailingStore {
	return &FailingStore{Store: inner}
}

// Fail makes every following write return ErrInjected.
func (s *FailingStore) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

// Recover lets writes through again.
func (s *FailingStore) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = false
}

// Writes counts the Set, SetMany and Delete calls that reached the wrapped store.
func (s *FailingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *FailingStore) Set(key string, value []byte) error {
	return s.SetMany(map[string][]byte{key: value})
}

func (s *FailingStore) SetMany(values map[string][]byte) error {
	if err := s.admit(); err != nil {
		return err
	}
	return s.Store.SetMany(values)
}

func (s *FailingStore) Delete(key string) error {
	if err := s.admit(); err != nil {
		return err
	}
	return s.Store.Delete(key)
}

func (s *FailingStore) admit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrInjected
	}
	s.writes++
	return nil
}
