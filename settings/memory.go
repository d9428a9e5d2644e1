package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps options in process memory. Used for tests and single instance setups.
type MemoryStore struct {
	options map[string]string
	// read write lock on data
	lock *sync.RWMutex
}

// NewMemoryStore constructor
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		options: make(map[string]string),
		lock:    &sync.RWMutex{},
	}
}

// Get an option by name
func (s *MemoryStore) Get(_ context.Context, name string) (value string, err error) {
	var ok bool
	s.lock.RLock()
	if value, ok = s.options[name]; !ok {
		err = ErrNotFound
	}
	s.lock.RUnlock()
	return value, err
}

// Set an option
func (s *MemoryStore) Set(_ context.Context, name, value string) error {
	s.lock.Lock()
	s.options[name] = value
	s.lock.Unlock()
	return nil
}

// Delete an option
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.lock.Lock()
	delete(s.options, name)
	s.lock.Unlock()
	return nil
}

// SetAll replaces every stored option
func (s *MemoryStore) SetAll(options map[string]string) {
	copied := make(map[string]string, len(options))
	for k, v := range options {
		copied[k] = v
	}
	s.lock.Lock()
	s.options = copied
	s.lock.Unlock()
}
