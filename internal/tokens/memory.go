package tokens

import "sync"

// MemStore is an in-memory Store. Used by tests and as the fallback when no
// credentials file is configured.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok && v != ""
}

func (m *MemStore) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
}

func (m *MemStore) Remove(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		delete(m.values, name)
	}
}
