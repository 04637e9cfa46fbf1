package navbar

import "sync"

// CurrencyStorageKey is the client storage key holding the chosen currency code.
const CurrencyStorageKey = "visiventur.currency"

// Storage is a string key/value store scoped to one visitor, like window.localStorage.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// MemoryStorage is a Storage kept in process memory.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}
