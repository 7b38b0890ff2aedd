package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value      []byte
	insertedAt time.Time
	expiration time.Duration
}

// MemoryService implements CacheService with an in-process map.
// Expired entries are evicted lazily on lookup; there is no background sweeper.
type MemoryService struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
}

// NewMemoryService creates a new in-memory cache service.
// maxEntries bounds the number of stored entries; zero means unbounded.
func NewMemoryService(maxEntries int) *MemoryService {
	return &MemoryService{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value, removing it when its age exceeds its expiration
func (m *MemoryService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.expiration > 0 && time.Since(entry.insertedAt) > entry.expiration {
		delete(m.entries, key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value; when the cache is full the oldest entry is evicted
func (m *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictOldest()
	}

	m.entries[key] = memoryEntry{
		value:      value,
		insertedAt: time.Now(),
		expiration: expiration,
	}
	return nil
}

// Delete removes a value from the cache
func (m *MemoryService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Len returns the number of stored entries, expired ones included
func (m *MemoryService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

func (m *MemoryService) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range m.entries {
		if oldestKey == "" || entry.insertedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.insertedAt
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}
