package store

import (
	"context"
	"sync"
	"time"

	"github.com/gyloans/loantrack/pkg/constants"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local Cache used when Redis is not configured,
// and in tests. Entries expire after the same TTL the Redis path applies;
// expired entries are dropped on lookup and swept on every Set.
type MemoryCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &MemoryCache{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if m.now().After(entry.expiresAt) {
		delete(m.data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, entry := range m.data {
		if now.After(entry.expiresAt) {
			delete(m.data, k)
		}
	}
	m.data[key] = memoryEntry{value: value, expiresAt: now.Add(m.ttl)}
	return nil
}
