package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	timestamp time.Time
	payload   []byte
}

// MemoryStore is the in-process Store. Expiry is enforced lazily: an entry
// older than the TTL is deleted by the read that discovers it, there is no
// background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, ns Namespace, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := string(ns) + "|" + key
	e, ok := m.entries[k]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.timestamp) >= m.ttl {
		delete(m.entries, k)
		return nil, false
	}
	return e.payload, true
}

func (m *MemoryStore) Set(_ context.Context, ns Namespace, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[string(ns)+"|"+key] = entry{
		timestamp: m.now(),
		payload:   payload,
	}
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
