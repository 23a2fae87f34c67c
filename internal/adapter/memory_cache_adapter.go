package adapter

import (
	"context"
	"sync"
	"time"

	"hangul-quiz/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryPruneInterval bounds how often Set sweeps expired entries.
const memoryPruneInterval = time.Minute

// MemoryCacheAdapter is an in-process domain.Cache used when Redis is not configured.
// Expired entries are dropped on access and swept from Set at most once per
// memoryPruneInterval.
type MemoryCacheAdapter struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	lastPrune time.Time
	now       func() time.Time
}

// NewMemoryCacheAdapter creates an empty in-memory cache.
func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{entries: make(map[string]memoryEntry), now: time.Now}
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemoryCacheAdapter) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (m *MemoryCacheAdapter) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastPrune) >= memoryPruneInterval {
		for k, e := range m.entries {
			if e.expired(now) {
				delete(m.entries, k)
			}
		}
		m.lastPrune = now
	}

	e := memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = now.Add(expiration)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryCacheAdapter) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCacheAdapter) Ping(context.Context) error {
	return nil
}
