package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

type memoryEntry struct {
	value  []byte
	expiry time.Time // zero means no expiry
}

// Memory is an in-process TTL cache guarded by a mutex. Expired entries
// are dropped lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an in-memory cache.
func NewMemory() *Memory {
	util.Debug("Initialized in-memory cache")
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiry.IsZero() && m.now().After(e.expiry) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have renewed it.
		if cur, ok := m.entries[key]; ok && !cur.expiry.IsZero() && m.now().After(cur.expiry) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value}
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiry: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

var _ Cache = (*Memory)(nil)
