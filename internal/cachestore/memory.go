package cachestore

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*Memory)(nil)

// Memory is the in-process driver: one map per service instance, entries
// expire lazily on read. Construct one per application session so tests
// get isolated instances.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	metrics *CacheMetrics
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	timestamp time.Time
	ttl       time.Duration
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		metrics: NewCacheMetrics("memory"),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	start := m.now()

	m.mu.RLock()
	ent, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.metrics.RecordMiss()
		return nil, ErrMiss
	}

	if ent.ttl > 0 && m.now().Sub(ent.timestamp) >= ent.ttl {
		m.mu.Lock()
		// re-check under the write lock, a fresh Set may have raced us
		if cur, ok := m.entries[key]; ok && cur.timestamp.Equal(ent.timestamp) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		m.metrics.RecordMiss()
		return nil, ErrMiss
	}

	m.metrics.RecordHit(start)
	return ent.value, nil
}

func (m *Memory) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	start := m.now()

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		value:     val,
		timestamp: m.now(),
		ttl:       ttl,
	}
	m.mu.Unlock()

	m.metrics.RecordWrite(start)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Flush(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close() {}
