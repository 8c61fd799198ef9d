package qtycache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int
	expiresAt time.Time
}

// Memory is an in-process TTL cache
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
}

// NewMemory creates an empty cache whose entries live for ttl
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{items: make(map[string]entry), ttl: ttl}
}

// MemoryFactory gives every session its own Memory cache
func MemoryFactory(ttl time.Duration) Factory {
	return func(string) Cache { return NewMemory(ttl) }
}

func (m *Memory) Get(ctx context.Context, foodID string) (int, error) {
	key := Key(foodID)
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return 0, ErrMiss
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return 0, ErrMiss
	}
	return e.count, nil
}

func (m *Memory) Set(ctx context.Context, foodID string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[Key(foodID)] = entry{count: count, expiresAt: time.Now().Add(m.ttl)}
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]entry)
	return nil
}
