package kv

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memoryItem struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Memory is an in-process Store with per-entry expiry driven by an
// injected clock, so tests can age entries out deterministically.
type Memory struct {
	clock clockwork.Clock

	mu    sync.RWMutex
	items map[string]memoryItem
}

func NewMemory(clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Memory{clock: clock, items: make(map[string]memoryItem)}
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.clock.Now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = memoryItem{value: value, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	if !it.expiresAt.IsZero() && m.clock.Now().After(it.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return it.value, nil
}

// Delete removes a key. Tests use it to simulate one half of a record
// expiring before the other.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}
