package unique

import (
	"context"
	"sync"
)

// Memory is an in-process set of taken values.
type Memory struct {
	mu     sync.RWMutex
	values map[string]struct{}
}

var _ Checker = (*Memory)(nil)

// NewMemory creates a set holding values.
func NewMemory(values ...string) *Memory {
	m := &Memory{values: make(map[string]struct{}, len(values))}
	m.Add(values...)
	return m
}

// Add marks values as taken.
func (m *Memory) Add(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, value := range values {
		m.values[value] = struct{}{}
	}
}

// Remove releases values.
func (m *Memory) Remove(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, value := range values {
		delete(m.values, value)
	}
}

// Exists implements Checker.
func (m *Memory) Exists(ctx context.Context, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[value]
	return ok, nil
}
