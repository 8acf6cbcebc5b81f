// Package kv defines the key-value persistence port used by the project
// catalog, plus an in-memory implementation for tests and ephemeral runs.
package kv

import (
	"context"
	"sync"
)

// Store persists opaque values under string keys. A Set either replaces the
// whole value or leaves the previous one in place.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Memory is a map-backed Store. FailSet and FailGet let tests simulate a
// broken backend for specific keys.
type Memory struct {
	mu      sync.Mutex
	data    map[string][]byte
	FailSet map[string]error
	FailGet map[string]error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string][]byte),
		FailSet: make(map[string]error),
		FailGet: make(map[string]error),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailGet[key]; err != nil {
		return nil, false, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailSet[key]; err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailSet[key]; err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}
