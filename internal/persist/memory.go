package persist

import (
	"context"
	"sync"
)

func init() {
	Register("memory", func(Options) (Medium, error) {
		return NewMemory(), nil
	})
}

// Memory keeps the record in process memory. Useful for tests and for the
// HTTP API when no durable backend is configured.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemory returns an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{}
}

// Name implements Medium.
func (m *Memory) Name() string { return "memory" }

// Read implements Medium.
func (m *Memory) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

// Write implements Medium.
func (m *Memory) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte(nil), data...)
	m.set = true
	return nil
}

// Delete implements Medium.
func (m *Memory) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	m.set = false
	return nil
}

// Close implements Medium.
func (m *Memory) Close() error { return nil }
