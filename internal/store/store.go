// Package store provides the durable key/value persistence used by the
// identity, ledger and history components.
//
// The contract is deliberately small: a synchronous string-to-string
// mapping. Callers treat every failure as tolerable — in-memory state
// stays authoritative for the process lifetime when the backing store
// is unavailable.
package store

import (
	"context"
	"sync"
)

// Well-known keys. All persistent state of the application lives under
// these four keys.
const (
	KeyBalance   = "balance"
	KeyHistory   = "history"
	KeyUserID    = "user_id"
	KeySessionID = "session_id"
)

// KV is the durable key/value mapping consumed by the rest of the
// application. Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value for key. The boolean reports whether the
	// key was present; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Memory is an in-memory KV implementation.
//
// It backs tests and serves as the degradation target when the SQLite
// store cannot be opened: the application keeps running, it just loses
// durability.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
