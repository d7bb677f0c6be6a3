// Package store is the durable key-value facility behind a casebook session.
//
// Callers see Store, a synchronous string map that never reports errors. The
// durable backends (badger, sqlite) do report errors; Fallback absorbs them
// and degrades the session to memory-only persistence instead.
package store

import (
	"errors"
	"sync"
)

// ErrUnavailable marks a backend that could not be opened or used.
var ErrUnavailable = errors.New("store: backend unavailable")

// Store is the contract the session components persist through.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Backend is a durable medium. Unlike Store it surfaces failures.
type Backend interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
	Delete(key string) error
	Close() error
}

// Memory keeps entries for the lifetime of the process. It satisfies both
// Store and Backend.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[key] = value
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Load(key string) (string, bool, error) {
	v, ok := m.Get(key)
	return v, ok, nil
}

func (m *Memory) Save(key, value string) error {
	m.Set(key, value)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.Remove(key)
	return nil
}

func (m *Memory) Close() error { return nil }
