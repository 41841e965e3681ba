// Package state stores the latest record of each chain stage, keyed by
// session and stage name. Records are opaque JSON; the chain re-parses
// and re-validates them on every read.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("state: record not found")

// Store is the shared-state register the chain reads and writes.
// Distinct sessions never share records; within one session each stage
// key holds only the latest record (writes supersede).
type Store interface {
	Get(ctx context.Context, sessionID, key string) (json.RawMessage, error)
	Put(ctx context.Context, sessionID, key string, record json.RawMessage) error
	Keys(ctx context.Context, sessionID string) ([]string, error)
}

// MemoryStore implements Store in memory. Thread-safe via RWMutex;
// records are copied on both read and write so callers cannot alias the
// stored bytes.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.sessions[sessionID][key]; ok {
		out := make(json.RawMessage, len(rec))
		copy(out, rec)
		return out, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Put(ctx context.Context, sessionID, key string, record json.RawMessage) error {
	cp := make(json.RawMessage, len(record))
	copy(cp, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]json.RawMessage)
	}
	s.sessions[sessionID][key] = cp
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.sessions[sessionID]))
	for k := range s.sessions[sessionID] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
