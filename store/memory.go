// Package store provides StateStore implementations for persisting
// relationship engine snapshots: in-memory, JSON files, Redis, and SQLite.
package store

import (
	"sync"

	personastate "github.com/cyberFlowTech/zapry-persona-state-go"
)

// InMemoryStateStore is a thread-safe in-memory StateStore for testing and
// single-process deployments.
type InMemoryStateStore struct {
	mu    sync.RWMutex
	snaps map[string]map[string]*personastate.EngineSnapshot // persona_id → user_id → snapshot
}

// NewInMemoryStateStore creates an empty in-memory store.
func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{
		snaps: make(map[string]map[string]*personastate.EngineSnapshot),
	}
}

func (s *InMemoryStateStore) Save(personaID, userID string, snap *personastate.EngineSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[personaID]; !ok {
		s.snaps[personaID] = make(map[string]*personastate.EngineSnapshot)
	}
	s.snaps[personaID][userID] = snap.Clone()
	return nil
}

func (s *InMemoryStateStore) Load(personaID, userID string) (*personastate.EngineSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users, ok := s.snaps[personaID]
	if !ok {
		return nil, nil
	}
	snap, ok := users[userID]
	if !ok {
		return nil, nil
	}
	return snap.Clone(), nil
}

func (s *InMemoryStateStore) Delete(personaID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if users, ok := s.snaps[personaID]; ok {
		delete(users, userID)
	}
	return nil
}

func (s *InMemoryStateStore) ListUsers(personaID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := s.snaps[personaID]
	result := make([]string, 0, len(users))
	for userID := range users {
		result = append(result, userID)
	}
	return result, nil
}

// Compile-time interface check.
var _ personastate.StateStore = (*InMemoryStateStore)(nil)
