package personastate

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ──────────────────────────────────────────────
// Sessions — one serialized engine per (persona, user)
// ──────────────────────────────────────────────

// StateStore persists engine snapshots between sessions. Implementations
// live in the store subpackage; durability guarantees are up to the backend.
type StateStore interface {
	// Save persists the snapshot for a (persona, user) pair, overwriting
	// any previous one.
	Save(personaID, userID string, snap *EngineSnapshot) error

	// Load returns the stored snapshot, or (nil, nil) when none exists.
	Load(personaID, userID string) (*EngineSnapshot, error)

	// Delete removes the stored snapshot. Deleting a missing entry is not
	// an error.
	Delete(personaID, userID string) error

	// ListUsers returns the user IDs with stored state for a persona.
	ListUsers(personaID string) ([]string, error)
}

// Session wraps one engine with the serialization the engine itself does
// not provide. All engine access for a (persona, user) pair goes through
// its session.
type Session struct {
	ID        string
	PersonaID string
	UserID    string

	mu      sync.Mutex
	engine  *RelationshipStateEngine
	manager *SessionManager
}

// ProcessInteraction forwards to the engine under the session lock.
func (s *Session) ProcessInteraction(quality float64, sharedInterests []string, emotionalDepth, disclosureLevel float64) *EngineSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.engine.ProcessInteraction(quality, sharedInterests, emotionalDepth, disclosureLevel)
	s.manager.interactions.Inc()
	return snap
}

// ProcessSignals forwards the full signal set under the session lock.
func (s *Session) ProcessSignals(signals InteractionSignals) *EngineSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.engine.ProcessSignals(signals)
	s.manager.interactions.Inc()
	return snap
}

// ApplyTimeDecay forwards to the engine under the session lock.
func (s *Session) ApplyTimeDecay(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ApplyTimeDecay(elapsed)
}

// Snapshot returns the current state under the session lock.
func (s *Session) Snapshot() *EngineSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// decayIfIdle applies idle decay when the last interaction is older than
// the threshold. Used by the DecayScheduler.
func (s *Session) decayIfIdle(now time.Time, minIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idle := now.Sub(s.engine.lastInteraction)
	if idle >= minIdle {
		s.engine.ApplyTimeDecay(idle)
	}
}

// SessionManagerStats are cumulative counters across all sessions.
type SessionManagerStats struct {
	Sessions     int   `json:"sessions"`
	Interactions int64 `json:"interactions"`
	ClampEvents  int64 `json:"clamp_events"`
}

// SessionManager owns one Session per (persona, user) pair. Engines are
// created lazily, restored from the StateStore when a snapshot exists.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store  StateStore // optional
	config EngineConfig

	interactions atomic.Int64
	clamps       atomic.Int64
}

// NewSessionManager creates a manager. store may be nil for purely
// in-process use. The config is applied to every engine the manager
// creates; its OnClamp is chained after the manager's clamp counter.
func NewSessionManager(store StateStore, config ...EngineConfig) *SessionManager {
	cfg := EngineConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		store:    store,
		config:   cfg,
	}
}

func sessionKey(personaID, userID string) string {
	return personaID + ":" + userID
}

// Acquire returns the session for a (persona, user) pair, creating it on
// first use. When a store is configured and holds a snapshot for the pair,
// the engine resumes from it.
func (m *SessionManager) Acquire(personaID, userID string) (*Session, error) {
	key := sessionKey(personaID, userID)

	m.mu.RLock()
	sess, ok := m.sessions[key]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[key]; ok {
		return sess, nil
	}

	var snap *EngineSnapshot
	if m.store != nil {
		loaded, err := m.store.Load(personaID, userID)
		if err != nil {
			return nil, fmt.Errorf("load state for %s: %w", key, err)
		}
		snap = loaded
	}

	cfg := m.config
	userClamp := cfg.OnClamp
	cfg.OnClamp = func(field string, raw, clamped float64) {
		m.clamps.Inc()
		if userClamp != nil {
			userClamp(field, raw, clamped)
		} else {
			log.Printf("[SessionManager] Clamped input %s for %s: %v -> %v", field, key, raw, clamped)
		}
	}

	sess = &Session{
		ID:        uuid.NewString(),
		PersonaID: personaID,
		UserID:    userID,
		engine:    NewEngineFromSnapshot(snap, cfg),
		manager:   m,
	}
	m.sessions[key] = sess
	if snap != nil && m.config.Traits != nil {
		log.Printf("[SessionManager] Resumed %s from snapshot (profile=%s, interactions=%d)",
			key, m.config.Traits.ProfileHash(), snap.InteractionCount)
	}
	return sess, nil
}

// Flush persists the session's current snapshot to the store. No-op
// without a store.
func (m *SessionManager) Flush(sess *Session) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(sess.PersonaID, sess.UserID, sess.Snapshot()); err != nil {
		return fmt.Errorf("save state for %s:%s: %w", sess.PersonaID, sess.UserID, err)
	}
	return nil
}

// FlushAll persists every active session, returning the first error after
// attempting all of them.
func (m *SessionManager) FlushAll() error {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	var firstErr error
	for _, s := range sessions {
		if err := m.Flush(s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Release flushes a session and drops it from the manager.
func (m *SessionManager) Release(sess *Session) error {
	err := m.Flush(sess)
	m.mu.Lock()
	delete(m.sessions, sessionKey(sess.PersonaID, sess.UserID))
	m.mu.Unlock()
	return err
}

// Stats returns cumulative counters.
func (m *SessionManager) Stats() SessionManagerStats {
	m.mu.RLock()
	count := len(m.sessions)
	m.mu.RUnlock()
	return SessionManagerStats{
		Sessions:     count,
		Interactions: m.interactions.Load(),
		ClampEvents:  m.clamps.Load(),
	}
}

// forEachSession calls fn for every active session.
func (m *SessionManager) forEachSession(fn func(*Session)) {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()
	for _, s := range sessions {
		fn(s)
	}
}
