package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	personastate "github.com/cyberFlowTech/zapry-persona-state-go"
)

// SQLStateStore implements StateStore on SQLite. Snapshots are stored as
// JSON in a single table keyed by (persona_id, user_id).
type SQLStateStore struct {
	conn *sqlx.DB
}

// OpenSQLStateStore opens or creates a SQLite database at the given path
// and migrates the schema. Use ":memory:" for an in-memory store.
func OpenSQLStateStore(path string) (*SQLStateStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLStateStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLStateStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS relationship_state (
		persona_id TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		snapshot   TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (persona_id, user_id)
	);`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLStateStore) Save(personaID, userID string, snap *personastate.EngineSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO relationship_state (persona_id, user_id, snapshot, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (persona_id, user_id) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		personaID, userID, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

func (s *SQLStateStore) Load(personaID, userID string) (*personastate.EngineSnapshot, error) {
	var data string
	err := s.conn.Get(&data,
		"SELECT snapshot FROM relationship_state WHERE persona_id = ? AND user_id = ?",
		personaID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	var snap personastate.EngineSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &snap, nil
}

func (s *SQLStateStore) Delete(personaID, userID string) error {
	_, err := s.conn.Exec(
		"DELETE FROM relationship_state WHERE persona_id = ? AND user_id = ?",
		personaID, userID)
	return err
}

func (s *SQLStateStore) ListUsers(personaID string) ([]string, error) {
	var users []string
	err := s.conn.Select(&users,
		"SELECT user_id FROM relationship_state WHERE persona_id = ? ORDER BY user_id",
		personaID)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return users, nil
}

// Close closes the database connection.
func (s *SQLStateStore) Close() error {
	return s.conn.Close()
}

// Compile-time interface check.
var _ personastate.StateStore = (*SQLStateStore)(nil)
