package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	personastate "github.com/cyberFlowTech/zapry-persona-state-go"
)

// FileStateStore persists snapshots as JSON files on disk.
// Layout: {baseDir}/{persona_id}/{user_id}.json
type FileStateStore struct {
	BaseDir string
}

// NewFileStateStore creates a FileStateStore at the given directory.
func NewFileStateStore(baseDir string) *FileStateStore {
	return &FileStateStore{BaseDir: baseDir}
}

func (s *FileStateStore) path(personaID, userID string) string {
	return filepath.Join(s.BaseDir, personaID, userID+".json")
}

func (s *FileStateStore) Save(personaID, userID string, snap *personastate.EngineSnapshot) error {
	dir := filepath.Join(s.BaseDir, personaID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(personaID, userID), data, 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *FileStateStore) Load(personaID, userID string) (*personastate.EngineSnapshot, error) {
	data, err := os.ReadFile(s.path(personaID, userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	var snap personastate.EngineSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &snap, nil
}

func (s *FileStateStore) Delete(personaID, userID string) error {
	err := os.Remove(s.path(personaID, userID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func (s *FileStateStore) ListUsers(personaID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.BaseDir, personaID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var users []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") {
			users = append(users, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(users)
	return users, nil
}

// Compile-time interface check.
var _ personastate.StateStore = (*FileStateStore)(nil)
