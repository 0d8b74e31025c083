package store

import (
	"path/filepath"
	"testing"
)

// ══════════════════════════════════════════════
// SQLStateStore tests
// ══════════════════════════════════════════════

func newTestSQLStore(t *testing.T) *SQLStateStore {
	t.Helper()
	s, err := OpenSQLStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLStateStore(t *testing.T) {
	runStateStoreTests(t, newTestSQLStore(t))
}

func TestSQLStateStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	want := sampleSnapshot(6)

	first, err := OpenSQLStateStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Save("alex", "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLStateStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.Load("alex", "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.InteractionCount != want.InteractionCount {
		t.Fatalf("expected persisted snapshot, got %+v", got)
	}
}
