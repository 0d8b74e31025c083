package store

import (
	"testing"
	"time"

	personastate "github.com/cyberFlowTech/zapry-persona-state-go"
)

// ══════════════════════════════════════════════
// StateStore conformance tests (memory + file)
// ══════════════════════════════════════════════

func sampleSnapshot(interactions int) *personastate.EngineSnapshot {
	e := personastate.NewRelationshipStateEngine(personastate.EngineConfig{
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		OnClamp: func(string, float64, float64) {},
	})
	var snap *personastate.EngineSnapshot
	for i := 0; i < interactions; i++ {
		snap = e.ProcessInteraction(0.8, []string{"music"}, 0.6, 0.4)
	}
	if snap == nil {
		snap = e.Snapshot()
	}
	return snap
}

// runStateStoreTests exercises the StateStore contract against any
// implementation.
func runStateStoreTests(t *testing.T, s personastate.StateStore) {
	t.Helper()

	// Load before save: not found, no error.
	snap, err := s.Load("alex", "u1")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot for missing entry")
	}

	// Save and load round trip.
	want := sampleSnapshot(3)
	if err := s.Save("alex", "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load("alex", "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot after save")
	}
	if got.InteractionCount != want.InteractionCount {
		t.Fatalf("interaction count: want %d, got %d", want.InteractionCount, got.InteractionCount)
	}
	if got.Variables[personastate.VarTrust] != want.Variables[personastate.VarTrust] {
		t.Fatalf("trust: want %v, got %v",
			want.Variables[personastate.VarTrust], got.Variables[personastate.VarTrust])
	}
	if got.Stage != want.Stage || got.Layer != want.Layer {
		t.Fatalf("stage/layer: want %s/%s, got %s/%s", want.Stage, want.Layer, got.Stage, got.Layer)
	}

	// Overwrite wins.
	updated := sampleSnapshot(7)
	if err := s.Save("alex", "u1", updated); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Load("alex", "u1")
	if got.InteractionCount != 7 {
		t.Fatalf("expected overwrite to 7 interactions, got %d", got.InteractionCount)
	}

	// ListUsers sees both users, scoped to the persona.
	if err := s.Save("alex", "u2", sampleSnapshot(1)); err != nil {
		t.Fatalf("save u2: %v", err)
	}
	if err := s.Save("casey", "u9", sampleSnapshot(1)); err != nil {
		t.Fatalf("save other persona: %v", err)
	}
	users, err := s.ListUsers("alex")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users for alex, got %v", users)
	}

	// Delete removes; deleting again is fine.
	if err := s.Delete("alex", "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if snap, _ := s.Load("alex", "u1"); snap != nil {
		t.Fatal("expected nil after delete")
	}
	if err := s.Delete("alex", "u1"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}

func TestInMemoryStateStore(t *testing.T) {
	runStateStoreTests(t, NewInMemoryStateStore())
}

func TestInMemoryStateStore_CloneOnSave(t *testing.T) {
	s := NewInMemoryStateStore()
	snap := sampleSnapshot(2)
	if err := s.Save("alex", "u1", snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's snapshot must not affect the stored copy.
	snap.Variables[personastate.VarTrust] = -1
	got, _ := s.Load("alex", "u1")
	if got.Variables[personastate.VarTrust] == -1 {
		t.Fatal("store must keep its own copy of the snapshot")
	}
}

func TestFileStateStore(t *testing.T) {
	runStateStoreTests(t, NewFileStateStore(t.TempDir()))
}

func TestFileStateStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	want := sampleSnapshot(4)

	first := NewFileStateStore(dir)
	if err := first.Save("alex", "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := NewFileStateStore(dir)
	got, err := second.Load("alex", "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.InteractionCount != want.InteractionCount {
		t.Fatalf("expected persisted snapshot, got %+v", got)
	}
}
