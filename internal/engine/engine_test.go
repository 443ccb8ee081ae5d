package engine

import (
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/stagecraft/internal/collector"
	"github.com/danielpatrickdp/stagecraft/internal/config"
	"github.com/danielpatrickdp/stagecraft/internal/storage"
)

func tempStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "engine.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewWithoutStore(t *testing.T) {
	e, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Store != nil {
		t.Fatal("expected nil store")
	}
	if e.Catalog.Len() == 0 {
		t.Fatal("builtin catalog missing")
	}
}

func TestFullSessionLoop(t *testing.T) {
	store := tempStore(t)
	e, err := New(config.Default(), store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := e.Collector.StartSession("p1"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, err := e.GenerateStage("p1", 1, 42)
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}
	if len(result.Pattern.Primitives) == 0 {
		t.Fatal("empty pattern")
	}

	err = e.Collector.RecordPatternPerformance(result.Pattern, true, collector.OutcomeMetrics{
		CompletionTime: 30, Attempts: 1,
	})
	if err != nil {
		t.Fatalf("RecordPatternPerformance: %v", err)
	}
	if err := e.Collector.RecordStageCompletion(1, true, 500, 30); err != nil {
		t.Fatalf("RecordStageCompletion: %v", err)
	}

	session, _, err := e.FinishSession()
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if session.PlayerID != "p1" || len(session.Performance) == 0 {
		t.Fatalf("unexpected session %+v", session)
	}

	// Profile and session must be durable.
	data, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if _, ok := data.Profiles["p1"]; !ok {
		t.Fatal("profile not persisted")
	}
	if len(data.Sessions) != 1 || data.Sessions[0].ID != session.ID {
		t.Fatalf("session not persisted: %+v", data.Sessions)
	}

	// Generation provenance must be on record.
	var n int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM generation_log`).Scan(&n); err != nil {
		t.Fatalf("count generation_log: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 generation log row, got %d", n)
	}
}

func TestProfilesRehydratedOnRestart(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "engine.db")

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	e, err := New(config.Default(), store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Collector.StartSession("p1"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	result, err := e.GenerateStage("p1", 1, 7)
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}
	if err := e.Collector.RecordPatternPerformance(result.Pattern, true, collector.OutcomeMetrics{CompletionTime: 25, Attempts: 1}); err != nil {
		t.Fatalf("RecordPatternPerformance: %v", err)
	}
	if _, _, err := e.FinishSession(); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Second engine on the same database sees the learned profile.
	store2, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { store2.Close() })

	e2, err := New(config.Default(), store2)
	if err != nil {
		t.Fatalf("New (restart): %v", err)
	}
	p, ok := e2.Collector.Profile("p1")
	if !ok {
		t.Fatal("profile not rehydrated after restart")
	}
	if p.GamesPlayed != 1 {
		t.Fatalf("expected 1 game played, got %d", p.GamesPlayed)
	}
}

func TestGenerateStageDeterministicAcrossEngines(t *testing.T) {
	e1, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e2, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r1, err := e1.GenerateStage("p1", 20, 1234)
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}
	r2, err := e2.GenerateStage("p1", 20, 1234)
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}
	if r1.Pattern.ID != r2.Pattern.ID {
		t.Fatalf("pattern ids differ: %s vs %s", r1.Pattern.ID, r2.Pattern.ID)
	}
	ids1, ids2 := r1.Pattern.PrimitiveIDs(), r2.Pattern.PrimitiveIDs()
	if len(ids1) != len(ids2) {
		t.Fatalf("primitive counts differ: %v vs %v", ids1, ids2)
	}
	for i := range ids1 {
		if ids1[i] != ids2[i] {
			t.Fatalf("primitive %d differs: %s vs %s", i, ids1[i], ids2[i])
		}
	}
}
