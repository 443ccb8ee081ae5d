package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/storage"
)

func tempStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogGeneration(t *testing.T) {
	s := tempStore(t)

	entry := GenerationEntry{
		PatternID:     "stage-7-00001234",
		StageNumber:   7,
		Seed:          0x1234,
		PlayerID:      "p1",
		Budget:        1.76,
		PrimitiveIDs:  []string{"line_horizontal_3", "crate_obstacle"},
		Repaired:      true,
		RepairActions: []string{"swapped gravity_flip for line_horizontal_3"},
	}
	if err := LogGeneration(s.DB(), entry); err != nil {
		t.Fatalf("LogGeneration: %v", err)
	}

	var (
		patternID, primitives, actions string
		stage, repaired                int
		seed                           int64
		budget                         float64
	)
	row := s.DB().QueryRow(
		`SELECT pattern_id, stage_number, seed, budget, primitives, repaired, repair_actions FROM generation_log`)
	if err := row.Scan(&patternID, &stage, &seed, &budget, &primitives, &repaired, &actions); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if patternID != "stage-7-00001234" || stage != 7 || seed != 0x1234 {
		t.Fatalf("identity columns wrong: %s %d %d", patternID, stage, seed)
	}
	if primitives != "line_horizontal_3,crate_obstacle" {
		t.Fatalf("unexpected primitives column %q", primitives)
	}
	if repaired != 1 || actions == "" {
		t.Fatalf("repair columns wrong: repaired=%d actions=%q", repaired, actions)
	}
}

func TestLogGenerationAnonymousPlayer(t *testing.T) {
	s := tempStore(t)

	entry := GenerationEntry{
		PatternID:    "stage-1-00000001",
		StageNumber:  1,
		Seed:         1,
		Budget:       0.8,
		PrimitiveIDs: []string{"line_horizontal_3"},
		CreatedAt:    time.Now().UTC(),
	}
	if err := LogGeneration(s.DB(), entry); err != nil {
		t.Fatalf("LogGeneration: %v", err)
	}

	// Empty player and repair actions are stored as NULL, not "".
	var playerID, actions *string
	row := s.DB().QueryRow(`SELECT player_id, repair_actions FROM generation_log`)
	if err := row.Scan(&playerID, &actions); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if playerID != nil {
		t.Fatalf("expected NULL player_id, got %q", *playerID)
	}
	if actions != nil {
		t.Fatalf("expected NULL repair_actions, got %q", *actions)
	}
}
