package logging

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// #region log-generation

// LogGeneration writes one entry to the generation_log table. The table is
// created by the storage schema migration.
func LogGeneration(db *sql.DB, entry GenerationEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	repaired := 0
	if entry.Repaired {
		repaired = 1
	}

	_, err := db.Exec(
		`INSERT INTO generation_log (pattern_id, stage_number, seed, player_id, budget, primitives, repaired, repair_actions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.PatternID,
		entry.StageNumber,
		entry.Seed,
		nullIfEmpty(entry.PlayerID),
		entry.Budget,
		strings.Join(entry.PrimitiveIDs, ","),
		repaired,
		nullIfEmpty(strings.Join(entry.RepairActions, "; ")),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log generation: %w", err)
	}
	return nil
}

// #endregion log-generation

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
