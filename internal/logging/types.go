package logging

import "time"

// #region generation-entry

// GenerationEntry links a shipped stage pattern to the inputs and repairs
// that produced it, so any stage can be audited and regenerated later.
type GenerationEntry struct {
	PatternID     string
	StageNumber   int
	Seed          int64
	PlayerID      string
	Budget        float64
	PrimitiveIDs  []string
	Repaired      bool
	RepairActions []string
	CreatedAt     time.Time
}

// #endregion generation-entry
