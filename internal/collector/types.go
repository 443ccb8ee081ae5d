package collector

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
)

// #region errors

// Session-protocol violations. The collector reports them and leaves its
// state unchanged; it never guesses intent by auto-closing or auto-opening.
var (
	ErrSessionActive   = errors.New("collector: session already active")
	ErrNoActiveSession = errors.New("collector: no active session")
)

// #endregion errors

// #region config

// Config holds the collector's derivation constants and buffer bounds.
type Config struct {
	HistoryLimit           int // finalized sessions kept in the ring
	MinSessionsForInsights int

	// Confidence sub-score references (gameplay baselines).
	SpeedReference   float64 // seconds
	HintReference    float64
	MistakeReference float64

	// Adaptation-rate derivation.
	NewTagSuccess     float64 // assumed success ratio for unseen tags
	HintPenaltyPer    float64
	HintPenaltyCap    float64
	MistakePenaltyPer float64
	MistakePenaltyCap float64
}

// DefaultConfig returns the shipped collector constants.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:           20,
		MinSessionsForInsights: 3,
		SpeedReference:         120,
		HintReference:          5,
		MistakeReference:       3,
		NewTagSuccess:          0.3,
		HintPenaltyPer:         0.1,
		HintPenaltyCap:         0.3,
		MistakePenaltyPer:      0.1,
		MistakePenaltyCap:      0.2,
	}
}

// #endregion config

// #region action

// PlayerAction is one raw game-loop event appended to the session log.
type PlayerAction struct {
	Type    string            `json:"type"`
	Data    map[string]string `json:"data"`
	Context string            `json:"context"`
	At      time.Time         `json:"at"`
}

// #endregion action

// #region performance

// OutcomeMetrics is the raw measurement reported with a pattern outcome.
type OutcomeMetrics struct {
	CompletionTime float64 // seconds
	Attempts       int
	HintsUsed      int
	Mistakes       int
}

// PerformanceRecord is one row per primitive applied within a pattern.
// The three derived scalars are attached at the moment of recording and
// never recomputed.
type PerformanceRecord struct {
	PatternID         string        `json:"pattern_id"`
	PrimitiveID       string        `json:"primitive_id"`
	Tags              []catalog.Tag `json:"tags"`
	PatternComplexity float64       `json:"pattern_complexity"`
	Success           bool          `json:"success"`
	CompletionTime    float64       `json:"completion_time"`
	Attempts          int           `json:"attempts"`
	HintsUsed         int           `json:"hints_used"`
	Mistakes          int           `json:"mistakes"`
	LearningCurve     float64       `json:"learning_curve"`
	AdaptationRate    float64       `json:"adaptation_rate"`
	ConfidenceLevel   float64       `json:"confidence_level"`
	At                time.Time     `json:"at"`
}

// #endregion performance

// #region stage-result

// StageResult records one stage completion within a session.
type StageResult struct {
	StageNumber int       `json:"stage_number"`
	Success     bool      `json:"success"`
	Score       int       `json:"score"`
	PlayTime    float64   `json:"play_time"` // seconds
	At          time.Time `json:"at"`
}

// #endregion stage-result

// #region session-metrics

// SessionMetrics are the aggregates computed once at session end.
type SessionMetrics struct {
	AvgCompletionTime float64 `json:"avg_completion_time"`
	HintRate          float64 `json:"hint_rate"`    // hints per performance row
	MistakeRate       float64 `json:"mistake_rate"` // mistakes per performance row
	ProgressionSpeed  float64 `json:"progression_speed"` // stages per minute
	SuccessRate       float64 `json:"success_rate"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgAdaptation     float64 `json:"avg_adaptation"`
	AvgLearningCurve  float64 `json:"avg_learning_curve"`
	EngagementLevel   float64 `json:"engagement_level"` // mean of confidence, adaptation, success rate
}

// #endregion session-metrics

// #region session

// Session is one bounded recording window. Mutated only while active;
// immutable once finalized by EndSession.
type Session struct {
	ID          string              `json:"id"`
	PlayerID    string              `json:"player_id"`
	StartedAt   time.Time           `json:"started_at"`
	EndedAt     time.Time           `json:"ended_at"`
	Stages      []StageResult       `json:"stages"`
	TotalScore  int                 `json:"total_score"`
	TotalTime   float64             `json:"total_time"` // seconds of recorded stage play
	Actions     []PlayerAction      `json:"actions"`
	Performance []PerformanceRecord `json:"performance"`
	Metrics     SessionMetrics      `json:"metrics"`
}

// #endregion session
