package profile

import (
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
)

// #region mastery

// MasteryLevel is the discrete per-primitive progression a player earns.
// Levels only advance, never regress.
type MasteryLevel int

const (
	MasteryNovice MasteryLevel = iota
	MasteryLearning
	MasteryCompetent
	MasteryMaster
)

// String returns the lowercase level name.
func (m MasteryLevel) String() string {
	switch m {
	case MasteryNovice:
		return "novice"
	case MasteryLearning:
		return "learning"
	case MasteryCompetent:
		return "competent"
	case MasteryMaster:
		return "master"
	default:
		return "unknown"
	}
}

// #endregion mastery

// #region experience

// PatternExperience tracks one player's history with one primitive.
type PatternExperience struct {
	Encounters     int          `json:"encounters"`
	SuccessRate    float64      `json:"success_rate"`
	AvgSolveTime   float64      `json:"avg_solve_time"` // seconds
	FirstSolveTime float64      `json:"first_solve_time"`
	LastSolveTime  float64      `json:"last_solve_time"`
	RecentResults  []bool       `json:"recent_results"` // last 5 outcomes, oldest first
	Progression    []float64    `json:"progression"`    // learning-curve samples per encounter
	LastSeen       time.Time    `json:"last_seen"`
	Mastery        MasteryLevel `json:"mastery"`
}

// #endregion experience

// #region learning-style

// LearningStyle is the dominant style derived from session telemetry.
type LearningStyle string

const (
	StyleVisual        LearningStyle = "visual"
	StyleSystematic    LearningStyle = "systematic"
	StyleIntuitive     LearningStyle = "intuitive"
	StyleTrialAndError LearningStyle = "trial_and_error"
)

// ProgressionPreference is the pacing a player responds best to.
type ProgressionPreference string

const (
	ProgressionGradual     ProgressionPreference = "gradual"
	ProgressionVaried      ProgressionPreference = "varied"
	ProgressionChallenging ProgressionPreference = "challenging"
)

// #endregion learning-style

// #region recommendation

// Recommendation holds the bounded personalization knobs nudged at session
// end. Values step by small fixed increments, clamped to [0.8, 1.2].
type Recommendation struct {
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
	HintFrequency        float64 `json:"hint_frequency"`
	ComplexityLimit      float64 `json:"complexity_limit"`
}

// #endregion recommendation

// #region tag-stat

// TagStat accumulates per-tag attempt/success counts across sessions.
type TagStat struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
}

// Ratio returns successes/attempts, or 0 for no attempts.
func (s TagStat) Ratio() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Attempts)
}

// #endregion tag-stat

// #region profile

// Profile is the durable per-player personalization record. It is read by
// generation and replaced (never mutated in place) by the collector at
// session end.
type Profile struct {
	PlayerID             string                       `json:"player_id"`
	Experience           map[string]PatternExperience `json:"experience"`
	AdaptabilityScore    float64                      `json:"adaptability_score"`
	MaxHandledComplexity float64                      `json:"max_handled_complexity"`
	PreferredTags        []catalog.Tag                `json:"preferred_tags"`
	AvgLearningRate      float64                      `json:"avg_learning_rate"`
	RecentPerformance    []float64                    `json:"recent_performance"` // newest last
	TagSuccess           map[catalog.Tag]TagStat      `json:"tag_success"`
	StrongTags           []catalog.Tag                `json:"strong_tags"`
	WeakTags             []catalog.Tag                `json:"weak_tags"`
	Style                LearningStyle                `json:"style"`
	Progression          ProgressionPreference        `json:"progression"`
	LearningCurve        []float64                    `json:"learning_curve"` // one sample per session
	EngagementHistory    []float64                    `json:"engagement_history"`
	GamesPlayed          int                          `json:"games_played"`
	TotalPlayTime        float64                      `json:"total_play_time"` // seconds
	Recommend            Recommendation               `json:"recommend"`
	UpdatedAt            time.Time                    `json:"updated_at"`
}

// #endregion profile
