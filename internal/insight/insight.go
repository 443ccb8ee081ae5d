// Package insight derives qualitative findings from a player's learning
// profile. Insights are advisory outputs for analytics and live tuning; the
// engine never executes them itself.
package insight

import (
	"fmt"
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/profile"
	"github.com/google/uuid"
)

// #region types

// Type classifies an insight.
type Type string

const (
	TypeDifficultyTrend   Type = "difficulty_trend"
	TypePatternPreference Type = "pattern_preference"
	TypeLearningPlateau   Type = "learning_plateau"
	TypeEngagementDrop    Type = "engagement_drop"
)

// Insight is a write-once, timestamped qualitative finding.
type Insight struct {
	ID             string             `json:"id"`
	PlayerID       string             `json:"player_id"`
	Type           Type               `json:"type"`
	Confidence     float64            `json:"confidence"`
	Description    string             `json:"description"`
	Recommendation string             `json:"recommendation"`
	Data           map[string]float64 `json:"data"`
	CreatedAt      time.Time          `json:"created_at"`
}

// #endregion types

// #region config

// Config holds the detector thresholds.
type Config struct {
	TrendWindow        int     // learning-curve samples for the trend detector
	TrendSlopeMin      float64 // |slope| below this is no trend
	PlateauWindow      int     // samples for the variance check
	PlateauVarianceMax float64
	EngagementWindow   int     // sessions for the engagement-drop slope
	EngagementDropMin  float64 // negative slope magnitude that triggers
}

// DefaultConfig returns the shipped detector thresholds.
func DefaultConfig() Config {
	return Config{
		TrendWindow:        5,
		TrendSlopeMin:      0.02,
		PlateauWindow:      10,
		PlateauVarianceMax: 0.001,
		EngagementWindow:   3,
		EngagementDropMin:  0.05,
	}
}

// #endregion config

// #region generate

// Generate runs all four detectors over the profile. Each detector yields at
// most one insight; an empty result is normal, not an error.
func Generate(p profile.Profile, config Config) []Insight {
	var out []Insight
	if in, ok := difficultyTrend(p, config); ok {
		out = append(out, in)
	}
	if in, ok := patternPreference(p); ok {
		out = append(out, in)
	}
	if in, ok := learningPlateau(p, config); ok {
		out = append(out, in)
	}
	if in, ok := engagementDrop(p, config); ok {
		out = append(out, in)
	}
	return out
}

// #endregion generate

// #region detectors

// difficultyTrend fits a least-squares line over the most recent
// learning-curve samples and reports the direction when the slope is
// meaningful.
func difficultyTrend(p profile.Profile, config Config) (Insight, bool) {
	samples := tail(p.LearningCurve, config.TrendWindow)
	if len(samples) < config.TrendWindow {
		return Insight{}, false
	}
	slope := regressionSlope(samples)
	switch {
	case slope > config.TrendSlopeMin:
		return newInsight(p, TypeDifficultyTrend, 0.8,
			"difficulty trend: improving",
			"raise the difficulty multiplier one step",
			map[string]float64{"slope": slope}), true
	case slope < -config.TrendSlopeMin:
		return newInsight(p, TypeDifficultyTrend, 0.8,
			"difficulty trend: declining",
			"lower the difficulty multiplier one step",
			map[string]float64{"slope": slope}), true
	default:
		return Insight{}, false
	}
}

// patternPreference fires when the player has demonstrated strong tags.
func patternPreference(p profile.Profile) (Insight, bool) {
	if len(p.StrongTags) == 0 {
		return Insight{}, false
	}
	return newInsight(p, TypePatternPreference, 0.7,
		fmt.Sprintf("pattern preference: strong with %d tag(s), e.g. %q", len(p.StrongTags), p.StrongTags[0]),
		"weight preferred tags higher in selection",
		map[string]float64{"strong_tags": float64(len(p.StrongTags))}), true
}

// learningPlateau fires on near-zero variance over the recent curve window.
func learningPlateau(p profile.Profile, config Config) (Insight, bool) {
	samples := tail(p.LearningCurve, config.PlateauWindow)
	if len(samples) < config.PlateauWindow/2 {
		return Insight{}, false
	}
	v := variance(samples)
	if v >= config.PlateauVarianceMax {
		return Insight{}, false
	}
	return newInsight(p, TypeLearningPlateau, 0.75,
		"learning plateau: progression has flattened",
		"introduce a higher-novelty primitive",
		map[string]float64{"variance": v}), true
}

// engagementDrop fires on a sustained negative engagement slope.
func engagementDrop(p profile.Profile, config Config) (Insight, bool) {
	samples := tail(p.EngagementHistory, config.EngagementWindow)
	if len(samples) < config.EngagementWindow {
		return Insight{}, false
	}
	slope := regressionSlope(samples)
	if slope >= -config.EngagementDropMin {
		return Insight{}, false
	}
	return newInsight(p, TypeEngagementDrop, 0.85,
		"engagement drop: session engagement is falling",
		"ease difficulty and attach support systems",
		map[string]float64{"slope": slope}), true
}

// #endregion detectors

// #region helpers

func newInsight(p profile.Profile, t Type, confidence float64, desc, rec string, data map[string]float64) Insight {
	return Insight{
		ID:             uuid.New().String(),
		PlayerID:       p.PlayerID,
		Type:           t,
		Confidence:     confidence,
		Description:    desc,
		Recommendation: rec,
		Data:           data,
		CreatedAt:      time.Now().UTC(),
	}
}

func tail(s []float64, n int) []float64 {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// regressionSlope returns the least-squares slope over samples indexed 0..n-1.
func regressionSlope(samples []float64) float64 {
	n := float64(len(samples))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range samples {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func variance(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))
	var acc float64
	for _, v := range samples {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(samples))
}

// #endregion helpers
