package collector

import (
	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
)

// #region learning-curve

// learningCurve combines the player's recent success rate on this primitive
// (last 5 encounters, current outcome included) with the time-improvement
// ratio since their first encounter. First encounters get fixed defaults.
func learningCurve(exp profile.PatternExperience, success bool, completionTime float64) float64 {
	if exp.Encounters == 0 {
		if success {
			return 0.5
		}
		return 0.2
	}

	results := append(append([]bool(nil), exp.RecentResults...), success)
	if len(results) > 5 {
		results = results[len(results)-5:]
	}
	wins := 0
	for _, ok := range results {
		if ok {
			wins++
		}
	}
	recentRate := float64(wins) / float64(len(results))

	var timeImprovement float64
	if exp.FirstSolveTime > 0 {
		timeImprovement = clamp01((exp.FirstSolveTime - completionTime) / exp.FirstSolveTime)
	}

	return clamp01(0.7*recentRate + 0.3*timeImprovement)
}

// #endregion learning-curve

// #region adaptation-rate

// adaptationRate averages the player's historical per-tag success over the
// primitive's tags (unseen tags assume the configured default), then deducts
// capped penalties for hints and mistakes. Floored at zero.
func adaptationRate(p profile.Profile, tags []catalog.Tag, hints, mistakes int, config Config) float64 {
	if len(tags) == 0 {
		return 0
	}
	var sum float64
	for _, tag := range tags {
		stat, ok := p.TagSuccess[tag]
		if !ok || stat.Attempts == 0 {
			sum += config.NewTagSuccess
			continue
		}
		sum += stat.Ratio()
	}
	rate := sum / float64(len(tags))

	hintPenalty := config.HintPenaltyPer * float64(hints)
	if hintPenalty > config.HintPenaltyCap {
		hintPenalty = config.HintPenaltyCap
	}
	mistakePenalty := config.MistakePenaltyPer * float64(mistakes)
	if mistakePenalty > config.MistakePenaltyCap {
		mistakePenalty = config.MistakePenaltyCap
	}

	rate -= hintPenalty + mistakePenalty
	if rate < 0 {
		rate = 0
	}
	return rate
}

// #endregion adaptation-rate

// #region confidence

// confidenceLevel is the unweighted mean of three normalized sub-scores:
// speed, hint avoidance, and mistake avoidance, each against a fixed
// gameplay reference.
func confidenceLevel(m OutcomeMetrics, config Config) float64 {
	speed := clamp01((config.SpeedReference - m.CompletionTime) / config.SpeedReference)
	hintAvoid := clamp01(1 - float64(m.HintsUsed)/config.HintReference)
	mistakeAvoid := clamp01(1 - float64(m.Mistakes)/config.MistakeReference)
	return (speed + hintAvoid + mistakeAvoid) / 3
}

// #endregion confidence

// #region session-metrics

// computeSessionMetrics aggregates a finalized session's performance rows.
func computeSessionMetrics(s Session) SessionMetrics {
	var m SessionMetrics
	n := len(s.Performance)
	if n == 0 {
		return m
	}

	var timeSum, confSum, adaptSum, curveSum float64
	var hints, mistakes, wins int
	for _, rec := range s.Performance {
		timeSum += rec.CompletionTime
		confSum += rec.ConfidenceLevel
		adaptSum += rec.AdaptationRate
		curveSum += rec.LearningCurve
		hints += rec.HintsUsed
		mistakes += rec.Mistakes
		if rec.Success {
			wins++
		}
	}

	m.AvgCompletionTime = timeSum / float64(n)
	m.HintRate = float64(hints) / float64(n)
	m.MistakeRate = float64(mistakes) / float64(n)
	m.SuccessRate = float64(wins) / float64(n)
	m.AvgConfidence = confSum / float64(n)
	m.AvgAdaptation = adaptSum / float64(n)
	m.AvgLearningCurve = curveSum / float64(n)
	m.EngagementLevel = clamp01((m.AvgConfidence + m.AvgAdaptation + m.SuccessRate) / 3)

	if s.TotalTime > 0 && len(s.Stages) > 0 {
		m.ProgressionSpeed = float64(len(s.Stages)) / (s.TotalTime / 60)
	}
	return m
}

// #endregion session-metrics

// #region helpers

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
