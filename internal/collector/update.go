package collector

import (
	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
)

// #region apply-session

// ApplySession is a pure function: it folds one finalized session into a
// profile and returns the new value. The input profile is never mutated, so
// historical snapshots stay intact for replay and comparison.
func ApplySession(old profile.Profile, s Session, config Config) profile.Profile {
	p := old.Clone()

	p.GamesPlayed++
	p.TotalPlayTime += s.TotalTime

	applyPerformance(&p, s)
	applyTagSets(&p, s)
	applyStyle(&p, s.Metrics)
	applyProgressionPreference(&p, s)
	applyComplexityCeiling(&p, s)
	applyRecommendations(&p, s.Metrics)

	p.LearningCurve = profile.AppendCurveSample(p.LearningCurve, s.Metrics.AvgLearningCurve)
	p.EngagementHistory = profile.AppendEngagement(p.EngagementHistory, s.Metrics.EngagementLevel)
	p.AvgLearningRate = mean(p.LearningCurve)

	// Adaptability drifts toward the session's observed adaptation,
	// never jumping: 80% inertia per session.
	p.AdaptabilityScore = clamp01(0.8*p.AdaptabilityScore + 0.2*s.Metrics.AvgAdaptation)

	p.UpdatedAt = s.EndedAt
	return p
}

// #endregion apply-session

// #region performance-fold

// applyPerformance folds every performance row into per-primitive experience
// and per-tag counters. Mastery only advances, via the profile thresholds.
func applyPerformance(p *profile.Profile, s Session) {
	for _, rec := range s.Performance {
		exp := p.Experience[rec.PrimitiveID]
		p.Experience[rec.PrimitiveID] = profile.RecordEncounter(
			exp, rec.Success, rec.CompletionTime, rec.LearningCurve, rec.At)

		for _, tag := range rec.Tags {
			stat := p.TagSuccess[tag]
			stat.Attempts++
			if rec.Success {
				stat.Successes++
			}
			p.TagSuccess[tag] = stat
		}

		score := rec.ConfidenceLevel
		if rec.Success {
			score = (score + 1) / 2
		} else {
			score = score / 2
		}
		p.RecentPerformance = profile.AppendPerformance(p.RecentPerformance, score)
	}
}

// #endregion performance-fold

// #region tag-sets

// applyTagSets recomputes strong and weak tags from this session's rows
// alone: ratio ≥ 0.8 strong, < 0.5 weak. Preferred tags accumulate strong
// tags across sessions.
func applyTagSets(p *profile.Profile, s Session) {
	attempts := make(map[catalog.Tag]int)
	wins := make(map[catalog.Tag]int)
	var seen []catalog.Tag
	for _, rec := range s.Performance {
		for _, tag := range rec.Tags {
			if attempts[tag] == 0 {
				seen = append(seen, tag)
			}
			attempts[tag]++
			if rec.Success {
				wins[tag]++
			}
		}
	}
	if len(seen) == 0 {
		return
	}

	p.StrongTags = nil
	p.WeakTags = nil
	for _, tag := range seen {
		ratio := float64(wins[tag]) / float64(attempts[tag])
		switch {
		case ratio >= 0.8:
			p.StrongTags = append(p.StrongTags, tag)
		case ratio < 0.5:
			p.WeakTags = append(p.WeakTags, tag)
		}
	}

	for _, tag := range p.StrongTags {
		if !p.PrefersTag(tag) {
			p.PreferredTags = append(p.PreferredTags, tag)
		}
	}
}

// #endregion tag-sets

// #region style

// applyStyle re-derives the dominant learning style from this session's
// metrics alone.
func applyStyle(p *profile.Profile, m SessionMetrics) {
	switch {
	case m.HintRate > 1.5:
		p.Style = profile.StyleVisual
	case m.MistakeRate < 0.5 && m.AvgCompletionTime > 90:
		p.Style = profile.StyleSystematic
	case m.AvgCompletionTime > 0 && m.AvgCompletionTime < 45 && m.HintRate < 0.5:
		p.Style = profile.StyleIntuitive
	default:
		p.Style = profile.StyleTrialAndError
	}
}

// applyProgressionPreference derives pacing preference from how the player
// fared on hard versus easy primitives this session.
func applyProgressionPreference(p *profile.Profile, s Session) {
	var hardWins, hardTotal, easyWins, easyTotal int
	for _, rec := range s.Performance {
		hard := rec.PatternComplexity >= 4.0
		if hard {
			hardTotal++
			if rec.Success {
				hardWins++
			}
		} else {
			easyTotal++
			if rec.Success {
				easyWins++
			}
		}
	}
	if hardTotal == 0 && easyTotal == 0 {
		return
	}

	hardRate := ratio(hardWins, hardTotal)
	easyRate := ratio(easyWins, easyTotal)
	switch {
	case hardTotal > 0 && hardRate >= 0.7:
		p.Progression = profile.ProgressionChallenging
	case hardTotal > 0 && easyTotal > 0 && hardRate >= 0.5 && easyRate >= 0.5:
		p.Progression = profile.ProgressionVaried
	default:
		p.Progression = profile.ProgressionGradual
	}
}

// #endregion style

// #region complexity-ceiling

// applyComplexityCeiling raises (never lowers) the demonstrated complexity
// ceiling when the player succeeded against a harder pattern.
func applyComplexityCeiling(p *profile.Profile, s Session) {
	for _, rec := range s.Performance {
		if rec.Success && rec.PatternComplexity > p.MaxHandledComplexity {
			p.MaxHandledComplexity = rec.PatternComplexity
		}
	}
}

// #endregion complexity-ceiling

// #region recommendations

const (
	recommendStep = 0.1
	recommendMin  = 0.8
	recommendMax  = 1.2
)

// applyRecommendations nudges the three personalization knobs by fixed
// steps based on threshold crossings. Never jumps; always clamped.
func applyRecommendations(p *profile.Profile, m SessionMetrics) {
	r := p.Recommend

	switch {
	case m.EngagementLevel >= 0.7:
		r.DifficultyMultiplier += recommendStep
	case m.EngagementLevel < 0.4:
		r.DifficultyMultiplier -= recommendStep
	}

	switch {
	case m.HintRate > 1.0:
		r.HintFrequency += recommendStep
	case m.HintRate < 0.2:
		r.HintFrequency -= recommendStep
	}

	switch {
	case m.MistakeRate < 0.5 && m.SuccessRate >= 0.7:
		r.ComplexityLimit += recommendStep
	case m.MistakeRate > 1.5:
		r.ComplexityLimit -= recommendStep
	}

	r.DifficultyMultiplier = clampRange(r.DifficultyMultiplier, recommendMin, recommendMax)
	r.HintFrequency = clampRange(r.HintFrequency, recommendMin, recommendMax)
	r.ComplexityLimit = clampRange(r.ComplexityLimit, recommendMin, recommendMax)
	p.Recommend = r
}

// #endregion recommendations

// #region helpers

func ratio(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

func mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
