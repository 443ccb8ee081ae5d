package profile

import (
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
)

// #region defaults

const (
	defaultAdaptability  = 0.5
	defaultComplexityCap = 3.0
	recentResultsWindow  = 5
	recentPerfWindow     = 10
	learningCurveWindow  = 20
	engagementWindow     = 10
)

// New returns a fresh profile with neutral personalization defaults.
func New(playerID string) Profile {
	return Profile{
		PlayerID:             playerID,
		Experience:           make(map[string]PatternExperience),
		AdaptabilityScore:    defaultAdaptability,
		MaxHandledComplexity: defaultComplexityCap,
		TagSuccess:           make(map[catalog.Tag]TagStat),
		Style:                StyleTrialAndError,
		Progression:          ProgressionGradual,
		Recommend: Recommendation{
			DifficultyMultiplier: 1.0,
			HintFrequency:        1.0,
			ComplexityLimit:      1.0,
		},
		UpdatedAt: time.Now().UTC(),
	}
}

// #endregion defaults

// #region queries

// Experienced reports whether the player has encountered the primitive before.
func (p *Profile) Experienced(primitiveID string) bool {
	if p == nil || p.Experience == nil {
		return false
	}
	exp, ok := p.Experience[primitiveID]
	return ok && exp.Encounters > 0
}

// MasteryOf returns the player's mastery level for a primitive
// (novice when unseen).
func (p *Profile) MasteryOf(primitiveID string) MasteryLevel {
	if p == nil || p.Experience == nil {
		return MasteryNovice
	}
	return p.Experience[primitiveID].Mastery
}

// PrefersTag reports whether the tag is in the preferred set.
func (p *Profile) PrefersTag(tag catalog.Tag) bool {
	if p == nil {
		return false
	}
	for _, t := range p.PreferredTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RecentPerformanceMean returns the mean of the last n performance scores,
// or 0 when none are recorded.
func (p *Profile) RecentPerformanceMean(n int) float64 {
	if p == nil || len(p.RecentPerformance) == 0 {
		return 0
	}
	scores := p.RecentPerformance
	if n > 0 && len(scores) > n {
		scores = scores[len(scores)-n:]
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// #endregion queries

// #region mastery-advance

// Mastery advancement thresholds: encounters and success rate both required.
var masteryThresholds = []struct {
	level      MasteryLevel
	encounters int
	success    float64
}{
	{MasteryMaster, 15, 0.85},
	{MasteryCompetent, 8, 0.70},
	{MasteryLearning, 3, 0.50},
}

// AdvanceMastery returns the mastery level for the given history, never
// lower than current.
func AdvanceMastery(current MasteryLevel, encounters int, successRate float64) MasteryLevel {
	earned := MasteryNovice
	for _, th := range masteryThresholds {
		if encounters >= th.encounters && successRate >= th.success {
			earned = th.level
			break
		}
	}
	if earned < current {
		return current
	}
	return earned
}

// #endregion mastery-advance

// #region record-encounter

// RecordEncounter folds one primitive outcome into an experience record,
// returning the new value. The input is not mutated.
func RecordEncounter(exp PatternExperience, success bool, solveTime float64, curveSample float64, at time.Time) PatternExperience {
	prevCount := float64(exp.Encounters)
	next := exp

	next.Encounters = exp.Encounters + 1
	successVal := 0.0
	if success {
		successVal = 1.0
	}
	next.SuccessRate = (exp.SuccessRate*prevCount + successVal) / float64(next.Encounters)
	next.AvgSolveTime = (exp.AvgSolveTime*prevCount + solveTime) / float64(next.Encounters)
	if exp.Encounters == 0 {
		next.FirstSolveTime = solveTime
	}
	next.LastSolveTime = solveTime
	next.LastSeen = at

	next.RecentResults = appendBounded(exp.RecentResults, success, recentResultsWindow)
	next.Progression = append(append([]float64(nil), exp.Progression...), curveSample)
	next.Mastery = AdvanceMastery(exp.Mastery, next.Encounters, next.SuccessRate)
	return next
}

// RecentSuccessRate returns the success ratio over the bounded recent window.
func (e PatternExperience) RecentSuccessRate() float64 {
	if len(e.RecentResults) == 0 {
		return 0
	}
	wins := 0
	for _, ok := range e.RecentResults {
		if ok {
			wins++
		}
	}
	return float64(wins) / float64(len(e.RecentResults))
}

// #endregion record-encounter

// #region clone

// Clone returns a deep copy so updates never alias historical snapshots.
func (p Profile) Clone() Profile {
	out := p
	out.Experience = make(map[string]PatternExperience, len(p.Experience))
	for id, exp := range p.Experience {
		cp := exp
		cp.RecentResults = append([]bool(nil), exp.RecentResults...)
		cp.Progression = append([]float64(nil), exp.Progression...)
		out.Experience[id] = cp
	}
	out.TagSuccess = make(map[catalog.Tag]TagStat, len(p.TagSuccess))
	for tag, st := range p.TagSuccess {
		out.TagSuccess[tag] = st
	}
	out.PreferredTags = append([]catalog.Tag(nil), p.PreferredTags...)
	out.StrongTags = append([]catalog.Tag(nil), p.StrongTags...)
	out.WeakTags = append([]catalog.Tag(nil), p.WeakTags...)
	out.RecentPerformance = append([]float64(nil), p.RecentPerformance...)
	out.LearningCurve = append([]float64(nil), p.LearningCurve...)
	out.EngagementHistory = append([]float64(nil), p.EngagementHistory...)
	return out
}

// #endregion clone

// #region helpers

func appendBounded[T any](s []T, v T, max int) []T {
	out := append(append([]T(nil), s...), v)
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// AppendPerformance appends a performance score to the bounded recent window.
func AppendPerformance(scores []float64, v float64) []float64 {
	return appendBounded(scores, v, recentPerfWindow)
}

// AppendCurveSample appends a session learning-curve sample to the bounded window.
func AppendCurveSample(samples []float64, v float64) []float64 {
	return appendBounded(samples, v, learningCurveWindow)
}

// AppendEngagement appends a session engagement score to the bounded window.
func AppendEngagement(samples []float64, v float64) []float64 {
	return appendBounded(samples, v, engagementWindow)
}

// #endregion helpers
