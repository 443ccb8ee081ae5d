package selector

import "github.com/danielpatrickdp/stagecraft/internal/profile"

// #region config

// Config holds the scoring weights and filter knobs for pattern selection.
type Config struct {
	LearnabilityWeight float64 // weight on candidate learnability (default 40)
	NoveltyWeight      float64 // weight on candidate novelty (default 30)
	NoveltyBias        float64 // multiplier inside the novelty term (default 1.0)
	PreferenceBonus    float64 // flat bonus per matching preferred tag (default 10)
	AdaptabilityBonus  float64 // max bonus for novel primitives at adaptability 1.0 (default 15)

	// Learnability bar for unseen primitives: bar = UnseenBarBase - UnseenBarSlope*adaptability.
	UnseenBarBase  float64 // default 0.6
	UnseenBarSlope float64 // default 0.3
}

// DefaultConfig returns the shipped selection weights.
func DefaultConfig() Config {
	return Config{
		LearnabilityWeight: 40,
		NoveltyWeight:      30,
		NoveltyBias:        1.0,
		PreferenceBonus:    10,
		AdaptabilityBonus:  15,
		UnseenBarBase:      0.6,
		UnseenBarSlope:     0.3,
	}
}

// #endregion config

// #region mastery-bonus

// masteryBonus rewards experienced primitives by demonstrated mastery.
var masteryBonus = map[profile.MasteryLevel]float64{
	profile.MasteryNovice:    5,
	profile.MasteryLearning:  10,
	profile.MasteryCompetent: 18,
	profile.MasteryMaster:    25,
}

// #endregion mastery-bonus
