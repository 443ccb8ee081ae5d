package personalize

import "github.com/danielpatrickdp/stagecraft/internal/profile"

// #region config

// Config holds the bounds of each personalization factor.
type Config struct {
	MinMultiplier       float64 // hard floor on total adjustment (default 0.5)
	MaxMultiplier       float64 // hard ceiling on total adjustment (default 1.5)
	NewPlayerFactor     float64 // flat reduction for players with no profile
	ComplexityBaseline  float64 // maxHandledComplexity considered neutral
	ComplexityFactorCap float64
	RecentWindow        int // performance samples considered recent
}

// DefaultConfig returns the shipped personalization bounds.
func DefaultConfig() Config {
	return Config{
		MinMultiplier:       0.5,
		MaxMultiplier:       1.5,
		NewPlayerFactor:     0.8,
		ComplexityBaseline:  3.0,
		ComplexityFactorCap: 1.5,
		RecentWindow:        10,
	}
}

// #endregion config

// #region adjuster

// Adjuster converts a base stage difficulty into a player-specific target.
type Adjuster struct {
	config Config
}

// NewAdjuster creates an Adjuster with the given bounds.
func NewAdjuster(config Config) *Adjuster {
	return &Adjuster{config: config}
}

// Adjust multiplies the base difficulty by three independent factors and
// clamps the result to [MinMultiplier, MaxMultiplier] × base. The clamp is a
// hard safety invariant: no profile, however extreme, may produce an
// unplayable or trivial stage. A nil profile gets the flat new-player factor.
func (a *Adjuster) Adjust(base float64, p *profile.Profile) float64 {
	if p == nil {
		return base * a.config.NewPlayerFactor
	}

	adjusted := base *
		a.adaptabilityFactor(p) *
		a.complexityFactor(p) *
		a.recentPerformanceFactor(p)

	if min := base * a.config.MinMultiplier; adjusted < min {
		return min
	}
	if max := base * a.config.MaxMultiplier; adjusted > max {
		return max
	}
	return adjusted
}

// #endregion adjuster

// #region factors

// adaptabilityFactor maps adaptability 0..1 into 0.7..1.3.
func (a *Adjuster) adaptabilityFactor(p *profile.Profile) float64 {
	return 0.7 + 0.6*clamp01(p.AdaptabilityScore)
}

// complexityFactor scales by demonstrated complexity ceiling relative to the
// baseline, capped so one strong stat cannot dominate.
func (a *Adjuster) complexityFactor(p *profile.Profile) float64 {
	if a.config.ComplexityBaseline <= 0 {
		return 1.0
	}
	factor := p.MaxHandledComplexity / a.config.ComplexityBaseline
	if factor < 0 {
		factor = 0
	}
	if factor > a.config.ComplexityFactorCap {
		factor = a.config.ComplexityFactorCap
	}
	return factor
}

// recentPerformanceFactor maps mean recent performance 0..1 into 0.8..1.2.
// Players with no recorded performance stay neutral.
func (a *Adjuster) recentPerformanceFactor(p *profile.Profile) float64 {
	if len(p.RecentPerformance) == 0 {
		return 1.0
	}
	mean := p.RecentPerformanceMean(a.config.RecentWindow)
	return 0.8 + 0.4*clamp01(mean)
}

// #endregion factors

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
