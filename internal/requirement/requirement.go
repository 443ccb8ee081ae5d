package requirement

import "fmt"

// #region bands

// Band identifies the progression tier a stage number falls into.
type Band string

const (
	BandTutorial Band = "tutorial" // stages 1-9
	BandEarly    Band = "early"    // stages 10-19
	BandMid      Band = "mid"      // stages 20-49
	BandEndgame  Band = "endgame"  // stages 50+
)

// #endregion bands

// #region stage-requirement

// StageRequirement is the target envelope a generated pattern must hit.
type StageRequirement struct {
	StageNumber      int
	Band             Band
	TargetDifficulty float64
	WinRateMin       float64
	WinRateMax       float64
	MinPatterns      int
	MaxPatterns      int
}

// #endregion stage-requirement

// #region calculate

const maxPatternsCap = 3

// Calculate maps a stage number to its requirement envelope. Difficulty
// grows roughly linearly within a band and steps up between bands.
// Non-positive stage numbers are rejected.
func Calculate(stage int) (StageRequirement, error) {
	if stage <= 0 {
		return StageRequirement{}, fmt.Errorf("requirement: stage number %d must be positive", stage)
	}

	req := StageRequirement{StageNumber: stage, MinPatterns: 1}

	switch {
	case stage < 10:
		req.Band = BandTutorial
		req.TargetDifficulty = 1.0 + 0.20*float64(stage-1)
		req.WinRateMin, req.WinRateMax = 0.80, 0.95
	case stage < 20:
		req.Band = BandEarly
		req.TargetDifficulty = 3.0 + 0.18*float64(stage-10)
		req.WinRateMin, req.WinRateMax = 0.70, 0.85
	case stage < 50:
		req.Band = BandMid
		req.TargetDifficulty = 5.5 + 0.10*float64(stage-20)
		req.WinRateMin, req.WinRateMax = 0.55, 0.75
	default:
		req.Band = BandEndgame
		req.TargetDifficulty = 9.0 + 0.05*float64(stage-50)
		req.WinRateMin, req.WinRateMax = 0.40, 0.60
	}

	req.MaxPatterns = 1 + stage/10
	if req.MaxPatterns > maxPatternsCap {
		req.MaxPatterns = maxPatternsCap
	}

	return req, nil
}

// #endregion calculate
