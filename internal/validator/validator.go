package validator

import (
	"fmt"
	"sort"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
)

// #region config

// Config holds the post-selection safety thresholds.
type Config struct {
	NewPlayerFloor    float64 // minimum mean learnability with no profile (default 0.7)
	ExperiencedFloor  float64 // minimum mean learnability otherwise (default 0.3)
	DefaultComplexity float64 // complexity ceiling with no profile (default 3.0)

	// Learnability-swap acceptance: replacement must beat the replaced
	// primitive by at least MinLearnabilityGain and cost at most
	// MaxDifficultyRatio of its difficulty.
	MinLearnabilityGain float64 // default 0.1
	MaxDifficultyRatio  float64 // default 1.2
}

// DefaultConfig returns the shipped validation thresholds.
func DefaultConfig() Config {
	return Config{
		NewPlayerFloor:      0.7,
		ExperiencedFloor:    0.3,
		DefaultComplexity:   3.0,
		MinLearnabilityGain: 0.1,
		MaxDifficultyRatio:  1.2,
	}
}

// #endregion config

// #region report

// Report records which repair strategies fired, for the generation log.
type Report struct {
	Actions []string
}

func (r *Report) add(format string, args ...any) {
	r.Actions = append(r.Actions, fmt.Sprintf(format, args...))
}

// Repaired reports whether any repair fired.
func (r Report) Repaired() bool {
	return len(r.Actions) > 0
}

// #endregion report

// #region validator

// Validator is the post-selection safety net: it guarantees a non-empty
// selection, a minimum mean learnability, and a bounded combination
// complexity. Repairs are single-pass best effort.
type Validator struct {
	catalog *catalog.Catalog
	config  Config
}

// NewValidator creates a Validator over a frozen catalog.
func NewValidator(cat *catalog.Catalog, config Config) *Validator {
	return &Validator{catalog: cat, config: config}
}

// Validate applies the repair ladder in order: empty-selection fallback,
// learnability-floor swap, complexity-ceiling trim. It always returns at
// least one primitive for a non-empty catalog.
func (v *Validator) Validate(selection []catalog.Primitive, p *profile.Profile) ([]catalog.Primitive, Report, error) {
	var report Report

	if len(selection) == 0 {
		fallback, err := v.catalog.MostLearnable()
		if err != nil {
			return nil, report, err
		}
		selection = []catalog.Primitive{fallback}
		report.add("empty selection: fell back to %q", fallback.ID)
	}

	selection = v.enforceLearnabilityFloor(selection, p, &report)
	selection = v.enforceComplexityCeiling(selection, p, &report)
	return selection, report, nil
}

// #endregion validator

// #region learnability-floor

// enforceLearnabilityFloor swaps out the single lowest-learnability
// primitive when the mean is under the floor. One pass only: a swap that
// still leaves the floor unmet is not retried.
func (v *Validator) enforceLearnabilityFloor(selection []catalog.Primitive, p *profile.Profile, report *Report) []catalog.Primitive {
	floor := v.config.ExperiencedFloor
	if p == nil {
		floor = v.config.NewPlayerFloor
	}
	if MeanLearnability(selection) >= floor {
		return selection
	}

	worstIdx := 0
	for i, prim := range selection {
		if prim.Learnability < selection[worstIdx].Learnability {
			worstIdx = i
		}
	}
	worst := selection[worstIdx]

	if repl, ok := v.findSwap(selection, worst); ok {
		out := replaceAt(selection, worstIdx, repl)
		report.add("learnability floor %.2f: swapped %q for %q", floor, worst.ID, repl.ID)
		return out
	}

	// Fallback: the most learnable catalog primitive, but only when the
	// swap strictly raises the mean.
	best, err := v.catalog.MostLearnable()
	if err == nil && !contains(selection, best.ID) {
		out := replaceAt(selection, worstIdx, best)
		if MeanLearnability(out) > MeanLearnability(selection) {
			report.add("learnability floor %.2f: forced %q in for %q", floor, best.ID, worst.ID)
			return out
		}
	}
	return selection
}

// findSwap looks for an unselected primitive with strictly higher
// learnability (by the configured margin) and comparable-or-lower difficulty.
func (v *Validator) findSwap(selection []catalog.Primitive, worst catalog.Primitive) (catalog.Primitive, bool) {
	for _, cand := range v.catalog.SortedByLearnability() {
		if contains(selection, cand.ID) {
			continue
		}
		if cand.Learnability < worst.Learnability+v.config.MinLearnabilityGain {
			continue
		}
		if cand.BaseDifficulty > worst.BaseDifficulty*v.config.MaxDifficultyRatio {
			continue
		}
		return cand, true
	}
	return catalog.Primitive{}, false
}

// #endregion learnability-floor

// #region complexity-ceiling

// enforceComplexityCeiling simplifies an over-complex selection: sort by
// descending learnability, re-accumulate until the next addition would
// exceed the player's ceiling, drop the rest. At least one primitive is
// always kept, even alone over the ceiling.
func (v *Validator) enforceComplexityCeiling(selection []catalog.Primitive, p *profile.Profile, report *Report) []catalog.Primitive {
	ceiling := v.config.DefaultComplexity
	if p != nil && p.MaxHandledComplexity > 0 {
		ceiling = p.MaxHandledComplexity
	}
	if Complexity(selection) <= ceiling {
		return selection
	}

	ordered := append([]catalog.Primitive(nil), selection...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Learnability > ordered[j].Learnability
	})

	kept := []catalog.Primitive{ordered[0]}
	for _, cand := range ordered[1:] {
		if Complexity(append(kept, cand)) > ceiling {
			break
		}
		kept = append(kept, cand)
	}

	if len(kept) < len(selection) {
		report.add("complexity %.2f over ceiling %.2f: trimmed %d -> %d primitives",
			Complexity(selection), ceiling, len(selection), len(kept))
	}
	return kept
}

// #endregion complexity-ceiling

// #region metrics

// Complexity measures how hard a set of primitives is to handle together:
// the difficulty sum plus terms for tag variety and set size.
func Complexity(selection []catalog.Primitive) float64 {
	var difficulty float64
	tags := make(map[catalog.Tag]struct{})
	for _, prim := range selection {
		difficulty += prim.BaseDifficulty
		for _, t := range prim.Tags {
			tags[t] = struct{}{}
		}
	}
	return difficulty + 0.5*float64(len(tags)) + 0.3*float64(len(selection))
}

// MeanLearnability returns the mean learnability of a selection, 0 if empty.
func MeanLearnability(selection []catalog.Primitive) float64 {
	if len(selection) == 0 {
		return 0
	}
	var sum float64
	for _, prim := range selection {
		sum += prim.Learnability
	}
	return sum / float64(len(selection))
}

// #endregion metrics

// #region helpers

func contains(selection []catalog.Primitive, id string) bool {
	for _, prim := range selection {
		if prim.ID == id {
			return true
		}
	}
	return false
}

func replaceAt(selection []catalog.Primitive, idx int, repl catalog.Primitive) []catalog.Primitive {
	out := append([]catalog.Primitive(nil), selection...)
	out[idx] = repl
	return out
}

// #endregion helpers
