// Package replay regenerates recorded stage attempts and diffs them against
// expected output. Because generation is deterministic under (seed, catalog,
// profile snapshot), any divergence means the pipeline's behavior changed.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/stagecraft/internal/generator"
)

// #region result

// Result is the outcome of replaying one attempt.
type Result struct {
	Stage   int
	Seed    int64
	Pattern generator.StagePattern
	Match   bool
	Diff    string // empty when Match
}

// Summary aggregates a replay run.
type Summary struct {
	Total      int
	Matches    int
	Mismatches int
}

// #endregion result

// #region replay

// Replay regenerates every attempt in the fixture and compares against the
// expected patterns, in order. Attempts beyond the expected list are
// generated but reported unmatched against nothing (Match true, no diff).
func Replay(f Fixture, config generator.Config) ([]Result, Summary, error) {
	cat, err := f.Catalog()
	if err != nil {
		return nil, Summary{}, err
	}
	gen, err := generator.New(cat, config, nil)
	if err != nil {
		return nil, Summary{}, err
	}

	results := make([]Result, 0, len(f.Attempts))
	var summary Summary

	for i, attempt := range f.Attempts {
		genResult, err := gen.Generate(attempt.Stage, f.Profile, attempt.Seed)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("replay: attempt %d (stage %d): %w", i, attempt.Stage, err)
		}

		res := Result{
			Stage:   attempt.Stage,
			Seed:    attempt.Seed,
			Pattern: genResult.Pattern,
			Match:   true,
		}
		if i < len(f.Expected) {
			res.Match, res.Diff = compare(f.Expected[i], genResult.Pattern)
		}

		summary.Total++
		if res.Match {
			summary.Matches++
		} else {
			summary.Mismatches++
		}
		results = append(results, res)
	}
	return results, summary, nil
}

// compare diffs one expected record against a regenerated pattern.
func compare(want FixtureExpected, got generator.StagePattern) (bool, string) {
	if want.PatternID != "" && want.PatternID != got.ID {
		return false, fmt.Sprintf("pattern id: want %s, got %s", want.PatternID, got.ID)
	}
	gotIDs := got.PrimitiveIDs()
	if len(want.PrimitiveIDs) != len(gotIDs) {
		return false, fmt.Sprintf("primitive count: want %d, got %d", len(want.PrimitiveIDs), len(gotIDs))
	}
	for i := range want.PrimitiveIDs {
		if want.PrimitiveIDs[i] != gotIDs[i] {
			return false, fmt.Sprintf("primitive %d: want %s, got %s", i, want.PrimitiveIDs[i], gotIDs[i])
		}
	}
	if want.TotalDifficulty != got.TotalDifficulty {
		return false, fmt.Sprintf("total difficulty: want %.4f, got %.4f", want.TotalDifficulty, got.TotalDifficulty)
	}
	return true, ""
}

// #endregion replay
