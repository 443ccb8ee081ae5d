package selector

import (
	"math/rand"
	"sort"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
	"github.com/danielpatrickdp/stagecraft/internal/requirement"
)

// #region selector

// Selector picks a primitive combination under a depletable difficulty
// budget, scored by learnability, novelty, experience, and tag preference.
type Selector struct {
	catalog *catalog.Catalog
	config  Config
}

// NewSelector creates a Selector over a frozen catalog.
func NewSelector(cat *catalog.Catalog, config Config) *Selector {
	return &Selector{catalog: cat, config: config}
}

// #endregion selector

// #region select

// Select greedily walks scored candidates in descending order, accepting a
// candidate only while it fits the remaining budget and passes combination
// validation against the already-accepted set. An empty result is a
// selection shortfall, not an error; the validator repairs it.
//
// rng drives tie-breaking only (pre-sort shuffle before the stable sort),
// so identical (budget, profile, seed) inputs yield identical output.
func (s *Selector) Select(budget float64, p *profile.Profile, req requirement.StageRequirement, rng *rand.Rand) []catalog.Primitive {
	candidates := s.filterCandidates(p)
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]scoredPrimitive, 0, len(candidates))
	for _, cand := range candidates {
		scored = append(scored, scoredPrimitive{
			primitive: cand,
			score:     s.score(cand, p),
		})
	}

	// Shuffle first, then stable-sort: equal scores land in seed-determined
	// order instead of catalog order.
	rng.Shuffle(len(scored), func(i, j int) {
		scored[i], scored[j] = scored[j], scored[i]
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var selected []catalog.Primitive
	remaining := budget
	for _, cand := range scored {
		if len(selected) >= req.MaxPatterns {
			break
		}
		if cand.primitive.BaseDifficulty > remaining {
			continue
		}
		if !ValidCombination(selected, cand.primitive) {
			continue
		}
		selected = append(selected, cand.primitive)
		remaining -= cand.primitive.BaseDifficulty
		if remaining <= 0 {
			break
		}
	}
	return selected
}

type scoredPrimitive struct {
	primitive catalog.Primitive
	score     float64
}

// #endregion select

// #region filter

// filterCandidates applies the player-specific learnability bar. Unseen
// primitives must clear `base − slope×adaptability`; anything the player has
// already handled qualifies regardless of learnability. Unmet prerequisites
// filter a candidate out here, advisory only (never re-checked during repair).
func (s *Selector) filterCandidates(p *profile.Profile) []catalog.Primitive {
	adaptability := 0.0
	if p != nil {
		adaptability = p.AdaptabilityScore
	}
	bar := s.config.UnseenBarBase - s.config.UnseenBarSlope*adaptability

	var out []catalog.Primitive
	for _, cand := range s.catalog.All() {
		if p.Experienced(cand.ID) {
			out = append(out, cand)
			continue
		}
		if cand.Learnability < bar {
			continue
		}
		if !s.prerequisitesMet(cand, p) {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// prerequisitesMet checks that every required primitive has been encountered.
func (s *Selector) prerequisitesMet(cand catalog.Primitive, p *profile.Profile) bool {
	for _, id := range cand.Spawn.RequiredPrimitives {
		if !p.Experienced(id) {
			return false
		}
	}
	return true
}

// #endregion filter

// #region score

// score ranks a candidate for this player. Novel primitives earn an
// experience bonus proportional to adaptability; familiar ones earn it by
// mastery level.
func (s *Selector) score(cand catalog.Primitive, p *profile.Profile) float64 {
	score := s.config.LearnabilityWeight*cand.Learnability +
		s.config.NoveltyWeight*s.config.NoveltyBias*cand.Novelty

	if p != nil {
		if p.Experienced(cand.ID) {
			score += masteryBonus[p.MasteryOf(cand.ID)]
		} else {
			score += s.config.AdaptabilityBonus * p.AdaptabilityScore
		}
		for _, tag := range cand.Tags {
			if p.PrefersTag(tag) {
				score += s.config.PreferenceBonus
			}
		}
	}
	return score
}

// #endregion score

// #region combination

// ValidCombination reports whether candidate may join the accepted set:
// no accepted primitive's tags may appear in the candidate's forbidden set
// (and vice versa), and accepting must not exceed the candidate's own
// max-simultaneous count for primitives sharing its tags.
func ValidCombination(accepted []catalog.Primitive, candidate catalog.Primitive) bool {
	for _, prior := range accepted {
		if tagsIntersect(prior.Tags, candidate.Spawn.ForbiddenWithTags) {
			return false
		}
		if tagsIntersect(candidate.Tags, prior.Spawn.ForbiddenWithTags) {
			return false
		}
	}

	if candidate.Spawn.MaxSimultaneous > 0 {
		related := 1 // the candidate itself
		for _, prior := range accepted {
			if prior.SharesTag(candidate) {
				related++
			}
		}
		if related > candidate.Spawn.MaxSimultaneous {
			return false
		}
	}
	return true
}

func tagsIntersect(a []catalog.Tag, b []catalog.Tag) bool {
	for _, ta := range a {
		for _, tb := range b {
			if ta == tb {
				return true
			}
		}
	}
	return false
}

// #endregion combination
