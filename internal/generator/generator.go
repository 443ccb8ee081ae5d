// Package generator runs the full stage-pattern pipeline: requirement →
// personalization → selection → validation → assembly. Generation is a pure
// function of (stage, profile snapshot, seed) over a frozen catalog; the
// seed drives a local PRNG, never ambient randomness, so any shipped stage
// can be regenerated bit-identically for debugging or A/B comparison.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/danielpatrickdp/stagecraft/internal/bus"
	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/personalize"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
	"github.com/danielpatrickdp/stagecraft/internal/requirement"
	"github.com/danielpatrickdp/stagecraft/internal/selector"
	"github.com/danielpatrickdp/stagecraft/internal/validator"
)

// #region config

// Config bundles the tuning knobs of every pipeline stage.
type Config struct {
	Personalize personalize.Config
	Selector    selector.Config
	Validator   validator.Config
}

// DefaultConfig returns the shipped pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Personalize: personalize.DefaultConfig(),
		Selector:    selector.DefaultConfig(),
		Validator:   validator.DefaultConfig(),
	}
}

// #endregion config

// #region generator

// Generator owns the generation pipeline over one frozen catalog.
type Generator struct {
	catalog   *catalog.Catalog
	adjuster  *personalize.Adjuster
	selector  *selector.Selector
	validator *validator.Validator
	bus       *bus.Bus // optional; nil publishes nothing
}

// New wires the pipeline stages. events may be nil.
func New(cat *catalog.Catalog, config Config, events *bus.Bus) (*Generator, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("generator: %w", catalog.ErrEmptyCatalog)
	}
	return &Generator{
		catalog:   cat,
		adjuster:  personalize.NewAdjuster(config.Personalize),
		selector:  selector.NewSelector(cat, config.Selector),
		validator: validator.NewValidator(cat, config.Validator),
		bus:       events,
	}, nil
}

// #endregion generator

// #region result

// Result pairs the generated pattern with the requirement it was built for
// and the validator's repair report.
type Result struct {
	Pattern     StagePattern
	Requirement requirement.StageRequirement
	Budget      float64 // personalized difficulty the selector worked under
	Repairs     validator.Report
}

// #endregion result

// #region generate

// Generate produces the stage pattern for one stage attempt. profile may be
// nil for a new player. Selection shortfalls are repaired internally; the
// only failures are a non-positive stage number or an empty catalog.
func (g *Generator) Generate(stage int, p *profile.Profile, seed int64) (Result, error) {
	req, err := requirement.Calculate(stage)
	if err != nil {
		return Result{}, err
	}

	budget := g.adjuster.Adjust(req.TargetDifficulty, p)
	rng := rand.New(rand.NewSource(seed))

	selection := g.selector.Select(budget, p, req, rng)
	selection, repairs, err := g.validator.Validate(selection, p)
	if err != nil {
		return Result{}, err
	}

	pattern := assemble(stage, seed, selection)
	result := Result{Pattern: pattern, Requirement: req, Budget: budget, Repairs: repairs}

	g.bus.Publish(bus.TopicPatternGenerated, pattern)
	return result, nil
}

// #endregion generate

// #region assemble

// assemble packages a validated, non-empty primitive list into an immutable
// descriptor. The identifier is deterministic: stage number plus a seed
// fragment.
func assemble(stage int, seed int64, selection []catalog.Primitive) StagePattern {
	var total float64
	for _, prim := range selection {
		total += prim.BaseDifficulty
	}
	return StagePattern{
		ID:                    fmt.Sprintf("stage-%d-%08x", stage, uint32(uint64(seed))),
		StageNumber:           stage,
		Primitives:            append([]catalog.Primitive(nil), selection...),
		TotalDifficulty:       total,
		TotalLearnability:     validator.MeanLearnability(selection),
		CombinationComplexity: validator.Complexity(selection),
		Seed:                  seed,
	}
}

// #endregion assemble
