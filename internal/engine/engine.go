// Package engine is the composition root: it wires the catalog, generator,
// collector, event bus, and storage into one explicitly constructed object.
// Nothing here is a singleton; hosts may run several engines side by side.
package engine

import (
	"fmt"
	"log"

	"github.com/danielpatrickdp/stagecraft/internal/bus"
	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/collector"
	"github.com/danielpatrickdp/stagecraft/internal/config"
	"github.com/danielpatrickdp/stagecraft/internal/generator"
	"github.com/danielpatrickdp/stagecraft/internal/insight"
	"github.com/danielpatrickdp/stagecraft/internal/logging"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
	"github.com/danielpatrickdp/stagecraft/internal/storage"
)

// #region engine

// Engine owns one catalog, one generator, one collector, and one store.
type Engine struct {
	Catalog   *catalog.Catalog
	Generator *generator.Generator
	Collector *collector.Collector
	Bus       *bus.Bus
	Store     *storage.Store // optional; nil disables persistence
}

// New builds an engine from configuration. The catalog is the builtin set
// plus an optional pack file; stored learning data is rehydrated when a
// store is opened.
func New(cfg config.EngineConfig, store *storage.Store) (*Engine, error) {
	cat, err := catalog.BuiltinWithPack(cfg.CatalogPack)
	if err != nil {
		return nil, err
	}

	events := bus.New()
	gen, err := generator.New(cat, cfg.Generator, events)
	if err != nil {
		return nil, err
	}
	coll := collector.New(cfg.Collector, cfg.Insight, events)

	if store != nil {
		data, err := store.LoadAll()
		if err != nil {
			return nil, fmt.Errorf("engine: load learning data: %w", err)
		}
		coll.SeedProfiles(data.Profiles)
	}

	return &Engine{
		Catalog:   cat,
		Generator: gen,
		Collector: coll,
		Bus:       events,
		Store:     store,
	}, nil
}

// #endregion engine

// #region generate-stage

// GenerateStage produces the pattern for a player's stage attempt using the
// player's current profile snapshot, and records provenance. Persistence
// failures are logged, never allowed to fail generation.
func (e *Engine) GenerateStage(playerID string, stage int, seed int64) (generator.Result, error) {
	var snapshot *profile.Profile
	if p, ok := e.Collector.Profile(playerID); ok {
		snapshot = &p
	}

	result, err := e.Generator.Generate(stage, snapshot, seed)
	if err != nil {
		return generator.Result{}, err
	}

	if e.Store != nil {
		entry := logging.GenerationEntry{
			PatternID:     result.Pattern.ID,
			StageNumber:   stage,
			Seed:          seed,
			PlayerID:      playerID,
			Budget:        result.Budget,
			PrimitiveIDs:  result.Pattern.PrimitiveIDs(),
			Repaired:      result.Repairs.Repaired(),
			RepairActions: result.Repairs.Actions,
		}
		if err := logging.LogGeneration(e.Store.DB(), entry); err != nil {
			log.Printf("engine: generation log failed: %v", err)
		}
	}
	return result, nil
}

// #endregion generate-stage

// #region finish-session

// FinishSession ends the active session and saves all learning data. A save
// failure is reported to the caller for retry but the finalized session and
// updated profile remain authoritative in memory.
func (e *Engine) FinishSession() (collector.Session, []insight.Insight, error) {
	session, insights, err := e.Collector.EndSession()
	if err != nil {
		return collector.Session{}, nil, err
	}

	if e.Store != nil {
		saveErr := e.Store.SaveAll(e.Collector.Profiles(), []collector.Session{session}, insights)
		if saveErr != nil {
			log.Printf("engine: save learning data failed: %v", saveErr)
			return session, insights, fmt.Errorf("engine: session %s finalized but not persisted: %w", session.ID, saveErr)
		}
	}
	return session, insights, nil
}

// #endregion finish-session
