// Package config loads engine tuning from an optional config file and
// STAGECRAFT_-prefixed environment variables. Defaults equal the shipped
// constants, so running with no config is always valid.
package config

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/stagecraft/internal/collector"
	"github.com/danielpatrickdp/stagecraft/internal/generator"
	"github.com/danielpatrickdp/stagecraft/internal/insight"
	"github.com/spf13/viper"
)

// #region engine-config

// EngineConfig bundles every tunable of the engine.
type EngineConfig struct {
	DBPath      string
	CatalogPack string // optional YAML primitive pack layered over the builtin catalog
	Generator   generator.Config
	Collector   collector.Config
	Insight     insight.Config
}

// Default returns the shipped configuration.
func Default() EngineConfig {
	return EngineConfig{
		DBPath:    "stagecraft.db",
		Generator: generator.DefaultConfig(),
		Collector: collector.DefaultConfig(),
		Insight:   insight.DefaultConfig(),
	}
}

// #endregion engine-config

// #region load

// Load reads configuration from the given file (empty path = defaults plus
// environment only). Unknown keys are ignored; missing keys keep defaults.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("STAGECRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg.DBPath = v.GetString("db_path")
	cfg.CatalogPack = v.GetString("catalog_pack")

	cfg.Generator.Personalize.MinMultiplier = v.GetFloat64("personalize.min_multiplier")
	cfg.Generator.Personalize.MaxMultiplier = v.GetFloat64("personalize.max_multiplier")
	cfg.Generator.Personalize.NewPlayerFactor = v.GetFloat64("personalize.new_player_factor")
	cfg.Generator.Personalize.ComplexityBaseline = v.GetFloat64("personalize.complexity_baseline")

	cfg.Generator.Selector.LearnabilityWeight = v.GetFloat64("selector.learnability_weight")
	cfg.Generator.Selector.NoveltyWeight = v.GetFloat64("selector.novelty_weight")
	cfg.Generator.Selector.PreferenceBonus = v.GetFloat64("selector.preference_bonus")

	cfg.Generator.Validator.NewPlayerFloor = v.GetFloat64("validator.new_player_floor")
	cfg.Generator.Validator.ExperiencedFloor = v.GetFloat64("validator.experienced_floor")
	cfg.Generator.Validator.DefaultComplexity = v.GetFloat64("validator.default_complexity")

	cfg.Collector.HistoryLimit = v.GetInt("collector.history_limit")
	cfg.Collector.MinSessionsForInsights = v.GetInt("collector.min_sessions_for_insights")

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg EngineConfig) {
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("catalog_pack", cfg.CatalogPack)

	v.SetDefault("personalize.min_multiplier", cfg.Generator.Personalize.MinMultiplier)
	v.SetDefault("personalize.max_multiplier", cfg.Generator.Personalize.MaxMultiplier)
	v.SetDefault("personalize.new_player_factor", cfg.Generator.Personalize.NewPlayerFactor)
	v.SetDefault("personalize.complexity_baseline", cfg.Generator.Personalize.ComplexityBaseline)

	v.SetDefault("selector.learnability_weight", cfg.Generator.Selector.LearnabilityWeight)
	v.SetDefault("selector.novelty_weight", cfg.Generator.Selector.NoveltyWeight)
	v.SetDefault("selector.preference_bonus", cfg.Generator.Selector.PreferenceBonus)

	v.SetDefault("validator.new_player_floor", cfg.Generator.Validator.NewPlayerFloor)
	v.SetDefault("validator.experienced_floor", cfg.Generator.Validator.ExperiencedFloor)
	v.SetDefault("validator.default_complexity", cfg.Generator.Validator.DefaultComplexity)

	v.SetDefault("collector.history_limit", cfg.Collector.HistoryLimit)
	v.SetDefault("collector.min_sessions_for_insights", cfg.Collector.MinSessionsForInsights)
}

// #endregion load

// #region validate

func validate(cfg EngineConfig) error {
	p := cfg.Generator.Personalize
	if p.MinMultiplier <= 0 || p.MaxMultiplier < p.MinMultiplier {
		return fmt.Errorf("config: personalize multipliers invalid: min=%.2f max=%.2f", p.MinMultiplier, p.MaxMultiplier)
	}
	va := cfg.Generator.Validator
	if va.NewPlayerFloor < 0 || va.NewPlayerFloor > 1 || va.ExperiencedFloor < 0 || va.ExperiencedFloor > 1 {
		return fmt.Errorf("config: validator floors outside [0,1]")
	}
	if cfg.Collector.HistoryLimit <= 0 {
		return fmt.Errorf("config: collector history limit must be positive")
	}
	return nil
}

// #endregion validate
