// Package config defines all configuration structures for the
// StratFit-Intelligence engine.  No I/O or parsing logic lives here — only
// plain data types and validation.
//
// Every fixed constant of the scoring model (coupling coefficients, temporal
// decay, Monte Carlo trial count, perturbation magnitude, merge threshold,
// power-iteration count) is a named field here rather than an inline literal,
// so calibrations can be tuned and tested side by side.
package config

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ExtractionConfig holds factor-mining tunables.
type ExtractionConfig struct {
	// MaxItemsPerCategory caps how many bullet items are extracted per
	// capability category and per environmental category.
	MaxItemsPerCategory int `mapstructure:"max_items_per_category" json:"max_items_per_category"`
}

// OperatorConfig holds framework-operator tunables.
type OperatorConfig struct {
	// PowerIterations is the fixed iteration count for the eigen-centrality
	// power method over the competitive influence graph.
	PowerIterations int `mapstructure:"power_iterations" json:"power_iterations"`
}

// IntegrationConfig holds the unified-equation coefficients.
type IntegrationConfig struct {
	CouplingEnvComp float64 `mapstructure:"coupling_env_comp" json:"coupling_env_comp"` // environmental ↔ competitive
	CouplingCompCap float64 `mapstructure:"coupling_comp_cap" json:"coupling_comp_cap"` // competitive ↔ capability
	CouplingEnvCap  float64 `mapstructure:"coupling_env_cap" json:"coupling_env_cap"`   // environmental ↔ capability

	// InteractionGain is the β multiplier applied to the summed pairwise
	// coupling terms before normalization.
	InteractionGain float64 `mapstructure:"interaction_gain" json:"interaction_gain"`

	// DecayLambda is the λ in decay(t) = exp(−λ·t).
	DecayLambda float64 `mapstructure:"decay_lambda" json:"decay_lambda"`

	// TimeHorizon is the number of discrete time steps evaluated; the
	// reported integrated score is the mean over these steps.
	TimeHorizon int `mapstructure:"time_horizon" json:"time_horizon"`

	// ExtendedCoupling is the pairwise coefficient used along the extended
	// framework chain (competitive→capability→bcg→ansoff→blue-ocean).
	ExtendedCoupling float64 `mapstructure:"extended_coupling" json:"extended_coupling"`
}

// SensitivityConfig holds sensitivity-analysis and simulation tunables.
type SensitivityConfig struct {
	// Perturbation is the relative weight bump used for finite-difference
	// leverage scoring (0.10 = +10%).
	Perturbation float64 `mapstructure:"perturbation" json:"perturbation"`

	// TopLeverage caps how many leverage points are reported and fed to the
	// recommendation synthesizer.
	TopLeverage int `mapstructure:"top_leverage" json:"top_leverage"`

	// MonteCarloTrials is the number of randomized perturbation trials.
	MonteCarloTrials int `mapstructure:"monte_carlo_trials" json:"monte_carlo_trials"`

	// Seed seeds the simulation's random source.  Runs with the same seed
	// and input are byte-identical.
	Seed int64 `mapstructure:"seed" json:"seed"`

	// VarianceSampling replaces the fixed seed with a time-based one for
	// callers that want run-to-run variance instead of reproducibility.
	VarianceSampling bool `mapstructure:"variance_sampling" json:"variance_sampling"`

	// OptimizerIterations bounds the coordinate-ascent passes of the
	// force-strength optimizer.
	OptimizerIterations int `mapstructure:"optimizer_iterations" json:"optimizer_iterations"`
}

// RecommendationConfig holds synthesis and deduplication tunables.
type RecommendationConfig struct {
	// SimilarityThreshold is the token-overlap ratio above which two
	// recommendations are merged.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" json:"similarity_threshold"`

	// MaxRecommendations bounds the final, ranked list.
	MaxRecommendations int `mapstructure:"max_recommendations" json:"max_recommendations"`

	// TopFactors is how many dominant factors contribute recommendations.
	TopFactors int `mapstructure:"top_factors" json:"top_factors"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level" json:"level"`   // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format" json:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths" json:"output_paths"`
}

// MetricsConfig holds telemetry parameters.
type MetricsConfig struct {
	// Backend selects the AnalysisMetrics implementation:
	// "prometheus" | "memory" | "none".
	Backend string `mapstructure:"backend" json:"backend"`

	// Namespace prefixes every Prometheus metric name.
	Namespace string `mapstructure:"namespace" json:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.
type Config struct {
	Extraction     ExtractionConfig     `mapstructure:"extraction" json:"extraction"`
	Operators      OperatorConfig       `mapstructure:"operators" json:"operators"`
	Integration    IntegrationConfig    `mapstructure:"integration" json:"integration"`
	Sensitivity    SensitivityConfig    `mapstructure:"sensitivity" json:"sensitivity"`
	Recommendation RecommendationConfig `mapstructure:"recommendation" json:"recommendation"`
	Log            LogConfig            `mapstructure:"log" json:"log"`
	Metrics        MetricsConfig        `mapstructure:"metrics" json:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to run an analysis with the calibration.
func (c *Config) Validate() error {
	if c.Extraction.MaxItemsPerCategory < 1 {
		return fmt.Errorf("config: extraction.max_items_per_category must be ≥ 1, got %d", c.Extraction.MaxItemsPerCategory)
	}

	if c.Operators.PowerIterations < 1 {
		return fmt.Errorf("config: operators.power_iterations must be ≥ 1, got %d", c.Operators.PowerIterations)
	}

	for name, v := range map[string]float64{
		"integration.coupling_env_comp": c.Integration.CouplingEnvComp,
		"integration.coupling_comp_cap": c.Integration.CouplingCompCap,
		"integration.coupling_env_cap":  c.Integration.CouplingEnvCap,
		"integration.extended_coupling": c.Integration.ExtendedCoupling,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: %s %.3f is out of range [0, 1]", name, v)
		}
	}
	if c.Integration.DecayLambda <= 0 {
		return fmt.Errorf("config: integration.decay_lambda must be > 0, got %g", c.Integration.DecayLambda)
	}
	if c.Integration.TimeHorizon < 1 {
		return fmt.Errorf("config: integration.time_horizon must be ≥ 1, got %d", c.Integration.TimeHorizon)
	}
	if c.Integration.InteractionGain < 0 {
		return fmt.Errorf("config: integration.interaction_gain must be ≥ 0, got %g", c.Integration.InteractionGain)
	}

	if c.Sensitivity.Perturbation <= 0 || c.Sensitivity.Perturbation > 1 {
		return fmt.Errorf("config: sensitivity.perturbation %.3f is out of range (0, 1]", c.Sensitivity.Perturbation)
	}
	if c.Sensitivity.MonteCarloTrials < 1 {
		return fmt.Errorf("config: sensitivity.monte_carlo_trials must be ≥ 1, got %d", c.Sensitivity.MonteCarloTrials)
	}
	if c.Sensitivity.TopLeverage < 1 {
		return fmt.Errorf("config: sensitivity.top_leverage must be ≥ 1, got %d", c.Sensitivity.TopLeverage)
	}
	if c.Sensitivity.OptimizerIterations < 1 {
		return fmt.Errorf("config: sensitivity.optimizer_iterations must be ≥ 1, got %d", c.Sensitivity.OptimizerIterations)
	}

	if c.Recommendation.SimilarityThreshold <= 0 || c.Recommendation.SimilarityThreshold > 1 {
		return fmt.Errorf("config: recommendation.similarity_threshold %.3f is out of range (0, 1]", c.Recommendation.SimilarityThreshold)
	}
	if c.Recommendation.MaxRecommendations < 1 {
		return fmt.Errorf("config: recommendation.max_recommendations must be ≥ 1, got %d", c.Recommendation.MaxRecommendations)
	}
	if c.Recommendation.TopFactors < 1 {
		return fmt.Errorf("config: recommendation.top_factors must be ≥ 1, got %d", c.Recommendation.TopFactors)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	switch c.Metrics.Backend {
	case "prometheus", "memory", "none":
	default:
		return fmt.Errorf("config: metrics.backend %q is invalid; expected prometheus|memory|none", c.Metrics.Backend)
	}

	return nil
}
