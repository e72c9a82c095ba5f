package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultMaxItemsPerCategory = 5

	DefaultPowerIterations = 100

	DefaultCouplingEnvComp  = 0.3
	DefaultCouplingCompCap  = 0.3
	DefaultCouplingEnvCap   = 0.4
	DefaultInteractionGain  = 1.0
	DefaultDecayLambda      = 0.1
	DefaultTimeHorizon      = 3
	DefaultExtendedCoupling = 0.3

	DefaultPerturbation        = 0.10
	DefaultTopLeverage         = 5
	DefaultMonteCarloTrials    = 1000
	DefaultSeed                = 42
	DefaultOptimizerIterations = 20

	DefaultSimilarityThreshold = 0.5
	DefaultMaxRecommendations  = 7
	DefaultTopFactors          = 5

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsBackend   = "none"
	DefaultMetricsNamespace = "stratfit"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields already set by the caller (non-zero values) are left unchanged so
// that explicit calibration always wins.  It must be called after
// unmarshalling raw config data and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Extraction.MaxItemsPerCategory == 0 {
		cfg.Extraction.MaxItemsPerCategory = DefaultMaxItemsPerCategory
	}

	if cfg.Operators.PowerIterations == 0 {
		cfg.Operators.PowerIterations = DefaultPowerIterations
	}

	if cfg.Integration.CouplingEnvComp == 0 {
		cfg.Integration.CouplingEnvComp = DefaultCouplingEnvComp
	}
	if cfg.Integration.CouplingCompCap == 0 {
		cfg.Integration.CouplingCompCap = DefaultCouplingCompCap
	}
	if cfg.Integration.CouplingEnvCap == 0 {
		cfg.Integration.CouplingEnvCap = DefaultCouplingEnvCap
	}
	if cfg.Integration.InteractionGain == 0 {
		cfg.Integration.InteractionGain = DefaultInteractionGain
	}
	if cfg.Integration.DecayLambda == 0 {
		cfg.Integration.DecayLambda = DefaultDecayLambda
	}
	if cfg.Integration.TimeHorizon == 0 {
		cfg.Integration.TimeHorizon = DefaultTimeHorizon
	}
	if cfg.Integration.ExtendedCoupling == 0 {
		cfg.Integration.ExtendedCoupling = DefaultExtendedCoupling
	}

	if cfg.Sensitivity.Perturbation == 0 {
		cfg.Sensitivity.Perturbation = DefaultPerturbation
	}
	if cfg.Sensitivity.TopLeverage == 0 {
		cfg.Sensitivity.TopLeverage = DefaultTopLeverage
	}
	if cfg.Sensitivity.MonteCarloTrials == 0 {
		cfg.Sensitivity.MonteCarloTrials = DefaultMonteCarloTrials
	}
	if cfg.Sensitivity.Seed == 0 {
		cfg.Sensitivity.Seed = DefaultSeed
	}
	if cfg.Sensitivity.OptimizerIterations == 0 {
		cfg.Sensitivity.OptimizerIterations = DefaultOptimizerIterations
	}

	if cfg.Recommendation.SimilarityThreshold == 0 {
		cfg.Recommendation.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.Recommendation.MaxRecommendations == 0 {
		cfg.Recommendation.MaxRecommendations = DefaultMaxRecommendations
	}
	if cfg.Recommendation.TopFactors == 0 {
		cfg.Recommendation.TopFactors = DefaultTopFactors
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Backend == "" {
		cfg.Metrics.Backend = DefaultMetricsBackend
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Default returns a fully-populated Config carrying the engine defaults.
// It is the calibration used when no config file is supplied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
