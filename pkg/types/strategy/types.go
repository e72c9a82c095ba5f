// Package strategy defines the public output contract of the strategic
// scoring engine: framework identifiers, score aggregates, uncertainty
// summaries, and recommendations.  These types carry no behaviour beyond
// ranking helpers; all computation lives under internal/intelligence.
package strategy

import (
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// NewID generates a fresh analysis-scoped identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Framework identifies one of the strategic frameworks the engine scores.
type Framework string

const (
	FrameworkEnvironmental Framework = "environmental" // PESTEL
	FrameworkCompetitive   Framework = "competitive"   // five forces
	FrameworkCapability    Framework = "capability"    // SWOT
	FrameworkBCG           Framework = "bcg"
	FrameworkAnsoff        Framework = "ansoff"
	FrameworkBlueOcean     Framework = "blue_ocean"
)

// TimeHorizon classifies when a factor or recommendation takes effect.
type TimeHorizon string

const (
	HorizonShort  TimeHorizon = "short"
	HorizonMedium TimeHorizon = "medium"
	HorizonLong   TimeHorizon = "long"
)

// ResourceIntensity classifies the resource demand of a recommendation.
type ResourceIntensity string

const (
	IntensityLow    ResourceIntensity = "low"
	IntensityMedium ResourceIntensity = "medium"
	IntensityHigh   ResourceIntensity = "high"
)

// ScoreRange documents the value range of the integrated score.
// The engine normalizes through tanh, so the declared range is [-1, 1].
type ScoreRange string

const (
	RangeSigned ScoreRange = "[-1,1]"
)

// FrameworkScores carries the per-framework scalar contributions.
// Extended framework entries are present only when extended inputs were
// supplied with the request.
type FrameworkScores struct {
	Environmental float64               `json:"environmental"`
	Competitive   float64               `json:"competitive"`
	Capability    float64               `json:"capability"`
	Extended      map[Framework]float64 `json:"extended,omitempty"`
}

// TimeStepScore is the integrated score evaluated at one discrete time step.
type TimeStepScore struct {
	Step  int     `json:"step"`
	Score float64 `json:"score"`
}

// DominantFactor is a factor ranked by structural influence.
type DominantFactor struct {
	FactorID  string    `json:"factor_id"`
	Name      string    `json:"name"`
	Framework Framework `json:"framework"`
	Score     float64   `json:"score"`
}

// LeveragePoint is a factor ranked by its finite-difference effect on the
// integrated score, combined with its structural centrality.
type LeveragePoint struct {
	FactorID    string    `json:"factor_id"`
	Framework   Framework `json:"framework"`
	Leverage    float64   `json:"leverage"`
	Sensitivity float64   `json:"sensitivity"`
	Centrality  float64   `json:"centrality"`
}

// MonteCarloSummary characterizes the output distribution of the randomized
// perturbation trials.
type MonteCarloSummary struct {
	Trials int     `json:"trials"`
	Seed   int64   `json:"seed"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Lower  float64 `json:"lower"` // p05
	Upper  float64 `json:"upper"` // p95
	Worst  float64 `json:"worst"`
	Best   float64 `json:"best"`
}

// Recommendation is a synthesized, prioritized action.  Recommendations are
// created fresh per analysis and never mutated after creation; the
// deduplication merge produces new records rather than editing in place.
type Recommendation struct {
	ID                ID                `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Confidence        float64           `json:"confidence"` // [0,1]
	Impact            float64           `json:"impact"`     // [1,10]
	Horizon           TimeHorizon       `json:"horizon"`
	ResourceIntensity ResourceIntensity `json:"resource_intensity"`
	SupportingFactors []string          `json:"supporting_factors"`
}

// Priority is the ordering key used for the final recommendation ranking.
func (r *Recommendation) Priority() float64 {
	return r.Impact * r.Confidence
}

// ValidationMetrics compares projected score series against observed outcomes.
type ValidationMetrics struct {
	RMSE     float64 `json:"rmse"`
	MAE      float64 `json:"mae"`
	RSquared float64 `json:"r_squared"`
}

// OptimizationResult reports the outcome of force-strength optimization.
type OptimizationResult struct {
	OptimalStrengths map[string]float64 `json:"optimal_strengths"`
	AchievedScore    float64            `json:"achieved_score"`
	Iterations       int                `json:"iterations"`
}

// AnalysisResult is the complete structured output of one engine invocation.
// A human-readable rendering of this structure is the responsibility of an
// external formatting collaborator, not the engine.
type AnalysisResult struct {
	AnalysisID       ID                 `json:"analysis_id"`
	Scores           FrameworkScores    `json:"scores"`
	CouplingEffect   float64            `json:"coupling_effect"`
	IntegratedScore  float64            `json:"integrated_score"`
	ScoreRange       ScoreRange         `json:"score_range"`
	Series           []TimeStepScore    `json:"series"`
	DominantFactors  []DominantFactor   `json:"dominant_factors"`
	LeveragePoints   []LeveragePoint    `json:"leverage_points"`
	MonteCarlo       *MonteCarloSummary `json:"monte_carlo,omitempty"`
	Recommendations  []Recommendation   `json:"recommendations"`
	Degraded         bool               `json:"degraded"`
	DegradedReason   string             `json:"degraded_reason,omitempty"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	EngineVersion    string             `json:"engine_version"`
	AnalyzedAt       time.Time          `json:"analyzed_at"`
}
