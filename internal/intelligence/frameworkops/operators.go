// Package frameworkops implements the three framework operators that reduce
// mined factors to scalar contributions: a weighted probability-impact sum
// over environmental factors, an eigen-centrality reduction of the
// competitive influence graph, and an interaction tensor between internal
// and external capability elements.  Every operator is pure and independent
// of factor ordering beyond floating-point summation order.
package frameworkops

import (
	"context"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ============================================================================
// Interface
// ============================================================================

// Operators turns a factor population into per-framework scalar scores.
type Operators interface {
	// Environmental computes the weighted probability-impact sum Φ_E ∈ [-1,1].
	Environmental(factors []*factor.EnvironmentalFactor) float64

	// Competitive reduces the force influence graph via eigen-centrality.
	Competitive(nodes []*factor.ForceNode) *CompetitiveResult

	// Capability reduces the internal×external interaction tensor.
	Capability(elements []*factor.CapabilityElement) *CapabilityResult

	// Apply runs all three operators over a complete factor set.
	Apply(ctx context.Context, set *factor.Set) (*Result, error)
}

// CompetitiveResult carries the graph reduction plus the structural data the
// sensitivity stage ranks by.
type CompetitiveResult struct {
	// Attractiveness is the industry attractiveness scalar in [0,1];
	// attractiveness falls as influence-weighted force strength rises.
	Attractiveness float64

	// Score is the signed contribution 2·Attractiveness − 1 ∈ [-1,1].
	Score float64

	// Centrality maps each force to its eigen-centrality component.
	Centrality map[factor.Force]float64

	// Eigenvalue is the dominant eigenvalue estimate of the influence matrix.
	Eigenvalue float64

	// Degenerate reports that the iteration collapsed and a uniform
	// fallback was used.
	Degenerate bool
}

// CapabilityResult carries the tensor reduction.
type CapabilityResult struct {
	// Score is the quadrant-aware tensor mean in [-1,1].
	Score float64

	// Tensor is the internal×external interaction matrix.
	Tensor [][]float64

	// Internal and External record the element order backing the tensor axes.
	Internal []*factor.CapabilityElement
	External []*factor.CapabilityElement
}

// Result aggregates all three operator outputs.
type Result struct {
	Environmental float64
	Competitive   *CompetitiveResult
	Capability    *CapabilityResult
}

// Scores flattens the result into the public per-framework score record.
func (r *Result) Scores() strategy.FrameworkScores {
	return strategy.FrameworkScores{
		Environmental: r.Environmental,
		Competitive:   r.Competitive.Score,
		Capability:    r.Capability.Score,
	}
}

// ============================================================================
// Implementation
// ============================================================================

type operatorsImpl struct {
	cfg     *config.OperatorConfig
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewOperators creates the operator stage with the supplied calibration.
func NewOperators(cfg *config.OperatorConfig, logger logging.Logger, metrics common.AnalysisMetrics) (Operators, error) {
	if cfg == nil {
		return nil, errors.NewInvalidInput("operator config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = common.NewNoopAnalysisMetrics()
	}
	return &operatorsImpl{cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Apply implements Operators.
func (o *operatorsImpl) Apply(ctx context.Context, set *factor.Set) (*Result, error) {
	if set == nil || set.Count() == 0 {
		return nil, errors.New(errors.ErrCodeOperatorFailed, "factor set is empty")
	}
	start := time.Now()

	res := &Result{
		Environmental: o.Environmental(set.Environmental),
		Competitive:   o.Competitive(set.Forces),
		Capability:    o.Capability(set.Capabilities),
	}

	if res.Competitive.Degenerate {
		o.metrics.RecordDegradation(ctx, common.StageOperators, "zero_influence_matrix")
	}
	o.logger.Debug("framework operators applied",
		logging.Float64("environmental", res.Environmental),
		logging.Float64("competitive", res.Competitive.Score),
		logging.Float64("capability", res.Capability.Score),
	)
	o.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageOperators,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		Success:    true,
		ItemCount:  set.Count(),
	})
	return res, nil
}
