// Package sensitivity ranks factors by structural influence and
// finite-difference leverage, characterizes output uncertainty through
// Monte Carlo perturbation trials, validates projected series against
// observed outcomes, and searches force strengths for the score optimum.
// The Monte Carlo stage is the only place randomness enters the engine.
package sensitivity

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/integrator"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ============================================================================
// Interface
// ============================================================================

// Output aggregates the sensitivity stage results.
type Output struct {
	DominantFactors []strategy.DominantFactor
	LeveragePoints  []strategy.LeveragePoint
	MonteCarlo      *strategy.MonteCarloSummary
}

// Analyzer quantifies which factors matter and how uncertain the integrated
// score is.
type Analyzer interface {
	// DominantFactors ranks all factors by structural influence, descending.
	DominantFactors(set *factor.Set, comp *frameworkops.CompetitiveResult) []strategy.DominantFactor

	// Leverage perturbs each factor by the configured fraction and ranks
	// the resulting finite-difference sensitivities.  The extended score map
	// must match the one that produced base, so perturbed rescoring differs
	// from the base run only by the perturbation itself.
	Leverage(ctx context.Context, set *factor.Set, base *integrator.Result, comp *frameworkops.CompetitiveResult, extended map[strategy.Framework]float64) ([]strategy.LeveragePoint, error)

	// MonteCarlo runs the randomized perturbation trials, rescoring every
	// trial with the same extended score map as the base run.
	MonteCarlo(ctx context.Context, set *factor.Set, extended map[strategy.Framework]float64) (*strategy.MonteCarloSummary, error)

	// OptimizeForceStrengths searches force strengths for the score optimum.
	OptimizeForceStrengths(ctx context.Context, set *factor.Set) (*strategy.OptimizationResult, error)

	// Analyze runs all three over one factor population.
	Analyze(ctx context.Context, set *factor.Set, ops *frameworkops.Result, base *integrator.Result, extended map[strategy.Framework]float64) (*Output, error)
}

// ============================================================================
// Implementation
// ============================================================================

var _ Analyzer = (*analyzerImpl)(nil)

type analyzerImpl struct {
	cfg     *config.SensitivityConfig
	ops     frameworkops.Operators
	integ   integrator.Integrator
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewAnalyzer creates the sensitivity stage.  The operator and integrator
// stages are injected so perturbed populations are rescored through exactly
// the same path as the base run.
func NewAnalyzer(
	cfg *config.SensitivityConfig,
	ops frameworkops.Operators,
	integ integrator.Integrator,
	logger logging.Logger,
	metrics common.AnalysisMetrics,
) (Analyzer, error) {
	if cfg == nil {
		return nil, errors.NewInvalidInput("sensitivity config is required")
	}
	if ops == nil {
		return nil, errors.NewInvalidInput("framework operators are required")
	}
	if integ == nil {
		return nil, errors.NewInvalidInput("integrator is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = common.NewNoopAnalysisMetrics()
	}
	return &analyzerImpl{cfg: cfg, ops: ops, integ: integ, logger: logger, metrics: metrics}, nil
}

// Analyze implements Analyzer.
func (a *analyzerImpl) Analyze(ctx context.Context, set *factor.Set, ops *frameworkops.Result, base *integrator.Result, extended map[strategy.Framework]float64) (*Output, error) {
	if set == nil || ops == nil || base == nil {
		return nil, errors.New(errors.ErrCodeAnalysisInput, "sensitivity analysis requires factors, operator result, and base score")
	}
	start := time.Now()

	leverage, err := a.Leverage(ctx, set, base, ops.Competitive, extended)
	if err != nil {
		return nil, err
	}
	mc, err := a.MonteCarlo(ctx, set, extended)
	if err != nil {
		return nil, err
	}

	out := &Output{
		DominantFactors: a.DominantFactors(set, ops.Competitive),
		LeveragePoints:  leverage,
		MonteCarlo:      mc,
	}
	a.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageSensitivity,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		Success:    true,
		ItemCount:  len(out.LeveragePoints),
	})
	return out, nil
}

// ============================================================================
// Dominant-factor ranking
// ============================================================================

// DominantFactors implements the structural ranking: competitive nodes by
// |eigen-component × eigenvalue|, environmental factors by |weight×impact|,
// capability elements by impact magnitude, all merged and sorted descending.
func (a *analyzerImpl) DominantFactors(set *factor.Set, comp *frameworkops.CompetitiveResult) []strategy.DominantFactor {
	var out []strategy.DominantFactor

	for _, f := range set.Environmental {
		out = append(out, strategy.DominantFactor{
			FactorID:  f.ID,
			Name:      f.Description,
			Framework: strategy.FrameworkEnvironmental,
			Score:     math.Abs(f.Weight * f.Impact),
		})
	}

	if comp != nil {
		for _, n := range set.Forces {
			out = append(out, strategy.DominantFactor{
				FactorID:  string(n.Force),
				Name:      string(n.Force),
				Framework: strategy.FrameworkCompetitive,
				Score:     math.Abs(comp.Centrality[n.Force] * comp.Eigenvalue),
			})
		}
	}

	for _, e := range set.Capabilities {
		out = append(out, strategy.DominantFactor{
			FactorID:  e.ID,
			Name:      e.Description,
			Framework: strategy.FrameworkCapability,
			Score:     math.Abs(e.SignedImpact()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FactorID < out[j].FactorID
	})
	return out
}

// ============================================================================
// Leverage scoring
// ============================================================================

// Leverage implements the one-factor-at-a-time finite difference: each
// factor's magnitude attribute is bumped by the configured fraction, the
// pipeline is rescored, and the normalized score shift is combined with the
// factor's eigen-centrality into a composite leverage score.
func (a *analyzerImpl) Leverage(ctx context.Context, set *factor.Set, base *integrator.Result, comp *frameworkops.CompetitiveResult, extended map[strategy.Framework]float64) ([]strategy.LeveragePoint, error) {
	var points []strategy.LeveragePoint

	for i, f := range set.Environmental {
		perturbed := cloneSet(set)
		perturbed.Environmental[i].Weight = clampRange(f.Weight*(1+a.cfg.Perturbation), 1, 10)
		sens, err := a.scoreShift(ctx, perturbed, base.Integrated, extended)
		if err != nil {
			return nil, err
		}
		points = append(points, strategy.LeveragePoint{
			FactorID:    f.ID,
			Framework:   strategy.FrameworkEnvironmental,
			Sensitivity: sens,
			Leverage:    math.Abs(sens),
		})
	}

	for i, n := range set.Forces {
		perturbed := cloneSet(set)
		perturbed.Forces[i].Strength = clampRange(n.Strength*(1+a.cfg.Perturbation), 1, 10)
		sens, err := a.scoreShift(ctx, perturbed, base.Integrated, extended)
		if err != nil {
			return nil, err
		}
		centrality := 0.0
		if comp != nil {
			centrality = comp.Centrality[n.Force]
		}
		points = append(points, strategy.LeveragePoint{
			FactorID:    string(n.Force),
			Framework:   strategy.FrameworkCompetitive,
			Sensitivity: sens,
			Centrality:  centrality,
			Leverage:    math.Abs(sens) * (1 + centrality),
		})
	}

	for i, e := range set.Capabilities {
		perturbed := cloneSet(set)
		perturbed.Capabilities[i].Impact = clampRange(e.Impact*(1+a.cfg.Perturbation), 1, 10)
		sens, err := a.scoreShift(ctx, perturbed, base.Integrated, extended)
		if err != nil {
			return nil, err
		}
		points = append(points, strategy.LeveragePoint{
			FactorID:    e.ID,
			Framework:   strategy.FrameworkCapability,
			Sensitivity: sens,
			Leverage:    math.Abs(sens),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Leverage != points[j].Leverage {
			return points[i].Leverage > points[j].Leverage
		}
		return points[i].FactorID < points[j].FactorID
	})
	if len(points) > a.cfg.TopLeverage {
		points = points[:a.cfg.TopLeverage]
	}
	return points, nil
}

// scoreShift rescores a perturbed population and returns the normalized
// difference from the base integrated score.
func (a *analyzerImpl) scoreShift(ctx context.Context, perturbed *factor.Set, baseScore float64, extended map[strategy.Framework]float64) (float64, error) {
	score, err := a.evaluate(ctx, perturbed, extended)
	if err != nil {
		return 0, err
	}
	return (score - baseScore) / a.cfg.Perturbation, nil
}

// evaluate rescores a factor population through the operator and integration
// stages.  extended must be the same map the base run used: leaving it out
// would shift every rescored value by the extended coupling terms and turn
// the finite differences into offsets of that shift.
func (a *analyzerImpl) evaluate(ctx context.Context, set *factor.Set, extended map[strategy.Framework]float64) (float64, error) {
	opsRes, err := a.ops.Apply(ctx, set)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeAnalysisFailed, "operator rescoring failed")
	}
	integRes, err := a.integ.Integrate(ctx, opsRes, extended)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeAnalysisFailed, "integration rescoring failed")
	}
	return integRes.Integrated, nil
}

// ============================================================================
// helpers
// ============================================================================

// cloneSet deep-copies a factor population so perturbations never leak into
// the caller's data.
func cloneSet(s *factor.Set) *factor.Set {
	out := &factor.Set{
		Environmental: make([]*factor.EnvironmentalFactor, len(s.Environmental)),
		Forces:        make([]*factor.ForceNode, len(s.Forces)),
		Capabilities:  make([]*factor.CapabilityElement, len(s.Capabilities)),
	}
	for i, f := range s.Environmental {
		cp := *f
		out.Environmental[i] = &cp
	}
	for i, n := range s.Forces {
		cp := *n
		cp.Influence = make(map[factor.Force]float64, len(n.Influence))
		for k, v := range n.Influence {
			cp.Influence[k] = v
		}
		out.Forces[i] = &cp
	}
	for i, e := range s.Capabilities {
		cp := *e
		out.Capabilities[i] = &cp
	}
	return out
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
