// Package integrator combines the per-framework operator scores with fixed
// pairwise coupling coefficients and temporal decay into a single normalized
// strategic score, evaluated over a small discrete time horizon.
package integrator

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ============================================================================
// Interface
// ============================================================================

// Result is the integrated strategic state: per-framework scores, the
// coupling scalar, the normalized headline score, and the per-step series.
type Result struct {
	Scores         strategy.FrameworkScores
	CouplingEffect float64
	Integrated     float64
	Series         []strategy.TimeStepScore
	Couplings      []*CouplingMatrix
}

// Integrator computes the unified strategic score
//
//	S(t) = tanh( (Φ_E+Φ_C+Φ_R)/3 + β·Σ cₖ·Φᵢ·Φⱼ ) · exp(−λ·t)
//
// reported as the mean of S over the configured horizon.  The normalized
// score range is [-1,1].
type Integrator interface {
	Integrate(ctx context.Context, ops *frameworkops.Result, extended map[strategy.Framework]float64) (*Result, error)
}

// ============================================================================
// Implementation
// ============================================================================

type integratorImpl struct {
	cfg     *config.IntegrationConfig
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewIntegrator creates the integration stage with the supplied calibration.
func NewIntegrator(cfg *config.IntegrationConfig, logger logging.Logger, metrics common.AnalysisMetrics) (Integrator, error) {
	if cfg == nil {
		return nil, errors.NewInvalidInput("integration config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = common.NewNoopAnalysisMetrics()
	}
	return &integratorImpl{cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Integrate implements Integrator.
func (g *integratorImpl) Integrate(ctx context.Context, ops *frameworkops.Result, extended map[strategy.Framework]float64) (*Result, error) {
	if ops == nil || ops.Competitive == nil || ops.Capability == nil {
		return nil, errors.New(errors.ErrCodeOperatorFailed, "operator result is incomplete")
	}
	start := time.Now()

	scores := ops.Scores()
	if len(extended) > 0 {
		scores.Extended = extended
	}

	couplings := []*CouplingMatrix{
		NewCouplingMatrix(strategy.FrameworkEnvironmental, strategy.FrameworkCompetitive, g.cfg.CouplingEnvComp),
		NewCouplingMatrix(strategy.FrameworkCompetitive, strategy.FrameworkCapability, g.cfg.CouplingCompCap),
		NewCouplingMatrix(strategy.FrameworkEnvironmental, strategy.FrameworkCapability, g.cfg.CouplingEnvCap),
	}

	coupling := g.couplingEffect(scores, couplings)
	core := (scores.Environmental+scores.Competitive+scores.Capability)/3 +
		g.cfg.InteractionGain*coupling

	horizon := g.cfg.TimeHorizon
	if horizon < 1 {
		horizon = 1
	}
	series := make([]strategy.TimeStepScore, horizon)
	var sum float64
	for t := 0; t < horizon; t++ {
		s := math.Tanh(core) * math.Exp(-g.cfg.DecayLambda*float64(t))
		series[t] = strategy.TimeStepScore{Step: t, Score: s}
		sum += s
	}

	res := &Result{
		Scores:         scores,
		CouplingEffect: coupling,
		Integrated:     sum / float64(horizon),
		Series:         series,
		Couplings:      couplings,
	}

	g.logger.Debug("integration complete",
		logging.Float64("coupling_effect", coupling),
		logging.Float64("integrated", res.Integrated),
		logging.Int("horizon", horizon),
	)
	g.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageIntegration,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		Success:    true,
		ItemCount:  horizon,
	})
	return res, nil
}

// couplingEffect sums the pairwise coupling terms: the three core framework
// pairs, plus a chain through the extended frameworks when present
// (capability→bcg→ansoff→blue-ocean, each link weighted by the extended
// coupling coefficient).
func (g *integratorImpl) couplingEffect(scores strategy.FrameworkScores, couplings []*CouplingMatrix) float64 {
	effect := couplings[0].Mean()*scores.Environmental*scores.Competitive +
		couplings[1].Mean()*scores.Competitive*scores.Capability +
		couplings[2].Mean()*scores.Environmental*scores.Capability

	if len(scores.Extended) == 0 {
		return effect
	}

	chain := []strategy.Framework{strategy.FrameworkBCG, strategy.FrameworkAnsoff, strategy.FrameworkBlueOcean}
	prev := scores.Capability
	for _, fw := range chain {
		s, ok := scores.Extended[fw]
		if !ok {
			continue
		}
		effect += g.cfg.ExtendedCoupling * prev * s
		prev = s
	}
	return effect
}

// SortedExtended returns the extended framework scores in stable order,
// for callers that render or compare them.
func SortedExtended(extended map[strategy.Framework]float64) []strategy.Framework {
	out := make([]strategy.Framework, 0, len(extended))
	for fw := range extended {
		out = append(out, fw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
