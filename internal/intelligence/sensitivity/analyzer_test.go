package sensitivity

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/integrator"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

func newTestAnalyzer(t *testing.T, mutate func(*config.SensitivityConfig)) (Analyzer, frameworkops.Operators, integrator.Integrator) {
	t.Helper()
	cfg := config.Default()
	cfg.Sensitivity.MonteCarloTrials = 50
	if mutate != nil {
		mutate(&cfg.Sensitivity)
	}
	ops, err := frameworkops.NewOperators(&cfg.Operators, nil, nil)
	require.NoError(t, err)
	integ, err := integrator.NewIntegrator(&cfg.Integration, nil, nil)
	require.NoError(t, err)
	a, err := NewAnalyzer(&cfg.Sensitivity, ops, integ, nil, nil)
	require.NoError(t, err)
	return a, ops, integ
}

func testSet(t *testing.T) *factor.Set {
	t.Helper()
	f, err := factor.NewEnvironmentalFactor(factor.CategoryEconomic, "sustained demand growth across core segments", 8, 4, 0.2, strategy.HorizonMedium)
	require.NoError(t, err)
	set := &factor.Set{Environmental: []*factor.EnvironmentalFactor{f}}
	return factor.EnsureDefaults(set)
}

func baseline(t *testing.T, ops frameworkops.Operators, integ integrator.Integrator, set *factor.Set) (*frameworkops.Result, *integrator.Result) {
	t.Helper()
	opsRes, err := ops.Apply(context.Background(), set)
	require.NoError(t, err)
	integRes, err := integ.Integrate(context.Background(), opsRes, nil)
	require.NoError(t, err)
	return opsRes, integRes
}

func TestNewAnalyzer_Validation(t *testing.T) {
	cfg := config.Default()
	ops, err := frameworkops.NewOperators(&cfg.Operators, nil, nil)
	require.NoError(t, err)
	integ, err := integrator.NewIntegrator(&cfg.Integration, nil, nil)
	require.NoError(t, err)

	_, err = NewAnalyzer(nil, ops, integ, nil, nil)
	assert.Error(t, err)
	_, err = NewAnalyzer(&cfg.Sensitivity, nil, integ, nil, nil)
	assert.Error(t, err)
	_, err = NewAnalyzer(&cfg.Sensitivity, ops, nil, nil, nil)
	assert.Error(t, err)
}

func TestDominantFactors_RankedDescending(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, nil)
	set := testSet(t)
	opsRes, _ := baseline(t, ops, integ, set)

	ranked := a.DominantFactors(set, opsRes.Competitive)
	require.NotEmpty(t, ranked)
	assert.Len(t, ranked, set.Count())
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestDominantFactors_HeavyFactorLeads(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, nil)
	set := testSet(t)
	opsRes, _ := baseline(t, ops, integ, set)

	ranked := a.DominantFactors(set, opsRes.Competitive)
	// Weight 8 x impact 4 beats every default environmental factor and every
	// centrality product.
	assert.Equal(t, strategy.FrameworkEnvironmental, ranked[0].Framework)
	assert.Contains(t, ranked[0].Name, "demand growth")
}

func TestLeverage_TopKAndOrdering(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, func(c *config.SensitivityConfig) { c.TopLeverage = 4 })
	set := testSet(t)
	_, base := baseline(t, ops, integ, set)

	points, err := a.Leverage(context.Background(), set, base, nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 4)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].Leverage, points[i].Leverage)
	}
	for _, p := range points {
		assert.False(t, math.IsNaN(p.Sensitivity))
	}
}

func TestLeverage_CentralityAmplifiesForces(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, func(c *config.SensitivityConfig) { c.TopLeverage = 100 })
	set := testSet(t)
	opsRes, base := baseline(t, ops, integ, set)

	points, err := a.Leverage(context.Background(), set, base, opsRes.Competitive, nil)
	require.NoError(t, err)
	for _, p := range points {
		if p.Framework == strategy.FrameworkCompetitive {
			assert.InDelta(t, math.Abs(p.Sensitivity)*(1+p.Centrality), p.Leverage, 1e-12)
		} else {
			assert.Zero(t, p.Centrality)
		}
	}
}

func TestLeverage_DoesNotMutateInput(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, nil)
	set := testSet(t)
	_, base := baseline(t, ops, integ, set)

	weight := set.Environmental[0].Weight
	strength := set.Forces[0].Strength
	_, err := a.Leverage(context.Background(), set, base, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, weight, set.Environmental[0].Weight)
	assert.Equal(t, strength, set.Forces[0].Strength)
}

func TestLeverage_ExtendedBaselineConsistent(t *testing.T) {
	// Every magnitude sits at its upper bound, so perturbation clamps back to
	// the original population and each finite difference must be exactly
	// zero.  Rescoring perturbed populations without the base run's extended
	// scores would shift every sensitivity by the extended coupling terms.
	a, ops, integ := newTestAnalyzer(t, func(c *config.SensitivityConfig) { c.TopLeverage = 100 })

	env, err := factor.NewEnvironmentalFactor(factor.CategoryEconomic, "saturated premium demand", 10, 4, 0.2, strategy.HorizonMedium)
	require.NoError(t, err)
	force, err := factor.NewForceNode(factor.ForceRivalry, 10, factor.TrendStable)
	require.NoError(t, err)
	elem, err := factor.NewCapabilityElement(factor.CategoryStrength, "entrenched distribution network", 10)
	require.NoError(t, err)
	set := &factor.Set{
		Environmental: []*factor.EnvironmentalFactor{env},
		Forces:        []*factor.ForceNode{force},
		Capabilities:  []*factor.CapabilityElement{elem},
	}

	extended := map[strategy.Framework]float64{strategy.FrameworkBCG: 0.9}
	opsRes, err := ops.Apply(context.Background(), set)
	require.NoError(t, err)
	base, err := integ.Integrate(context.Background(), opsRes, extended)
	require.NoError(t, err)

	points, err := a.Leverage(context.Background(), set, base, opsRes.Competitive, extended)
	require.NoError(t, err)
	require.Len(t, points, set.Count())
	for _, p := range points {
		assert.InDelta(t, 0, p.Sensitivity, 1e-12, "factor %s", p.FactorID)
	}
}

func TestAnalyze_ProducesAllSections(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, nil)
	set := testSet(t)
	opsRes, base := baseline(t, ops, integ, set)

	out, err := a.Analyze(context.Background(), set, opsRes, base, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out.DominantFactors)
	assert.NotEmpty(t, out.LeveragePoints)
	require.NotNil(t, out.MonteCarlo)
	assert.Equal(t, 50, out.MonteCarlo.Trials)
}

func TestAnalyze_NilInputs(t *testing.T) {
	a, _, _ := newTestAnalyzer(t, nil)
	_, err := a.Analyze(context.Background(), nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestOptimizeForceStrengths_ImprovesScore(t *testing.T) {
	a, ops, integ := newTestAnalyzer(t, nil)
	set := testSet(t)
	_, base := baseline(t, ops, integ, set)

	res, err := a.OptimizeForceStrengths(context.Background(), set)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.AchievedScore, base.Integrated)
	assert.Len(t, res.OptimalStrengths, len(set.Forces))
	for _, s := range res.OptimalStrengths {
		assert.GreaterOrEqual(t, s, 1.0)
		assert.LessOrEqual(t, s, 10.0)
	}
	assert.Positive(t, res.Iterations)
}

func TestOptimizeForceStrengths_WeakForcesRaiseAttractiveness(t *testing.T) {
	// Lower rivalry pressure means a more attractive structure, so the
	// optimum should sit at or near the strength floor.
	a, _, _ := newTestAnalyzer(t, nil)
	set := testSet(t)

	res, err := a.OptimizeForceStrengths(context.Background(), set)
	require.NoError(t, err)
	for force, s := range res.OptimalStrengths {
		assert.LessOrEqual(t, s, 5.0, "force %s should not strengthen", force)
	}
}

func TestOptimizeForceStrengths_NoForces(t *testing.T) {
	a, _, _ := newTestAnalyzer(t, nil)
	_, err := a.OptimizeForceStrengths(context.Background(), &factor.Set{})
	assert.Error(t, err)
}
