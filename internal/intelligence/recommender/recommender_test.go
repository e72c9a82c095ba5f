package recommender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

func newTestRecommender(t *testing.T, mutate func(*config.RecommendationConfig)) Recommender {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg.Recommendation)
	}
	r, err := NewRecommender(&cfg.Recommendation, nil, nil)
	require.NoError(t, err)
	return r
}

func swotSet(t *testing.T) (*factor.Set, []strategy.DominantFactor) {
	t.Helper()
	strong, err := factor.NewCapabilityElement(factor.CategoryStrength, "Strong brand recognition", 8)
	require.NoError(t, err)
	weak, err := factor.NewCapabilityElement(factor.CategoryWeakness, "High cost structure", 7)
	require.NoError(t, err)
	set := factor.EnsureDefaults(&factor.Set{Capabilities: []*factor.CapabilityElement{strong, weak}})

	dominant := []strategy.DominantFactor{
		{FactorID: strong.ID, Name: strong.Description, Framework: strategy.FrameworkCapability, Score: 8},
		{FactorID: weak.ID, Name: weak.Description, Framework: strategy.FrameworkCapability, Score: 7},
	}
	return set, dominant
}

func TestNewRecommender_NilConfig(t *testing.T) {
	_, err := NewRecommender(nil, nil, nil)
	assert.Error(t, err)
}

func TestRecommend_ReferencesMinedElements(t *testing.T) {
	r := newTestRecommender(t, nil)
	set, dominant := swotSet(t)

	recs, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	var sawBrand, sawCost bool
	for _, rec := range recs {
		if rec.Title == "Leverage strength: Strong brand recognition" {
			sawBrand = true
			assert.Equal(t, strategy.HorizonShort, rec.Horizon)
			assert.Equal(t, strategy.IntensityHigh, rec.ResourceIntensity)
		}
		if rec.Title == "Remediate weakness: High cost structure" {
			sawCost = true
			assert.Equal(t, strategy.HorizonMedium, rec.Horizon)
		}
	}
	assert.True(t, sawBrand, "expected a recommendation for the brand strength")
	assert.True(t, sawCost, "expected a recommendation for the cost weakness")
}

func TestRecommend_SortedByPriority(t *testing.T) {
	r := newTestRecommender(t, nil)
	set, dominant := swotSet(t)

	recs, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Priority(), recs[i].Priority())
	}
}

func TestRecommend_EnvironmentalVerbs(t *testing.T) {
	pos, err := factor.NewEnvironmentalFactor(factor.CategoryTechnological, "Rapid platform adoption in core markets", 8, 4, 0.2, strategy.HorizonShort)
	require.NoError(t, err)
	neg, err := factor.NewEnvironmentalFactor(factor.CategoryLegal, "Tightening compliance requirements abroad", 7, -3, 0.4, strategy.HorizonLong)
	require.NoError(t, err)
	set := factor.EnsureDefaults(&factor.Set{Environmental: []*factor.EnvironmentalFactor{pos, neg}})

	dominant := []strategy.DominantFactor{
		{FactorID: pos.ID, Framework: strategy.FrameworkEnvironmental, Score: 32},
		{FactorID: neg.ID, Framework: strategy.FrameworkEnvironmental, Score: 21},
	}
	r := newTestRecommender(t, nil)
	recs, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0].Title, "Capitalize on")
	assert.Contains(t, recs[1].Title, "Mitigate")
	assert.InDelta(t, 0.8, recs[0].Confidence, 1e-12)
}

func TestRecommend_ForceVerbDependsOnStrength(t *testing.T) {
	intense, err := factor.NewForceNode(factor.ForceRivalry, 9, factor.TrendIncreasing)
	require.NoError(t, err)
	mild, err := factor.NewForceNode(factor.ForceSubstitute, 2, factor.TrendStable)
	require.NoError(t, err)
	set := factor.EnsureDefaults(&factor.Set{Forces: []*factor.ForceNode{intense, mild}})

	dominant := []strategy.DominantFactor{
		{FactorID: string(factor.ForceRivalry), Framework: strategy.FrameworkCompetitive, Score: 2},
		{FactorID: string(factor.ForceSubstitute), Framework: strategy.FrameworkCompetitive, Score: 1},
	}
	r := newTestRecommender(t, nil)
	recs, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0].Title, "Counter intense")
	assert.Equal(t, strategy.HorizonShort, recs[0].Horizon)
	assert.Contains(t, recs[1].Title, "Exploit favorable")
}

func TestRecommend_TruncatesToMax(t *testing.T) {
	r := newTestRecommender(t, func(c *config.RecommendationConfig) {
		c.MaxRecommendations = 1
		c.TopFactors = 10
	})
	set, dominant := swotSet(t)

	recs, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecommend_SkipsUnknownFactorIDs(t *testing.T) {
	r := newTestRecommender(t, nil)
	set, _ := swotSet(t)

	recs, err := r.Recommend(context.Background(), set, []strategy.DominantFactor{
		{FactorID: "missing", Framework: strategy.FrameworkCapability, Score: 9},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_LeveragePointsSurface(t *testing.T) {
	// A factor that ranks high on marginal leverage but not on structural
	// dominance must still yield a recommendation.
	r := newTestRecommender(t, nil)
	set, dominant := swotSet(t)
	env, err := factor.NewEnvironmentalFactor(factor.CategoryEconomic, "Volatile input pricing", 3, -2, 0.5, strategy.HorizonMedium)
	require.NoError(t, err)
	set.Environmental = append(set.Environmental, env)

	leverage := []strategy.LeveragePoint{
		{FactorID: env.ID, Framework: strategy.FrameworkEnvironmental, Sensitivity: 0.4, Leverage: 0.4},
	}
	recs, err := r.Recommend(context.Background(), set, dominant, leverage)
	require.NoError(t, err)

	var sawPricing bool
	for _, rec := range recs {
		if rec.Title == "Mitigate economic factor: Volatile input pricing" {
			sawPricing = true
		}
	}
	assert.True(t, sawPricing, "expected the leverage-only factor to surface")
}

func TestRecommend_DominantAndLeverageOverlapMerges(t *testing.T) {
	r := newTestRecommender(t, nil)
	set, dominant := swotSet(t)

	leverage := []strategy.LeveragePoint{
		{FactorID: dominant[0].FactorID, Framework: strategy.FrameworkCapability, Sensitivity: 0.3, Leverage: 0.3},
	}
	recs, err := r.Recommend(context.Background(), set, dominant, leverage)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	seen := map[strategy.ID]bool{}
	for _, rec := range recs {
		assert.False(t, seen[rec.ID], "duplicate recommendation %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestRecommend_DeterministicIDs(t *testing.T) {
	r := newTestRecommender(t, nil)
	set, dominant := swotSet(t)

	a, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	b, err := r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRecommend_RecordsStageMetrics(t *testing.T) {
	cfg := config.Default()
	mem := common.NewInMemoryAnalysisMetrics()
	r, err := NewRecommender(&cfg.Recommendation, nil, mem)
	require.NoError(t, err)
	set, dominant := swotSet(t)

	_, err = r.Recommend(context.Background(), set, dominant, nil)
	require.NoError(t, err)
	stages := mem.GetRecordedStages()
	require.Len(t, stages, 1)
	assert.Equal(t, common.StageRecommend, stages[0].Stage)
}

func TestRecommend_NilSet(t *testing.T) {
	r := newTestRecommender(t, nil)
	_, err := r.Recommend(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}
