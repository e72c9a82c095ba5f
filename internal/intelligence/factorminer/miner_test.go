package factorminer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
)

func newTestMiner(t *testing.T) Miner {
	t.Helper()
	cfg := config.Default()
	m, err := NewMiner(&cfg.Extraction, nil, nil)
	require.NoError(t, err)
	return m
}

func TestNewMiner_RequiresConfig(t *testing.T) {
	_, err := NewMiner(nil, nil, nil)
	assert.Error(t, err)
}

func TestMine_EmptyInput(t *testing.T) {
	m := newTestMiner(t)
	_, err := m.Mine(context.Background(), "   \n\t ")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyNarrative))
	assert.True(t, errors.IsInputError(err))
}

func TestMine_NoHeadersStillPopulatesEveryCategory(t *testing.T) {
	m := newTestMiner(t)
	set, err := m.Mine(context.Background(), "The company operates in a mature market with steady demand.")
	require.NoError(t, err)

	assert.Len(t, set.Environmental, 6)
	assert.Len(t, set.Forces, 5)
	assert.Len(t, set.Capabilities, 4)
	assert.NoError(t, set.Validate())
}

func TestMine_SwotOnlyScenario(t *testing.T) {
	m := newTestMiner(t)
	set, err := m.Mine(context.Background(), "Strengths: • Strong brand. Weaknesses: • High cost.")
	require.NoError(t, err)

	// Environmental and competitive families fall back to defaults.
	assert.Len(t, set.Environmental, 6)
	assert.Len(t, set.Forces, 5)
	for _, f := range set.Environmental {
		assert.True(t, f.IsDefault)
	}
	for _, n := range set.Forces {
		assert.True(t, n.IsDefault)
	}

	var strength, weakness *factor.CapabilityElement
	for _, e := range set.Capabilities {
		if e.IsDefault {
			continue
		}
		switch e.Category {
		case factor.CategoryStrength:
			strength = e
		case factor.CategoryWeakness:
			weakness = e
		}
	}
	require.NotNil(t, strength)
	require.NotNil(t, weakness)
	assert.Contains(t, strength.Description, "brand")
	assert.Contains(t, weakness.Description, "cost")
}

func TestMine_FiveForcesScenario(t *testing.T) {
	m := newTestMiner(t)
	text := "Industry analysis follows. Competitive Rivalry: high (9), driven by price wars. " +
		"Threat of New Entrants: low (2) due to capital requirements."
	set, err := m.Mine(context.Background(), text)
	require.NoError(t, err)

	byForce := make(map[factor.Force]*factor.ForceNode)
	for _, n := range set.Forces {
		byForce[n.Force] = n
	}

	rivalry := byForce[factor.ForceRivalry]
	require.NotNil(t, rivalry)
	assert.False(t, rivalry.IsDefault)
	assert.Equal(t, 9.0, rivalry.Strength)

	entrants := byForce[factor.ForceEntrants]
	require.NotNil(t, entrants)
	assert.False(t, entrants.IsDefault)
	assert.Equal(t, 2.0, entrants.Strength)

	// Unnamed forces come from defaults.
	require.NotNil(t, byForce[factor.ForceSuppliers])
	assert.True(t, byForce[factor.ForceSuppliers].IsDefault)
}

func TestMine_ForceWordCueAndTrend(t *testing.T) {
	m := newTestMiner(t)
	text := "Supplier power: medium and increasing as inputs consolidate. " +
		"Threat of substitutes: low, declining with platform lock-in."
	set, err := m.Mine(context.Background(), text)
	require.NoError(t, err)

	byForce := make(map[factor.Force]*factor.ForceNode)
	for _, n := range set.Forces {
		byForce[n.Force] = n
	}

	suppliers := byForce[factor.ForceSuppliers]
	require.NotNil(t, suppliers)
	assert.Equal(t, 5.0, suppliers.Strength)
	assert.Equal(t, factor.TrendIncreasing, suppliers.Trend)

	subs := byForce[factor.ForceSubstitute]
	require.NotNil(t, subs)
	assert.Equal(t, 2.0, subs.Strength)
	assert.Equal(t, factor.TrendDecreasing, subs.Trend)
}

func TestMine_EnvironmentalSections(t *testing.T) {
	m := newTestMiner(t)
	text := `Political factors:
- Critical trade policy uncertainty may disrupt supply chains
- New subsidies favorable to domestic production

Economic factors:
- Strong consumer spending growth expected long-term
`
	set, err := m.Mine(context.Background(), text)
	require.NoError(t, err)

	var political, economic []*factor.EnvironmentalFactor
	for _, f := range set.Environmental {
		if f.IsDefault {
			continue
		}
		switch f.Category {
		case factor.CategoryPolitical:
			political = append(political, f)
		case factor.CategoryEconomic:
			economic = append(economic, f)
		}
	}

	require.Len(t, political, 2)
	require.Len(t, economic, 1)

	// "Critical ... may disrupt" raises weight and uncertainty.
	first := political[0]
	assert.Greater(t, first.Weight, 5.0)
	assert.Greater(t, first.Uncertainty, 0.3)
	assert.Less(t, first.Impact, 0.0)

	assert.Greater(t, economic[0].Impact, 0.0)
	assert.Equal(t, "long", string(economic[0].Horizon))
}

func TestMine_Deterministic(t *testing.T) {
	m := newTestMiner(t)
	text := "Strengths: • Strong brand. Economic factors: growth is improving."

	a, err := m.Mine(context.Background(), text)
	require.NoError(t, err)
	b, err := m.Mine(context.Background(), text)
	require.NoError(t, err)

	require.Equal(t, a.Count(), b.Count())
	for i := range a.Environmental {
		assert.Equal(t, a.Environmental[i].ID, b.Environmental[i].ID)
		assert.Equal(t, a.Environmental[i].Weight, b.Environmental[i].Weight)
	}
	for i := range a.Capabilities {
		assert.Equal(t, a.Capabilities[i].ID, b.Capabilities[i].ID)
	}
}

func TestMine_RecordsStageMetrics(t *testing.T) {
	cfg := config.Default()
	metrics := common.NewInMemoryAnalysisMetrics()
	m, err := NewMiner(&cfg.Extraction, nil, metrics)
	require.NoError(t, err)

	_, err = m.Mine(context.Background(), "Strengths: • Strong brand.")
	require.NoError(t, err)

	stages := metrics.GetRecordedStages()
	require.Len(t, stages, 1)
	assert.Equal(t, common.StageMining, stages[0].Stage)
	assert.True(t, stages[0].Success)
	assert.Greater(t, stages[0].ItemCount, 0)
}
