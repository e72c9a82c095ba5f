package frameworkops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

func TestScoreBCG_Quadrants(t *testing.T) {
	tests := []struct {
		name string
		unit BCGUnit
		want float64
	}{
		{"star", BCGUnit{Name: "a", RelativeShare: 1.5, MarketGrowthPct: 15}, bcgStar},
		{"cash cow", BCGUnit{Name: "b", RelativeShare: 2.0, MarketGrowthPct: 3}, bcgCashCow},
		{"question mark", BCGUnit{Name: "c", RelativeShare: 0.4, MarketGrowthPct: 20}, bcgQuestion},
		{"dog", BCGUnit{Name: "d", RelativeShare: 0.3, MarketGrowthPct: 2}, bcgDog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreBCG([]BCGUnit{tt.unit})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestScoreBCG_RevenueWeighting(t *testing.T) {
	got, err := ScoreBCG([]BCGUnit{
		{Name: "star", RelativeShare: 1.5, MarketGrowthPct: 15, RevenueWeight: 3},
		{Name: "dog", RelativeShare: 0.3, MarketGrowthPct: 2, RevenueWeight: 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, (3*bcgStar+1*bcgDog)/4, got, 1e-12)
}

func TestScoreBCG_Rejections(t *testing.T) {
	_, err := ScoreBCG(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtendedInputs))

	_, err = ScoreBCG([]BCGUnit{{Name: "x", RelativeShare: 0}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtendedInputs))
}

func TestScoreAnsoff(t *testing.T) {
	got, err := ScoreAnsoff(&AnsoffInputs{MarketPenetration: 1})
	require.NoError(t, err)
	assert.InDelta(t, 2*0.9-1, got, 1e-12)

	got, err = ScoreAnsoff(&AnsoffInputs{Diversification: 1})
	require.NoError(t, err)
	assert.InDelta(t, 2*0.4-1, got, 1e-12)

	got, err = ScoreAnsoff(&AnsoffInputs{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = ScoreAnsoff(&AnsoffInputs{MarketPenetration: 1.5})
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtendedInputs))

	_, err = ScoreAnsoff(nil)
	assert.Error(t, err)
}

func TestScoreBlueOcean(t *testing.T) {
	// perfectly balanced four-actions profile peaks at +1
	got, err := ScoreBlueOcean(&BlueOceanInputs{
		Eliminate: []string{"legacy tier"},
		Reduce:    []string{"support cost"},
		Raise:     []string{"self-service"},
		Create:    []string{"marketplace"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	// one-sided profile scores -1
	got, err = ScoreBlueOcean(&BlueOceanInputs{Create: []string{"a", "b"}})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-12)

	got, err = ScoreBlueOcean(&BlueOceanInputs{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestScoreExtended(t *testing.T) {
	scores, err := ScoreExtended(&ExtendedInputs{
		BCG:    []BCGUnit{{Name: "a", RelativeShare: 1.5, MarketGrowthPct: 15}},
		Ansoff: &AnsoffInputs{MarketPenetration: 1},
	})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Contains(t, scores, strategy.FrameworkBCG)
	assert.Contains(t, scores, strategy.FrameworkAnsoff)
	assert.NotContains(t, scores, strategy.FrameworkBlueOcean)

	scores, err = ScoreExtended(nil)
	require.NoError(t, err)
	assert.Nil(t, scores)

	var empty *ExtendedInputs
	assert.True(t, empty.Empty())
	assert.True(t, (&ExtendedInputs{}).Empty())
}
