package factor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

func TestNewEnvironmentalFactor_ClampsAndDefaults(t *testing.T) {
	f, err := NewEnvironmentalFactor(CategoryEconomic, "Rising interest rates", 15, -9, 1.4, "")
	require.NoError(t, err)

	assert.Equal(t, 10.0, f.Weight)
	assert.Equal(t, -5.0, f.Impact)
	assert.Equal(t, 1.0, f.Uncertainty)
	assert.Equal(t, strategy.HorizonMedium, f.Horizon)
	assert.NoError(t, f.Validate())
	assert.InDelta(t, 0.0, f.Probability(), 1e-12)
}

func TestNewEnvironmentalFactor_DeterministicID(t *testing.T) {
	a, err := NewEnvironmentalFactor(CategoryLegal, "New data privacy law", 5, -2, 0.3, strategy.HorizonLong)
	require.NoError(t, err)
	b, err := NewEnvironmentalFactor(CategoryLegal, "New data privacy law", 5, -2, 0.3, strategy.HorizonLong)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestNewEnvironmentalFactor_Rejections(t *testing.T) {
	_, err := NewEnvironmentalFactor("fiscal", "desc", 5, 0, 0.5, strategy.HorizonShort)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCategoryUnknown))

	_, err = NewEnvironmentalFactor(CategoryPolitical, "", 5, 0, 0.5, strategy.HorizonShort)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFactorInvalid))
}

func TestEnvironmentalFactor_ValidateHorizon(t *testing.T) {
	f := &EnvironmentalFactor{
		ID:       "x",
		Category: CategorySocial,
		Weight:   5,
		Horizon:  "eventual",
	}
	err := f.Validate()
	assert.True(t, errors.IsCode(err, errors.ErrCodeHorizonUnknown))
}

func TestNewForceNode(t *testing.T) {
	n, err := NewForceNode(ForceRivalry, 12, "")
	require.NoError(t, err)
	assert.Equal(t, 10.0, n.Strength)
	assert.Equal(t, TrendStable, n.Trend)
	assert.NotNil(t, n.Influence)
	assert.NoError(t, n.Validate())
	assert.InDelta(t, 1.0, n.NormalizedStrength(), 1e-12)
}

func TestForceNode_ValidateInfluenceRange(t *testing.T) {
	n, err := NewForceNode(ForceBuyers, 6, TrendIncreasing)
	require.NoError(t, err)
	n.Influence[ForceRivalry] = 1.5
	assert.True(t, errors.IsCode(n.Validate(), errors.ErrCodeFactorInvalid))
}

func TestNewCapabilityElement_SignedImpact(t *testing.T) {
	s, err := NewCapabilityElement(CategoryStrength, "Strong brand", 8)
	require.NoError(t, err)
	w, err := NewCapabilityElement(CategoryWeakness, "High cost", 6)
	require.NoError(t, err)

	assert.InDelta(t, 8.0, s.SignedImpact(), 1e-12)
	assert.InDelta(t, -6.0, w.SignedImpact(), 1e-12)
	assert.True(t, s.Category.IsInternal())
	assert.False(t, CategoryThreat.IsInternal())
}

func TestSet_ValidateAndCount(t *testing.T) {
	env, err := NewEnvironmentalFactor(CategoryTechnological, "AI adoption", 7, 3, 0.3, strategy.HorizonShort)
	require.NoError(t, err)
	n, err := NewForceNode(ForceEntrants, 2, TrendDecreasing)
	require.NoError(t, err)
	c, err := NewCapabilityElement(CategoryOpportunity, "Market expansion", 7)
	require.NoError(t, err)

	s := &Set{
		Environmental: []*EnvironmentalFactor{env},
		Forces:        []*ForceNode{n},
		Capabilities:  []*CapabilityElement{c},
	}
	assert.NoError(t, s.Validate())
	assert.Equal(t, 3, s.Count())

	byCat := s.CapabilitiesByCategory()
	assert.Len(t, byCat[CategoryOpportunity], 1)
	assert.Empty(t, byCat[CategoryStrength])
}
