package factor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaults_EmptySet(t *testing.T) {
	s := EnsureDefaults(nil)
	require.NotNil(t, s)

	assert.Len(t, s.Environmental, 6)
	assert.Len(t, s.Forces, 5)
	assert.Len(t, s.Capabilities, 4)
	assert.NoError(t, s.Validate())

	for _, f := range s.Environmental {
		assert.True(t, f.IsDefault)
	}
	for _, n := range s.Forces {
		assert.True(t, n.IsDefault)
		assert.Equal(t, 5.0, n.Strength)
		assert.Equal(t, TrendStable, n.Trend)
	}
	for _, e := range s.Capabilities {
		assert.True(t, e.IsDefault)
	}
}

func TestEnsureDefaults_PreservesMinedFactors(t *testing.T) {
	mined, err := NewForceNode(ForceRivalry, 9, TrendIncreasing)
	require.NoError(t, err)

	s := EnsureDefaults(&Set{Forces: []*ForceNode{mined}})

	assert.Len(t, s.Forces, 5)
	var rivalry *ForceNode
	for _, n := range s.Forces {
		if n.Force == ForceRivalry {
			rivalry = n
		}
	}
	require.NotNil(t, rivalry)
	assert.Equal(t, 9.0, rivalry.Strength)
	assert.False(t, rivalry.IsDefault)
}

func TestEnsureDefaults_Deterministic(t *testing.T) {
	a := EnsureDefaults(nil)
	b := EnsureDefaults(nil)

	require.Equal(t, len(a.Environmental), len(b.Environmental))
	for i := range a.Environmental {
		assert.Equal(t, a.Environmental[i].ID, b.Environmental[i].ID)
		assert.Equal(t, a.Environmental[i].Weight, b.Environmental[i].Weight)
	}
}

func TestStructuralInfluence(t *testing.T) {
	assert.InDelta(t, 0.65, StructuralInfluence(ForceRivalry, ForceEntrants), 1e-12)
	assert.InDelta(t, 0.3, StructuralInfluence(ForceSuppliers, ForceEntrants), 1e-12)
	assert.Equal(t, 0.0, StructuralInfluence(ForceSubstitute, ForceEntrants))
	assert.Equal(t, 0.0, StructuralInfluence("unknown", ForceRivalry))
}

func TestDefaultFactors_WithinRanges(t *testing.T) {
	for _, c := range AllEnvironmentalCategories() {
		f := DefaultEnvironmentalFactor(c)
		assert.NoError(t, f.Validate(), "category %s", c)
	}
	for _, fc := range AllForces() {
		n := DefaultForceNode(fc)
		assert.NoError(t, n.Validate(), "force %s", fc)
	}
	for _, cc := range AllCapabilityCategories() {
		e := DefaultCapabilityElement(cc)
		assert.NoError(t, e.Validate(), "quadrant %s", cc)
	}
}
