package frameworkops

import (
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
)

// impactScale rescales the documented impact range [-5,5] onto [-1,1].
const impactScale = 5.0

// Environmental computes
//
//	Φ_E = (Σᵢ weightᵢ · probabilityᵢ · impactᵢ) / Σᵢ weightᵢ
//
// where probability is the complement of uncertainty and impact is rescaled
// to [-1,1].  A zero weight total degenerates to 0 rather than dividing.
func (o *operatorsImpl) Environmental(factors []*factor.EnvironmentalFactor) float64 {
	var weighted, totalWeight float64
	for _, f := range factors {
		if f == nil {
			continue
		}
		weighted += f.Weight * f.Probability() * (f.Impact / impactScale)
		totalWeight += f.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}
