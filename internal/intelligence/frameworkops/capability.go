package frameworkops

import (
	"math"
	"sort"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
)

// positional modulation amplitude of the interaction tensor
const tensorModulation = 0.25

// capabilityScale rescales the signed impact product (each axis in [-10,10])
// onto [-1,1].
const capabilityScale = 100.0

// Capability partitions elements into internal (strength/weakness) and
// external (opportunity/threat) axes and builds the interaction tensor
//
//	T[i][j] = f(internalᵢ, externalⱼ, position)
//
// where f multiplies the signed magnitudes, flips the sign of
// weakness×threat cells so compounding negatives reduce fit rather than
// cancelling, and modulates by a sinusoidal function of the cell position so
// the interaction pattern is not uniform.  The operator output is the tensor
// mean clamped to [-1,1].
func (o *operatorsImpl) Capability(elements []*factor.CapabilityElement) *CapabilityResult {
	var internal, external []*factor.CapabilityElement
	for _, e := range elements {
		if e == nil {
			continue
		}
		if e.Category.IsInternal() {
			internal = append(internal, e)
		} else {
			external = append(external, e)
		}
	}
	sortElements(internal)
	sortElements(external)

	if len(internal) == 0 || len(external) == 0 {
		return &CapabilityResult{
			Score:    0,
			Tensor:   [][]float64{},
			Internal: internal,
			External: external,
		}
	}

	tensor := make([][]float64, len(internal))
	var sum float64
	for i, in := range internal {
		tensor[i] = make([]float64, len(external))
		si := in.SignedImpact()
		for j, ex := range external {
			ej := ex.SignedImpact()
			cell := si * ej / capabilityScale
			if si < 0 && ej < 0 {
				// weakness×threat compounds downward
				cell = -cell
			}
			cell *= 1 + tensorModulation*math.Sin(float64(i+1)*float64(j+1))
			tensor[i][j] = cell
			sum += cell
		}
	}

	mean := sum / float64(len(internal)*len(external))
	if mean > 1 {
		mean = 1
	}
	if mean < -1 {
		mean = -1
	}

	return &CapabilityResult{
		Score:    mean,
		Tensor:   tensor,
		Internal: internal,
		External: external,
	}
}

// sortElements orders elements by category then ID so the tensor layout is
// independent of extraction order.
func sortElements(es []*factor.CapabilityElement) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].Category != es[j].Category {
			return es[i].Category < es[j].Category
		}
		return es[i].ID < es[j].ID
	})
}
