package factor

import (
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// Default factors are deterministic stand-ins appended when the narrative
// text yields nothing for a required category, so the operators never run
// on an empty factor population.  Their IDs are fixed strings, not UUIDs,
// to keep repeated analyses of the same input byte-identical.

// ---------------------------------------------------------------------------
// Environmental defaults
// ---------------------------------------------------------------------------

type environmentalDefault struct {
	description string
	weight      float64
	impact      float64
	uncertainty float64
}

var environmentalDefaults = map[EnvironmentalCategory]environmentalDefault{
	CategoryPolitical:     {"General regulatory and policy environment", 5, 0, 0.5},
	CategoryEconomic:      {"Prevailing macroeconomic conditions", 6, 0.5, 0.4},
	CategorySocial:        {"Demographic and social trends", 4, 0.5, 0.4},
	CategoryTechnological: {"Pace of technological change in the sector", 6, 1, 0.5},
	CategoryEnvironment:   {"Sustainability and environmental pressures", 4, -0.5, 0.4},
	CategoryLegal:         {"Compliance and legal obligations", 5, -0.5, 0.4},
}

// DefaultEnvironmentalFactor returns the deterministic stand-in for a PESTEL
// category absent from the text.
func DefaultEnvironmentalFactor(category EnvironmentalCategory) *EnvironmentalFactor {
	d, ok := environmentalDefaults[category]
	if !ok {
		d = environmentalDefault{"Unspecified environmental condition", 5, 0, 0.5}
	}
	return &EnvironmentalFactor{
		ID:          "default-" + string(category),
		Category:    category,
		Description: d.description,
		Weight:      d.weight,
		Impact:      d.impact,
		Uncertainty: d.uncertainty,
		Horizon:     strategy.HorizonMedium,
		IsDefault:   true,
	}
}

// ---------------------------------------------------------------------------
// Competitive-force defaults
// ---------------------------------------------------------------------------

// structuralInfluence holds the default directed edge weights of the
// five-forces influence graph.  Edges a mined node does not supply are
// filled from this table when the graph is assembled.
var structuralInfluence = map[Force]map[Force]float64{
	ForceRivalry: {
		ForceEntrants:   0.65,
		ForceSubstitute: 0.5,
		ForceBuyers:     0.4,
		ForceSuppliers:  0.35,
	},
	ForceSuppliers: {
		ForceRivalry:  0.45,
		ForceEntrants: 0.3,
		ForceBuyers:   0.25,
	},
	ForceBuyers: {
		ForceRivalry:    0.5,
		ForceSubstitute: 0.4,
		ForceSuppliers:  0.25,
	},
	ForceEntrants: {
		ForceRivalry:   0.6,
		ForceSuppliers: 0.3,
		ForceBuyers:    0.3,
	},
	ForceSubstitute: {
		ForceRivalry: 0.55,
		ForceBuyers:  0.35,
	},
}

// StructuralInfluence returns the default edge weight from one force to
// another, or 0 if the structural table carries no such edge.
func StructuralInfluence(from, to Force) float64 {
	if edges, ok := structuralInfluence[from]; ok {
		return edges[to]
	}
	return 0
}

// DefaultForceNode returns the deterministic stand-in for a competitive
// force absent from the text: medium strength, stable trend, structural
// influence edges.
func DefaultForceNode(force Force) *ForceNode {
	influence := make(map[Force]float64)
	for to, w := range structuralInfluence[force] {
		influence[to] = w
	}
	return &ForceNode{
		Force:     force,
		Strength:  5,
		Trend:     TrendStable,
		Influence: influence,
		IsDefault: true,
	}
}

// ---------------------------------------------------------------------------
// Capability defaults
// ---------------------------------------------------------------------------

type capabilityDefault struct {
	description string
	impact      float64
}

var capabilityDefaults = map[CapabilityCategory]capabilityDefault{
	CategoryStrength:    {"Established operational capability", 5},
	CategoryWeakness:    {"Limited differentiation from competitors", 4},
	CategoryOpportunity: {"Adjacent market expansion potential", 5},
	CategoryThreat:      {"Intensifying competitive pressure", 4},
}

// DefaultCapabilityElement returns the deterministic stand-in for a SWOT
// quadrant absent from the text.
func DefaultCapabilityElement(category CapabilityCategory) *CapabilityElement {
	d, ok := capabilityDefaults[category]
	if !ok {
		d = capabilityDefault{"Unspecified capability factor", 4}
	}
	return &CapabilityElement{
		ID:          "default-" + string(category),
		Category:    category,
		Description: d.description,
		Impact:      d.impact,
		IsDefault:   true,
	}
}

// ---------------------------------------------------------------------------
// Set completion
// ---------------------------------------------------------------------------

// EnsureDefaults appends deterministic default factors for every category,
// force, and quadrant missing from the set.  After it returns, every
// downstream stage receives a fully populated, non-empty factor population.
func EnsureDefaults(s *Set) *Set {
	if s == nil {
		s = &Set{}
	}

	present := make(map[EnvironmentalCategory]bool, 6)
	for _, f := range s.Environmental {
		present[f.Category] = true
	}
	for _, c := range AllEnvironmentalCategories() {
		if !present[c] {
			s.Environmental = append(s.Environmental, DefaultEnvironmentalFactor(c))
		}
	}

	forcesPresent := make(map[Force]bool, 5)
	for _, n := range s.Forces {
		forcesPresent[n.Force] = true
	}
	for _, f := range AllForces() {
		if !forcesPresent[f] {
			s.Forces = append(s.Forces, DefaultForceNode(f))
		}
	}

	quadrants := make(map[CapabilityCategory]bool, 4)
	for _, e := range s.Capabilities {
		quadrants[e.Category] = true
	}
	for _, c := range AllCapabilityCategories() {
		if !quadrants[c] {
			s.Capabilities = append(s.Capabilities, DefaultCapabilityElement(c))
		}
	}

	return s
}
