// Package factor defines the structured strategic factors mined from
// narrative text: environmental factors (PESTEL), competitive force nodes
// (five forces), and capability elements (SWOT).  Factors are created once
// per analysis, validated on construction, and read-only afterwards.
package factor

import (
	"fmt"
	"hash/fnv"

	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ---------------------------------------------------------------------------
// Category enums
// ---------------------------------------------------------------------------

// EnvironmentalCategory is one of the six PESTEL categories.
type EnvironmentalCategory string

const (
	CategoryPolitical     EnvironmentalCategory = "political"
	CategoryEconomic      EnvironmentalCategory = "economic"
	CategorySocial        EnvironmentalCategory = "social"
	CategoryTechnological EnvironmentalCategory = "technological"
	CategoryEnvironment   EnvironmentalCategory = "environmental"
	CategoryLegal         EnvironmentalCategory = "legal"
)

// AllEnvironmentalCategories lists the six PESTEL categories in canonical
// order.
func AllEnvironmentalCategories() []EnvironmentalCategory {
	return []EnvironmentalCategory{
		CategoryPolitical,
		CategoryEconomic,
		CategorySocial,
		CategoryTechnological,
		CategoryEnvironment,
		CategoryLegal,
	}
}

// Force identifies one of the five canonical competitive forces.
type Force string

const (
	ForceRivalry    Force = "competitive_rivalry"
	ForceSuppliers  Force = "supplier_power"
	ForceBuyers     Force = "buyer_power"
	ForceEntrants   Force = "new_entrants"
	ForceSubstitute Force = "substitutes"
)

// AllForces lists the five canonical competitive forces in canonical order.
func AllForces() []Force {
	return []Force{
		ForceRivalry,
		ForceSuppliers,
		ForceBuyers,
		ForceEntrants,
		ForceSubstitute,
	}
}

// Trend describes the direction a competitive force is moving.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// CapabilityCategory is one of the four SWOT quadrants.
type CapabilityCategory string

const (
	CategoryStrength    CapabilityCategory = "strength"    // internal, positive
	CategoryWeakness    CapabilityCategory = "weakness"    // internal, negative
	CategoryOpportunity CapabilityCategory = "opportunity" // external, positive
	CategoryThreat      CapabilityCategory = "threat"      // external, negative
)

// AllCapabilityCategories lists the four SWOT quadrants in canonical order.
func AllCapabilityCategories() []CapabilityCategory {
	return []CapabilityCategory{
		CategoryStrength,
		CategoryWeakness,
		CategoryOpportunity,
		CategoryThreat,
	}
}

// IsInternal reports whether the quadrant describes the organization itself
// (strength/weakness) rather than its environment (opportunity/threat).
func (c CapabilityCategory) IsInternal() bool {
	return c == CategoryStrength || c == CategoryWeakness
}

// Sign returns +1 for positive quadrants and −1 for negative ones.
func (c CapabilityCategory) Sign() float64 {
	if c == CategoryStrength || c == CategoryOpportunity {
		return 1
	}
	return -1
}

// ---------------------------------------------------------------------------
// EnvironmentalFactor
// ---------------------------------------------------------------------------

// EnvironmentalFactor is one mined PESTEL factor.
type EnvironmentalFactor struct {
	ID          string                `json:"id"`
	Category    EnvironmentalCategory `json:"category"`
	Description string                `json:"description"`
	Weight      float64               `json:"weight"`      // [1,10]
	Impact      float64               `json:"impact"`      // [-5,5]
	Uncertainty float64               `json:"uncertainty"` // [0,1]
	Horizon     strategy.TimeHorizon  `json:"horizon"`
	IsDefault   bool                  `json:"is_default"`
}

// NewEnvironmentalFactor builds a validated environmental factor, clamping
// the numeric attributes into their documented ranges.
func NewEnvironmentalFactor(category EnvironmentalCategory, description string, weight, impact, uncertainty float64, horizon strategy.TimeHorizon) (*EnvironmentalFactor, error) {
	if !validEnvironmentalCategory(category) {
		return nil, errors.Newf(errors.ErrCodeCategoryUnknown, "unknown environmental category %q", category)
	}
	if description == "" {
		return nil, errors.New(errors.ErrCodeFactorInvalid, "environmental factor description is empty")
	}
	if horizon == "" {
		horizon = strategy.HorizonMedium
	}

	f := &EnvironmentalFactor{
		ID:          deterministicID(string(category), description),
		Category:    category,
		Description: description,
		Weight:      clamp(weight, 1, 10),
		Impact:      clamp(impact, -5, 5),
		Uncertainty: clamp(uncertainty, 0, 1),
		Horizon:     horizon,
	}
	return f, nil
}

// Probability is the complement of the factor's uncertainty.
func (f *EnvironmentalFactor) Probability() float64 {
	return 1 - f.Uncertainty
}

// Validate checks the factor's attributes against their documented ranges.
func (f *EnvironmentalFactor) Validate() error {
	if f == nil {
		return errors.New(errors.ErrCodeFactorInvalid, "environmental factor is nil")
	}
	if !validEnvironmentalCategory(f.Category) {
		return errors.Newf(errors.ErrCodeCategoryUnknown, "unknown environmental category %q", f.Category)
	}
	if f.Weight < 1 || f.Weight > 10 {
		return errors.Newf(errors.ErrCodeFactorInvalid, "weight %.2f out of range [1,10]", f.Weight)
	}
	if f.Impact < -5 || f.Impact > 5 {
		return errors.Newf(errors.ErrCodeFactorInvalid, "impact %.2f out of range [-5,5]", f.Impact)
	}
	if f.Uncertainty < 0 || f.Uncertainty > 1 {
		return errors.Newf(errors.ErrCodeFactorInvalid, "uncertainty %.2f out of range [0,1]", f.Uncertainty)
	}
	switch f.Horizon {
	case strategy.HorizonShort, strategy.HorizonMedium, strategy.HorizonLong:
	default:
		return errors.Newf(errors.ErrCodeHorizonUnknown, "unknown time horizon %q", f.Horizon)
	}
	return nil
}

// ---------------------------------------------------------------------------
// ForceNode
// ---------------------------------------------------------------------------

// ForceNode is one node of the competitive influence graph.  Influence maps
// other force identifiers to a directed edge weight in [0,1]; edges missing
// from the map receive structural defaults when the graph is assembled.
type ForceNode struct {
	Force     Force             `json:"force"`
	Strength  float64           `json:"strength"` // [1,10]
	Trend     Trend             `json:"trend"`
	Influence map[Force]float64 `json:"influence"`
	IsDefault bool              `json:"is_default"`
}

// NewForceNode builds a validated force node, clamping strength into [1,10].
func NewForceNode(force Force, strength float64, trend Trend) (*ForceNode, error) {
	if force == "" {
		return nil, errors.New(errors.ErrCodeFactorInvalid, "force identifier is empty")
	}
	if trend == "" {
		trend = TrendStable
	}
	return &ForceNode{
		Force:     force,
		Strength:  clamp(strength, 1, 10),
		Trend:     trend,
		Influence: make(map[Force]float64),
	}, nil
}

// Validate checks the node's attributes against their documented ranges.
func (n *ForceNode) Validate() error {
	if n == nil {
		return errors.New(errors.ErrCodeFactorInvalid, "force node is nil")
	}
	if n.Force == "" {
		return errors.New(errors.ErrCodeFactorInvalid, "force identifier is empty")
	}
	if n.Strength < 1 || n.Strength > 10 {
		return errors.Newf(errors.ErrCodeFactorInvalid, "strength %.2f out of range [1,10]", n.Strength)
	}
	switch n.Trend {
	case TrendIncreasing, TrendStable, TrendDecreasing:
	default:
		return errors.Newf(errors.ErrCodeFactorInvalid, "unknown trend %q", n.Trend)
	}
	for target, w := range n.Influence {
		if w < 0 || w > 1 {
			return errors.Newf(errors.ErrCodeFactorInvalid, "influence %s→%s weight %.2f out of range [0,1]", n.Force, target, w)
		}
	}
	return nil
}

// NormalizedStrength maps strength from [1,10] onto [0,1].
func (n *ForceNode) NormalizedStrength() float64 {
	return (n.Strength - 1) / 9
}

// ---------------------------------------------------------------------------
// CapabilityElement
// ---------------------------------------------------------------------------

// CapabilityElement is one mined SWOT element.
type CapabilityElement struct {
	ID          string             `json:"id"`
	Category    CapabilityCategory `json:"category"`
	Description string             `json:"description"`
	Impact      float64            `json:"impact"` // [1,10] magnitude
	IsDefault   bool               `json:"is_default"`
}

// NewCapabilityElement builds a validated capability element, clamping
// impact magnitude into [1,10].
func NewCapabilityElement(category CapabilityCategory, description string, impact float64) (*CapabilityElement, error) {
	if !validCapabilityCategory(category) {
		return nil, errors.Newf(errors.ErrCodeCategoryUnknown, "unknown capability category %q", category)
	}
	if description == "" {
		return nil, errors.New(errors.ErrCodeFactorInvalid, "capability element description is empty")
	}
	return &CapabilityElement{
		ID:          deterministicID(string(category), description),
		Category:    category,
		Description: description,
		Impact:      clamp(impact, 1, 10),
	}, nil
}

// SignedImpact returns the impact magnitude signed by the quadrant.
func (e *CapabilityElement) SignedImpact() float64 {
	return e.Category.Sign() * e.Impact
}

// Validate checks the element's attributes against their documented ranges.
func (e *CapabilityElement) Validate() error {
	if e == nil {
		return errors.New(errors.ErrCodeFactorInvalid, "capability element is nil")
	}
	if !validCapabilityCategory(e.Category) {
		return errors.Newf(errors.ErrCodeCategoryUnknown, "unknown capability category %q", e.Category)
	}
	if e.Impact < 1 || e.Impact > 10 {
		return errors.Newf(errors.ErrCodeFactorInvalid, "impact %.2f out of range [1,10]", e.Impact)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Set
// ---------------------------------------------------------------------------

// Set is the complete mined factor population handed to the operators.
// After EnsureDefaults every category is guaranteed non-empty.
type Set struct {
	Environmental []*EnvironmentalFactor `json:"environmental"`
	Forces        []*ForceNode           `json:"forces"`
	Capabilities  []*CapabilityElement   `json:"capabilities"`
}

// Validate checks every factor in the set.
func (s *Set) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeFactorInvalid, "factor set is nil")
	}
	for _, f := range s.Environmental {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	for _, n := range s.Forces {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	for _, e := range s.Capabilities {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the total number of factors across all three families.
func (s *Set) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Environmental) + len(s.Forces) + len(s.Capabilities)
}

// CapabilitiesByCategory splits the capability elements by SWOT quadrant.
func (s *Set) CapabilitiesByCategory() map[CapabilityCategory][]*CapabilityElement {
	out := make(map[CapabilityCategory][]*CapabilityElement, 4)
	for _, e := range s.Capabilities {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func validEnvironmentalCategory(c EnvironmentalCategory) bool {
	switch c {
	case CategoryPolitical, CategoryEconomic, CategorySocial,
		CategoryTechnological, CategoryEnvironment, CategoryLegal:
		return true
	}
	return false
}

func validCapabilityCategory(c CapabilityCategory) bool {
	switch c {
	case CategoryStrength, CategoryWeakness, CategoryOpportunity, CategoryThreat:
		return true
	}
	return false
}

// deterministicID derives a stable identifier from the factor's category and
// description, so repeated analyses of identical input produce identical IDs.
func deterministicID(category, description string) string {
	h := fnv.New32a()
	h.Write([]byte(description))
	return fmt.Sprintf("%s-%08x", category, h.Sum32())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
