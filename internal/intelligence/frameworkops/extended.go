package frameworkops

import (
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// Extended operators score caller-supplied portfolio, growth-vector, and
// value-innovation inputs.  They cannot be mined from narrative text, so
// the caller provides structured inputs and the integrator chains their
// scores into the coupling terms when extended analysis is enabled.

// ============================================================================
// Inputs
// ============================================================================

// BCGUnit is one business unit positioned on the growth-share matrix.
type BCGUnit struct {
	Name            string  `json:"name"`
	RelativeShare   float64 `json:"relative_share"` // >0; ≥1 means market leader
	MarketGrowthPct float64 `json:"market_growth_pct"`
	RevenueWeight   float64 `json:"revenue_weight"` // ≥0; 0 means equal weighting
}

// AnsoffInputs carries the intensity of each growth vector in [0,1].
type AnsoffInputs struct {
	MarketPenetration  float64 `json:"market_penetration"`
	MarketDevelopment  float64 `json:"market_development"`
	ProductDevelopment float64 `json:"product_development"`
	Diversification    float64 `json:"diversification"`
}

// BlueOceanInputs lists the four-actions framework moves.
type BlueOceanInputs struct {
	Eliminate []string `json:"eliminate"`
	Reduce    []string `json:"reduce"`
	Raise     []string `json:"raise"`
	Create    []string `json:"create"`
}

// ExtendedInputs bundles the optional extended-framework inputs.  Nil
// members are skipped.
type ExtendedInputs struct {
	BCG       []BCGUnit        `json:"bcg,omitempty"`
	Ansoff    *AnsoffInputs    `json:"ansoff,omitempty"`
	BlueOcean *BlueOceanInputs `json:"blue_ocean,omitempty"`
}

// Empty reports whether no extended framework has inputs.
func (e *ExtendedInputs) Empty() bool {
	return e == nil || (len(e.BCG) == 0 && e.Ansoff == nil && e.BlueOcean == nil)
}

// ============================================================================
// Scoring
// ============================================================================

// growth threshold separating high- from low-growth quadrants (% per year)
const bcgGrowthThreshold = 10.0

// quadrant scores: star, cash cow, question mark, dog
const (
	bcgStar     = 1.0
	bcgCashCow  = 0.5
	bcgQuestion = 0.0
	bcgDog      = -0.5
)

// ScoreBCG positions each unit on the growth-share matrix and returns the
// revenue-weighted quadrant mean in [-1,1].
func ScoreBCG(units []BCGUnit) (float64, error) {
	if len(units) == 0 {
		return 0, errors.New(errors.ErrCodeExtendedInputs, "bcg inputs are empty")
	}
	var sum, weightSum float64
	for _, u := range units {
		if u.RelativeShare <= 0 {
			return 0, errors.Newf(errors.ErrCodeExtendedInputs, "unit %q has non-positive relative share", u.Name)
		}
		w := u.RevenueWeight
		if w <= 0 {
			w = 1
		}
		var q float64
		switch {
		case u.RelativeShare >= 1 && u.MarketGrowthPct >= bcgGrowthThreshold:
			q = bcgStar
		case u.RelativeShare >= 1:
			q = bcgCashCow
		case u.MarketGrowthPct >= bcgGrowthThreshold:
			q = bcgQuestion
		default:
			q = bcgDog
		}
		sum += w * q
		weightSum += w
	}
	return sum / weightSum, nil
}

// risk-discounted payoff per Ansoff growth vector
var ansoffPayoff = struct {
	penetration, marketDev, productDev, diversification float64
}{0.9, 0.7, 0.6, 0.4}

// ScoreAnsoff returns the risk-discounted growth-vector mix mapped to
// [-1,1].  Zero intensity across all vectors scores 0.
func ScoreAnsoff(in *AnsoffInputs) (float64, error) {
	if in == nil {
		return 0, errors.New(errors.ErrCodeExtendedInputs, "ansoff inputs are nil")
	}
	for name, v := range map[string]float64{
		"market_penetration":  in.MarketPenetration,
		"market_development":  in.MarketDevelopment,
		"product_development": in.ProductDevelopment,
		"diversification":     in.Diversification,
	} {
		if v < 0 || v > 1 {
			return 0, errors.Newf(errors.ErrCodeExtendedInputs, "%s intensity %.2f out of range [0,1]", name, v)
		}
	}

	total := in.MarketPenetration + in.MarketDevelopment + in.ProductDevelopment + in.Diversification
	if total == 0 {
		return 0, nil
	}
	weighted := in.MarketPenetration*ansoffPayoff.penetration +
		in.MarketDevelopment*ansoffPayoff.marketDev +
		in.ProductDevelopment*ansoffPayoff.productDev +
		in.Diversification*ansoffPayoff.diversification
	// weighted/total ∈ [0.4, 0.9]; recenter onto [-1,1]
	return 2*(weighted/total) - 1, nil
}

// ScoreBlueOcean rewards a balanced four-actions profile: value innovation
// requires both cost moves (eliminate/reduce) and value moves (raise/create).
// The score peaks at a 50/50 balance and is mapped onto [-1,1].
func ScoreBlueOcean(in *BlueOceanInputs) (float64, error) {
	if in == nil {
		return 0, errors.New(errors.ErrCodeExtendedInputs, "blue ocean inputs are nil")
	}
	cost := float64(len(in.Eliminate) + len(in.Reduce))
	value := float64(len(in.Raise) + len(in.Create))
	total := cost + value
	if total == 0 {
		return 0, nil
	}
	balance := 4 * (cost / total) * (value / total) // ∈ [0,1], 1 at perfect balance
	return 2*balance - 1, nil
}

// ScoreExtended evaluates every supplied extended framework and returns the
// per-framework score map.
func ScoreExtended(in *ExtendedInputs) (map[strategy.Framework]float64, error) {
	if in.Empty() {
		return nil, nil
	}
	out := make(map[strategy.Framework]float64)
	if len(in.BCG) > 0 {
		s, err := ScoreBCG(in.BCG)
		if err != nil {
			return nil, err
		}
		out[strategy.FrameworkBCG] = s
	}
	if in.Ansoff != nil {
		s, err := ScoreAnsoff(in.Ansoff)
		if err != nil {
			return nil, err
		}
		out[strategy.FrameworkAnsoff] = s
	}
	if in.BlueOcean != nil {
		s, err := ScoreBlueOcean(in.BlueOcean)
		if err != nil {
			return nil, err
		}
		out[strategy.FrameworkBlueOcean] = s
	}
	return out, nil
}
