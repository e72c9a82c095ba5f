// Package recommender synthesizes prioritized strategic actions from the
// ranked factor population.  Every top dominant factor and leverage point
// yields a templated action whose confidence, impact, horizon, and resource
// demand derive from the source factor's attributes; near-duplicate actions
// are merged before ranking.
package recommender

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ============================================================================
// Interface
// ============================================================================

// Recommender turns ranked factors into a deduplicated, prioritized action
// list.  Both rankings feed the synthesis: dominant factors for structural
// weight, leverage points for marginal influence.  A factor appearing in
// both yields one merged recommendation.
type Recommender interface {
	Recommend(ctx context.Context, set *factor.Set, dominant []strategy.DominantFactor, leverage []strategy.LeveragePoint) ([]strategy.Recommendation, error)
}

var _ Recommender = (*recommenderImpl)(nil)

type recommenderImpl struct {
	cfg     *config.RecommendationConfig
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewRecommender creates the recommendation stage.
func NewRecommender(cfg *config.RecommendationConfig, logger logging.Logger, metrics common.AnalysisMetrics) (Recommender, error) {
	if cfg == nil {
		return nil, errors.NewInvalidInput("recommendation config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = common.NewNoopAnalysisMetrics()
	}
	return &recommenderImpl{cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Recommend implements Recommender.
func (r *recommenderImpl) Recommend(ctx context.Context, set *factor.Set, dominant []strategy.DominantFactor, leverage []strategy.LeveragePoint) ([]strategy.Recommendation, error) {
	if set == nil {
		return nil, errors.New(errors.ErrCodeAnalysisInput, "recommendation requires a factor population")
	}
	start := time.Now()

	top := dominant
	if len(top) > r.cfg.TopFactors {
		top = top[:r.cfg.TopFactors]
	}

	var recs []strategy.Recommendation
	for _, d := range top {
		rec, ok := r.synthesize(set, d.Framework, d.FactorID)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}
	for _, p := range leverage {
		rec, ok := r.synthesize(set, p.Framework, p.FactorID)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	recs = Deduplicate(recs, r.cfg.SimilarityThreshold)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority() != recs[j].Priority() {
			return recs[i].Priority() > recs[j].Priority()
		}
		return recs[i].ID < recs[j].ID
	})
	if len(recs) > r.cfg.MaxRecommendations {
		recs = recs[:r.cfg.MaxRecommendations]
	}

	r.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageRecommend,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		Success:    true,
		ItemCount:  len(recs),
	})
	r.logger.Debug("recommendations synthesized",
		logging.Int("candidates", len(top)),
		logging.Int("final", len(recs)),
	)
	return recs, nil
}

// ============================================================================
// Synthesis
// ============================================================================

// synthesize builds one recommendation from a ranked factor reference,
// looking the source factor up in the population for its attributes.
func (r *recommenderImpl) synthesize(set *factor.Set, framework strategy.Framework, factorID string) (strategy.Recommendation, bool) {
	switch framework {
	case strategy.FrameworkEnvironmental:
		for _, f := range set.Environmental {
			if f.ID == factorID {
				return fromEnvironmental(f), true
			}
		}
	case strategy.FrameworkCompetitive:
		for _, n := range set.Forces {
			if string(n.Force) == factorID {
				return fromForce(n), true
			}
		}
	case strategy.FrameworkCapability:
		for _, e := range set.Capabilities {
			if e.ID == factorID {
				return fromCapability(e), true
			}
		}
	}
	return strategy.Recommendation{}, false
}

func fromEnvironmental(f *factor.EnvironmentalFactor) strategy.Recommendation {
	verb := "Capitalize on"
	if f.Impact < 0 {
		verb = "Mitigate"
	}
	title := fmt.Sprintf("%s %s factor: %s", verb, f.Category, shorten(f.Description))
	magnitude := f.Impact
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return strategy.Recommendation{
		ID:    recID(title),
		Title: title,
		Description: fmt.Sprintf("The %s factor %q shifts the external environment; align %s-horizon positioning with it before the effect compounds.",
			f.Category, shorten(f.Description), f.Horizon),
		Confidence:        f.Probability(),
		Impact:            clampImpact(f.Weight * magnitude / 5),
		Horizon:           f.Horizon,
		ResourceIntensity: intensityFromWeight(f.Weight),
		SupportingFactors: []string{f.ID},
	}
}

func fromForce(n *factor.ForceNode) strategy.Recommendation {
	verb := "Exploit favorable"
	if n.Strength >= 6 {
		verb = "Counter intense"
	}
	title := fmt.Sprintf("%s %s", verb, strings.ReplaceAll(string(n.Force), "_", " "))
	desc := fmt.Sprintf("The %s force scores %.0f of 10 with a %s trend; adjust competitive posture accordingly.",
		strings.ReplaceAll(string(n.Force), "_", " "), n.Strength, n.Trend)
	horizon := strategy.HorizonMedium
	if n.Trend == factor.TrendIncreasing {
		horizon = strategy.HorizonShort
	}
	return strategy.Recommendation{
		ID:                recID(title),
		Title:             title,
		Description:       desc,
		Confidence:        0.5 + 0.4*n.NormalizedStrength(),
		Impact:            clampImpact(n.Strength),
		Horizon:           horizon,
		ResourceIntensity: intensityFromWeight(n.Strength),
		SupportingFactors: []string{string(n.Force)},
	}
}

func fromCapability(e *factor.CapabilityElement) strategy.Recommendation {
	var verb string
	var horizon strategy.TimeHorizon
	switch e.Category {
	case factor.CategoryStrength:
		verb, horizon = "Leverage strength", strategy.HorizonShort
	case factor.CategoryWeakness:
		verb, horizon = "Remediate weakness", strategy.HorizonMedium
	case factor.CategoryOpportunity:
		verb, horizon = "Pursue opportunity", strategy.HorizonMedium
	default:
		verb, horizon = "Defend against threat", strategy.HorizonShort
	}
	title := fmt.Sprintf("%s: %s", verb, shorten(e.Description))
	return strategy.Recommendation{
		ID:    recID(title),
		Title: title,
		Description: fmt.Sprintf("Internal assessment rates %q at %.0f of 10; direct resources toward it in proportion to that rating.",
			shorten(e.Description), e.Impact),
		Confidence:        0.5 + e.Impact/20,
		Impact:            clampImpact(e.Impact),
		Horizon:           horizon,
		ResourceIntensity: intensityFromWeight(e.Impact),
		SupportingFactors: []string{e.ID},
	}
}

// recID derives a stable identifier from the title so identical analyses
// produce identical output.
func recID(title string) strategy.ID {
	h := fnv.New32a()
	h.Write([]byte(title))
	return strategy.ID(fmt.Sprintf("rec-%08x", h.Sum32()))
}

func clampImpact(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func intensityFromWeight(w float64) strategy.ResourceIntensity {
	switch {
	case w >= 7:
		return strategy.IntensityHigh
	case w >= 4:
		return strategy.IntensityMedium
	default:
		return strategy.IntensityLow
	}
}

// shorten trims a factor description to a title-sized fragment.
func shorten(desc string) string {
	const maxLen = 60
	desc = strings.TrimSpace(desc)
	if len(desc) <= maxLen {
		return desc
	}
	cut := strings.LastIndexByte(desc[:maxLen], ' ')
	if cut <= 0 {
		cut = maxLen
	}
	return desc[:cut]
}
