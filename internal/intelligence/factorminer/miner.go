// Package factorminer turns free-form narrative strategy text into the
// structured factor population the scoring operators consume.  Extraction is
// pattern and keyword based; when a section or cue is absent the miner falls
// back to deterministic defaults rather than failing, so an error escapes
// only for empty or whitespace input.
package factorminer

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
)

// ============================================================================
// Interface
// ============================================================================

// Miner extracts a complete, non-empty factor population from narrative
// text.  Implementations are pure: identical input yields an identical set.
type Miner interface {
	Mine(ctx context.Context, text string) (*factor.Set, error)
}

// ============================================================================
// Implementation
// ============================================================================

type minerImpl struct {
	cfg     *config.ExtractionConfig
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewMiner creates a Miner with the supplied extraction calibration.
func NewMiner(cfg *config.ExtractionConfig, logger logging.Logger, metrics common.AnalysisMetrics) (Miner, error) {
	if cfg == nil {
		return nil, errors.NewInvalidInput("extraction config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = common.NewNoopAnalysisMetrics()
	}
	return &minerImpl{cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Mine implements Miner.
func (m *minerImpl) Mine(ctx context.Context, text string) (*factor.Set, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeEmptyNarrative, "narrative text is empty or whitespace")
	}
	start := time.Now()

	envSections, capSections := splitSections(text)

	set := &factor.Set{
		Environmental: m.extractEnvironmental(envSections),
		Forces:        m.extractForces(text),
		Capabilities:  m.extractCapabilities(capSections),
	}
	mined := set.Count()
	set = factor.EnsureDefaults(set)

	if err := set.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFactorInvalid, "mined factor set failed validation")
	}

	m.logger.Debug("factor mining complete",
		logging.Int("mined", mined),
		logging.Int("total", set.Count()),
		logging.Int("environmental", len(set.Environmental)),
		logging.Int("forces", len(set.Forces)),
		logging.Int("capabilities", len(set.Capabilities)),
	)
	m.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageMining,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		Success:    true,
		ItemCount:  set.Count(),
	})
	return set, nil
}

// ============================================================================
// Environmental extraction
// ============================================================================

func (m *minerImpl) extractEnvironmental(sections map[factor.EnvironmentalCategory]string) []*factor.EnvironmentalFactor {
	var out []*factor.EnvironmentalFactor
	for _, cat := range factor.AllEnvironmentalCategories() {
		body, ok := sections[cat]
		if !ok {
			continue
		}
		for _, item := range extractItems(body, m.cfg.MaxItemsPerCategory) {
			f, err := factor.NewEnvironmentalFactor(
				cat,
				item,
				deriveWeight(item),
				deriveImpact(item),
				deriveUncertainty(item),
				deriveHorizon(item),
			)
			if err != nil {
				m.logger.Warn("skipping invalid environmental item",
					logging.String("category", string(cat)),
					logging.Err(err),
				)
				continue
			}
			out = append(out, f)
		}
	}
	return out
}

// ============================================================================
// Competitive-force extraction
// ============================================================================

var forceSynonyms = map[factor.Force][]string{
	factor.ForceRivalry:    {"competitive rivalry", "industry rivalry", "rivalry"},
	factor.ForceSuppliers:  {"bargaining power of suppliers", "supplier bargaining power", "supplier power"},
	factor.ForceBuyers:     {"bargaining power of buyers", "buyer bargaining power", "buyer power", "customer power"},
	factor.ForceEntrants:   {"threat of new entrants", "new entrants", "barriers to entry"},
	factor.ForceSubstitute: {"threat of substitutes", "substitute products", "substitutes", "substitution"},
}

var (
	reStrengthNum = regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\b`)

	strengthWords = []struct {
		word  string
		value float64
	}{
		{"high", 8},
		{"strong", 8},
		{"medium", 5},
		{"moderate", 5},
		{"low", 2},
		{"weak", 2},
	}

	increasingWords = []string{"increasing", "rising", "growing", "intensifying"}
	decreasingWords = []string{"decreasing", "declining", "falling", "weakening"}

	// maximum distance a strength or trend cue may sit from the force name
	forceClauseLimit = 120
)

type forceMatch struct {
	force factor.Force
	pos   int // index just past the matched force name
}

// extractForces searches the whole text for each canonical force name (or a
// synonym) followed by a strength cue (numeric 1–10, or high/medium/low
// mapped to 8/5/2) and a trend cue.  Forces never named in the text are left
// to the default-factor pass.
func (m *minerImpl) extractForces(text string) []*factor.ForceNode {
	lower := strings.ToLower(text)

	var matches []forceMatch
	for _, f := range factor.AllForces() {
		for _, syn := range forceSynonyms[f] {
			if idx := strings.Index(lower, syn); idx >= 0 {
				matches = append(matches, forceMatch{force: f, pos: idx + len(syn)})
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	var out []*factor.ForceNode
	for i, fm := range matches {
		end := len(lower)
		if i+1 < len(matches) {
			end = matches[i+1].pos - longestSynonymLen(matches[i+1].force)
		}
		if end > fm.pos+forceClauseLimit {
			end = fm.pos + forceClauseLimit
		}
		if end < fm.pos {
			end = fm.pos
		}
		clause := lower[fm.pos:end]

		node, err := factor.NewForceNode(fm.force, parseStrength(clause), parseTrend(clause))
		if err != nil {
			m.logger.Warn("skipping invalid force clause",
				logging.String("force", string(fm.force)),
				logging.Err(err),
			)
			continue
		}
		out = append(out, node)
	}
	return out
}

func longestSynonymLen(f factor.Force) int {
	n := 0
	for _, s := range forceSynonyms[f] {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// parseStrength prefers an explicit 1–10 rating over a verbal cue and falls
// back to medium when the clause carries neither.
func parseStrength(clause string) float64 {
	for _, m := range reStrengthNum.FindAllStringSubmatch(clause, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v >= 1 && v <= 10 {
			return v
		}
	}
	for _, sw := range strengthWords {
		if containsWord(clause, sw.word) {
			return sw.value
		}
	}
	return 5
}

func parseTrend(clause string) factor.Trend {
	for _, w := range increasingWords {
		if strings.Contains(clause, w) {
			return factor.TrendIncreasing
		}
	}
	for _, w := range decreasingWords {
		if strings.Contains(clause, w) {
			return factor.TrendDecreasing
		}
	}
	return factor.TrendStable
}

// ============================================================================
// Capability extraction
// ============================================================================

func (m *minerImpl) extractCapabilities(sections map[factor.CapabilityCategory]string) []*factor.CapabilityElement {
	var out []*factor.CapabilityElement
	for _, cat := range factor.AllCapabilityCategories() {
		body, ok := sections[cat]
		if !ok {
			continue
		}
		for _, item := range extractItems(body, m.cfg.MaxItemsPerCategory) {
			e, err := factor.NewCapabilityElement(cat, item, deriveCapabilityImpact(item))
			if err != nil {
				m.logger.Warn("skipping invalid capability item",
					logging.String("category", string(cat)),
					logging.Err(err),
				)
				continue
			}
			out = append(out, e)
		}
	}
	return out
}
