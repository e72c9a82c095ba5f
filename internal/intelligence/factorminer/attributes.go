package factorminer

import (
	"regexp"
	"strings"

	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// Derived attributes are computed from the item text itself via keyword
// scoring, independent of any numeric value the narrative may claim.

// ============================================================================
// Keyword vocabularies
// ============================================================================

var (
	emphasisWords = []string{
		"critical", "significant", "major", "key", "essential",
		"crucial", "vital", "dominant", "substantial",
	}

	positiveWords = []string{
		"strong", "growth", "growing", "opportunity", "favorable",
		"advantage", "improving", "leading", "robust", "expanding",
		"innovative", "profitable",
	}

	negativeWords = []string{
		"weak", "decline", "declining", "threat", "risk", "cost",
		"pressure", "adverse", "falling", "shrinking", "volatile",
		"litigation", "disrupt", "disruption",
	}

	hedgingWords = []string{
		"may", "might", "could", "uncertain", "possibly", "unclear",
		"potentially", "unpredictable",
	}

	shortHorizonRe = regexp.MustCompile(`(?i)\b(?:short[- ]term|near[- ]term|immediate(?:ly)?|this year)\b`)
	longHorizonRe  = regexp.MustCompile(`(?i)\b(?:long[- ]term|long[- ]run|decade|next \d+ years)\b`)
)

// ============================================================================
// Scoring
// ============================================================================

const (
	baseWeight      = 5.0
	emphasisStep    = 1.5
	sentimentStep   = 1.5
	baseUncertainty = 0.3
	hedgingStep     = 0.15
	maxUncertainty  = 0.9
)

func countWords(text string, vocab []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, w := range vocab {
		if containsWord(lower, w) {
			n++
		}
	}
	return n
}

// containsWord reports whether lower contains w as a whole word.
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// deriveWeight scores item importance: emphasis words raise the base weight
// by a fixed increment, bounded to [1,10].
func deriveWeight(text string) float64 {
	w := baseWeight + emphasisStep*float64(countWords(text, emphasisWords))
	if w > 10 {
		w = 10
	}
	return w
}

// deriveImpact scores item sentiment into [-5,5]: positive words push up,
// negative words push down.
func deriveImpact(text string) float64 {
	score := sentimentStep * float64(countWords(text, positiveWords)-countWords(text, negativeWords))
	if score > 5 {
		score = 5
	}
	if score < -5 {
		score = -5
	}
	return score
}

// deriveUncertainty scores hedging language into [0, maxUncertainty].
func deriveUncertainty(text string) float64 {
	u := baseUncertainty + hedgingStep*float64(countWords(text, hedgingWords))
	if u > maxUncertainty {
		u = maxUncertainty
	}
	return u
}

// deriveHorizon maps explicit time phrases onto a horizon, defaulting to
// medium when the text names none.
func deriveHorizon(text string) strategy.TimeHorizon {
	switch {
	case shortHorizonRe.MatchString(text):
		return strategy.HorizonShort
	case longHorizonRe.MatchString(text):
		return strategy.HorizonLong
	default:
		return strategy.HorizonMedium
	}
}

// deriveCapabilityImpact scores a capability element's magnitude into [1,10];
// emphasis and strong sentiment both raise it.
func deriveCapabilityImpact(text string) float64 {
	m := baseWeight + emphasisStep*float64(countWords(text, emphasisWords))
	sentiment := countWords(text, positiveWords) + countWords(text, negativeWords)
	m += 0.5 * float64(sentiment)
	if m > 10 {
		m = 10
	}
	if m < 1 {
		m = 1
	}
	return m
}
