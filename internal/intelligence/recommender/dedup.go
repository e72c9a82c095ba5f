package recommender

import (
	"sort"
	"strings"

	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// Deduplicate merges recommendations whose titles share a token overlap at
// or above the threshold.  The survivor keeps the higher-impact record's
// title and framing, averages the confidences, and unions the supporting
// factors.  Merging builds new records; the input slice is never mutated.
// The operation is idempotent: a deduplicated list passes through unchanged.
func Deduplicate(recs []strategy.Recommendation, threshold float64) []strategy.Recommendation {
	var out []strategy.Recommendation
	for _, candidate := range recs {
		merged := false
		for i, kept := range out {
			if tokenOverlap(kept.Title, candidate.Title) >= threshold {
				out[i] = merge(kept, candidate)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, cloneRecommendation(candidate))
		}
	}
	return out
}

// merge combines two near-duplicate recommendations into a fresh record.
func merge(a, b strategy.Recommendation) strategy.Recommendation {
	primary, secondary := a, b
	if b.Impact > a.Impact {
		primary, secondary = b, a
	}
	out := cloneRecommendation(primary)
	out.Confidence = (a.Confidence + b.Confidence) / 2
	out.SupportingFactors = unionSorted(primary.SupportingFactors, secondary.SupportingFactors)
	return out
}

func cloneRecommendation(r strategy.Recommendation) strategy.Recommendation {
	out := r
	out.SupportingFactors = append([]string(nil), r.SupportingFactors...)
	return out
}

// tokenOverlap is the Jaccard similarity of the lowercased word sets.
func tokenOverlap(a, b string) float64 {
	setA := tokenize(a)
	setB := tokenize(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for tok := range setA {
		if setB[tok] {
			shared++
		}
	}
	return float64(shared) / float64(len(setA)+len(setB)-shared)
}

func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		out[tok] = true
	}
	return out
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
