package factorminer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
)

// Section segmentation: narrative text is cut at recognized headings (a
// known keyword, optionally followed by filler such as "factors" or
// "analysis", ending in a colon or line break).  Each section runs to the
// next recognized heading or the end of text.

// ============================================================================
// Heading vocabularies
// ============================================================================

var envSectionSynonyms = map[factor.EnvironmentalCategory][]string{
	factor.CategoryPolitical:     {"political"},
	factor.CategoryEconomic:      {"economic"},
	factor.CategorySocial:        {"social", "societal"},
	factor.CategoryTechnological: {"technological", "technology"},
	factor.CategoryEnvironment:   {"environmental", "sustainability"},
	factor.CategoryLegal:         {"legal", "regulatory"},
}

var capSectionSynonyms = map[factor.CapabilityCategory][]string{
	factor.CategoryStrength:    {"strengths", "capabilities", "internal strengths"},
	factor.CategoryWeakness:    {"weaknesses", "challenges", "limitations"},
	factor.CategoryOpportunity: {"opportunities", "market outlook", "growth prospects"},
	factor.CategoryThreat:      {"threats", "risks"},
}

// sectionKey identifies which family and category a heading belongs to.
type sectionKey struct {
	env factor.EnvironmentalCategory
	cap factor.CapabilityCategory
}

var (
	headingRe      *regexp.Regexp
	synonymToKey   map[string]sectionKey
	orderedHeading []string
)

func init() {
	synonymToKey = make(map[string]sectionKey)
	for cat, syns := range envSectionSynonyms {
		for _, s := range syns {
			synonymToKey[s] = sectionKey{env: cat}
		}
	}
	for cat, syns := range capSectionSynonyms {
		for _, s := range syns {
			synonymToKey[s] = sectionKey{cap: cat}
		}
	}

	orderedHeading = make([]string, 0, len(synonymToKey))
	for s := range synonymToKey {
		orderedHeading = append(orderedHeading, s)
	}
	// Longest-first so "internal strengths" wins over "strengths".
	sort.Slice(orderedHeading, func(i, j int) bool {
		if len(orderedHeading[i]) != len(orderedHeading[j]) {
			return len(orderedHeading[i]) > len(orderedHeading[j])
		}
		return orderedHeading[i] < orderedHeading[j]
	})

	escaped := make([]string, len(orderedHeading))
	for i, s := range orderedHeading {
		escaped[i] = strings.ReplaceAll(regexp.QuoteMeta(s), ` `, `\s+`)
	}
	headingRe = regexp.MustCompile(
		`(?i)(?:^|\n|\.\s*)\b(` + strings.Join(escaped, "|") +
			`)\b(?:\s+(?:factors?|analysis|environment|conditions|landscape))?\s*[:：]`)
}

// ============================================================================
// Segmentation
// ============================================================================

type sectionSpan struct {
	key   sectionKey
	start int
	end   int
}

// splitSections locates every recognized heading and returns the text spans
// that follow each, bounded by the next heading or end of text.  When the
// same category is headed more than once, the spans are concatenated.
func splitSections(text string) (map[factor.EnvironmentalCategory]string, map[factor.CapabilityCategory]string) {
	matches := headingRe.FindAllStringSubmatchIndex(text, -1)

	spans := make([]sectionSpan, 0, len(matches))
	for _, m := range matches {
		// m[2]:m[3] is the captured keyword, m[1] the end of the full match.
		keyword := strings.ToLower(text[m[2]:m[3]])
		keyword = strings.Join(strings.Fields(keyword), " ")
		key, ok := synonymToKey[keyword]
		if !ok {
			continue
		}
		spans = append(spans, sectionSpan{key: key, start: m[1]})
	}

	for i := range spans {
		if i+1 < len(spans) {
			// Section ends where the next heading's full match begins.
			spans[i].end = headingStart(text, spans[i+1].start)
		} else {
			spans[i].end = len(text)
		}
	}

	envSections := make(map[factor.EnvironmentalCategory]string)
	capSections := make(map[factor.CapabilityCategory]string)
	for _, sp := range spans {
		body := text[sp.start:sp.end]
		if sp.key.env != "" {
			envSections[sp.key.env] += body + "\n"
		}
		if sp.key.cap != "" {
			capSections[sp.key.cap] += body + "\n"
		}
	}
	return envSections, capSections
}

// headingStart walks back from a heading's content start to the beginning
// of the heading keyword itself, so the previous section does not swallow
// the next heading's text.
func headingStart(text string, contentStart int) int {
	// The heading regex matched somewhere shortly before contentStart; find
	// the nearest line or sentence boundary walking backwards.
	i := contentStart - 1
	for i > 0 {
		c := text[i]
		if c == '\n' || c == '.' {
			return i + 1
		}
		i--
	}
	return 0
}

// ============================================================================
// Item extraction
// ============================================================================

var (
	// inline bullet markers, possibly several on one line
	reInlineBullet = regexp.MustCompile(`[•‣▪◦·]\s*([^•‣▪◦·\n]+)`)
	// dash / asterisk / numbered bullets at line start
	reLineBullet = regexp.MustCompile(`(?m)^\s*(?:[-*–]|\d+[.)])\s+(.+)$`)

	reSentenceSplit = regexp.MustCompile(`[.;\n]+`)
)

const minItemLength = 10

// extractItems pulls up to max bullet- or sentence-level items from a
// section body.  Bullets take precedence; sentence splitting is the
// fallback for prose-only sections.
func extractItems(section string, max int) []string {
	if max <= 0 {
		max = 1
	}

	var items []string
	seen := make(map[string]bool)
	appendItem := func(raw string) {
		item := cleanItem(raw)
		if len(item) < minItemLength && len(items) > 0 {
			return
		}
		if item == "" || seen[strings.ToLower(item)] {
			return
		}
		seen[strings.ToLower(item)] = true
		items = append(items, item)
	}

	for _, m := range reInlineBullet.FindAllStringSubmatch(section, -1) {
		appendItem(m[1])
	}
	for _, m := range reLineBullet.FindAllStringSubmatch(section, -1) {
		appendItem(m[1])
	}

	if len(items) == 0 {
		for _, s := range reSentenceSplit.Split(section, -1) {
			s = strings.TrimSpace(s)
			if len(s) >= minItemLength {
				appendItem(s)
			}
		}
	}

	if len(items) > max {
		items = items[:max]
	}
	return items
}

// cleanItem strips trailing sentence punctuation and surrounding noise from
// an extracted item.
func cleanItem(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "-–—*")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:")
	return strings.TrimSpace(s)
}
