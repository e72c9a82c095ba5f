package factorminer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

func TestDeriveWeight(t *testing.T) {
	assert.Equal(t, 5.0, deriveWeight("ordinary market condition"))
	assert.Equal(t, 6.5, deriveWeight("a critical dependency"))
	assert.Equal(t, 9.5, deriveWeight("critical and significant major issue"))
	assert.LessOrEqual(t, deriveWeight("critical significant major key essential crucial"), 10.0)
}

func TestDeriveImpact(t *testing.T) {
	assert.Equal(t, 0.0, deriveImpact("neutral statement"))
	assert.Greater(t, deriveImpact("strong growth and advantage"), 0.0)
	assert.Less(t, deriveImpact("declining demand and cost pressure"), 0.0)
	assert.GreaterOrEqual(t, deriveImpact("weak decline threat risk cost pressure adverse falling"), -5.0)
}

func TestDeriveUncertainty(t *testing.T) {
	assert.InDelta(t, 0.3, deriveUncertainty("established fact"), 1e-12)
	assert.InDelta(t, 0.45, deriveUncertainty("demand may soften"), 1e-12)
	assert.LessOrEqual(t, deriveUncertainty("may might could possibly uncertain unclear"), 0.9)
}

func TestDeriveHorizon(t *testing.T) {
	assert.Equal(t, strategy.HorizonShort, deriveHorizon("immediate cash pressure"))
	assert.Equal(t, strategy.HorizonShort, deriveHorizon("a short-term fix"))
	assert.Equal(t, strategy.HorizonLong, deriveHorizon("long-term structural shift"))
	assert.Equal(t, strategy.HorizonMedium, deriveHorizon("ongoing transition"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("the market is strong today", "strong"))
	assert.False(t, containsWord("strongly worded", "strong"))
	assert.False(t, containsWord("uncertainty remains", "uncertain"))
	assert.True(t, containsWord("risk", "risk"))
}

func TestExtractItems_Bullets(t *testing.T) {
	items := extractItems("• Strong brand recognition • Deep distribution network", 5)
	assert.Equal(t, []string{"Strong brand recognition", "Deep distribution network"}, items)
}

func TestExtractItems_LineBullets(t *testing.T) {
	section := "\n- First structural advantage\n- Second structural advantage\n1. Numbered observation here\n"
	items := extractItems(section, 5)
	assert.Len(t, items, 3)
}

func TestExtractItems_SentenceFallback(t *testing.T) {
	section := "Demand is growing steadily. Margins remain under pressure; churn is flat."
	items := extractItems(section, 2)
	assert.Len(t, items, 2)
	assert.Equal(t, "Demand is growing steadily", items[0])
}

func TestExtractItems_CapAndDedupe(t *testing.T) {
	section := "• Same entry here • Same entry here • Another entry here • Third entry here"
	items := extractItems(section, 2)
	assert.Len(t, items, 2)
	assert.Equal(t, "Same entry here", items[0])
	assert.Equal(t, "Another entry here", items[1])
}

func TestSplitSections_ConcatenatesRepeatedHeadings(t *testing.T) {
	env, _ := splitSections("Economic: inflation is easing.\nEconomic factors: rates are falling.")
	body := env["economic"]
	assert.Contains(t, body, "inflation")
	assert.Contains(t, body, "rates")
}
