// Package common holds the shared vocabulary of the intelligence layer:
// pipeline stage identifiers, telemetry interfaces, and small numeric
// helpers used by more than one stage.
package common

import (
	"math/rand"
	"time"
)

// ---------------------------------------------------------------------------
// Stage enum
// ---------------------------------------------------------------------------

// Stage identifies one step of the scoring pipeline.  The values appear as
// metric labels and in degraded-result reasons, so they are stable strings.
type Stage string

const (
	StageMining      Stage = "factor_mining"
	StageOperators   Stage = "framework_operators"
	StageIntegration Stage = "integration"
	StageSensitivity Stage = "sensitivity"
	StageSimulation  Stage = "monte_carlo"
	StageRecommend   Stage = "recommendation"
)

// AllStages lists every pipeline stage in execution order.
func AllStages() []Stage {
	return []Stage{
		StageMining,
		StageOperators,
		StageIntegration,
		StageSensitivity,
		StageSimulation,
		StageRecommend,
	}
}

// ---------------------------------------------------------------------------
// Randomness
// ---------------------------------------------------------------------------

// NewRand returns the random source used by the simulation stages.  With
// varianceSampling false the source is seeded with seed, so identical inputs
// produce identical trial sequences; with varianceSampling true the seed is
// taken from the wall clock instead.
func NewRand(seed int64, varianceSampling bool) *rand.Rand {
	if varianceSampling {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ---------------------------------------------------------------------------
// Numeric helpers
// ---------------------------------------------------------------------------

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
