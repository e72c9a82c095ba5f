package sensitivity

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// forceJitter bounds the relative perturbation applied to force strengths
// and capability impacts, which carry no per-item uncertainty of their own.
const forceJitter = 0.1

// MonteCarlo implements Analyzer.  Each trial independently perturbs every
// factor within its uncertainty bound and rescores the population with the
// same extended score map as the base run; the trial scores are summarized
// into mean, spread, and the 5th/95th percentile band.  The same seed always
// yields the same summary.
func (a *analyzerImpl) MonteCarlo(ctx context.Context, set *factor.Set, extended map[strategy.Framework]float64) (*strategy.MonteCarloSummary, error) {
	if set == nil || set.Count() == 0 {
		return nil, errors.New(errors.ErrCodeSimulationFailed, "monte carlo requires a non-empty factor population")
	}
	trials := a.cfg.MonteCarloTrials
	if trials <= 0 {
		return nil, errors.Newf(errors.ErrCodeSimulationFailed, "trial count must be positive, got %d", trials)
	}
	start := time.Now()
	rng := common.NewRand(a.cfg.Seed, a.cfg.VarianceSampling)

	scores := make([]float64, 0, trials)
	for t := 0; t < trials; t++ {
		perturbed := cloneSet(set)
		for _, f := range perturbed.Environmental {
			f.Impact = clampRange(f.Impact*(1+f.Uncertainty*symmetric(rng.Float64())), -5, 5)
		}
		for _, n := range perturbed.Forces {
			n.Strength = clampRange(n.Strength*(1+forceJitter*symmetric(rng.Float64())), 1, 10)
		}
		for _, e := range perturbed.Capabilities {
			e.Impact = clampRange(e.Impact*(1+forceJitter*symmetric(rng.Float64())), 1, 10)
		}
		score, err := a.evaluate(ctx, perturbed, extended)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSimulationFailed, "trial rescoring failed")
		}
		scores = append(scores, score)
	}

	sort.Float64s(scores)
	mean := common.Mean(scores)
	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	a.metrics.RecordSimulation(ctx, trials, durationMs)
	a.metrics.RecordStage(ctx, &common.StageMetricParams{
		Stage:      common.StageSimulation,
		DurationMs: durationMs,
		Success:    true,
		ItemCount:  trials,
	})
	a.logger.Debug("monte carlo complete",
		logging.Int("trials", trials),
		logging.Float64("mean", mean),
	)

	return &strategy.MonteCarloSummary{
		Trials: trials,
		Seed:   a.cfg.Seed,
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Lower:  percentile(scores, 5),
		Upper:  percentile(scores, 95),
		Worst:  scores[0],
		Best:   scores[len(scores)-1],
	}, nil
}

// symmetric maps a uniform [0,1) draw onto [-1,1).
func symmetric(u float64) float64 { return 2*u - 1 }

// percentile interpolates linearly over a sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
