package sensitivity

import (
	"context"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

const (
	optimizerInitialStep = 1.0
	optimizerMinStep     = 1e-3
)

// OptimizeForceStrengths searches the competitive force strengths for the
// assignment that maximizes the integrated score, holding environmental and
// capability factors fixed.  Coordinate ascent with a halving step: each
// pass tries moving every force up and down by the current step, keeps any
// improvement, and shrinks the step when a full pass finds none.
func (a *analyzerImpl) OptimizeForceStrengths(ctx context.Context, set *factor.Set) (*strategy.OptimizationResult, error) {
	if set == nil || len(set.Forces) == 0 {
		return nil, errors.New(errors.ErrCodeOptimizationFailed, "optimization requires competitive force nodes")
	}
	iterations := a.cfg.OptimizerIterations
	if iterations <= 0 {
		return nil, errors.Newf(errors.ErrCodeOptimizationFailed, "iteration count must be positive, got %d", iterations)
	}

	current := cloneSet(set)
	best, err := a.evaluate(ctx, current, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeOptimizationFailed, "base evaluation failed")
	}

	step := optimizerInitialStep
	performed := 0
	for iter := 0; iter < iterations && step >= optimizerMinStep; iter++ {
		performed++
		improved := false
		for i := range current.Forces {
			orig := current.Forces[i].Strength
			for _, dir := range []float64{1, -1} {
				candidate := clampRange(orig+dir*step, 1, 10)
				if candidate == orig {
					continue
				}
				current.Forces[i].Strength = candidate
				score, err := a.evaluate(ctx, current, nil)
				if err != nil {
					return nil, errors.Wrap(err, errors.ErrCodeOptimizationFailed, "candidate evaluation failed")
				}
				if score > best {
					best = score
					orig = candidate
					improved = true
				} else {
					current.Forces[i].Strength = orig
				}
			}
		}
		if !improved {
			step /= 2
		}
	}

	optimal := make(map[string]float64, len(current.Forces))
	for _, n := range current.Forces {
		optimal[string(n.Force)] = n.Strength
	}
	return &strategy.OptimizationResult{
		OptimalStrengths: optimal,
		AchievedScore:    best,
		Iterations:       performed,
	}, nil
}
