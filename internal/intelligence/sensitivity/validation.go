package sensitivity

import (
	"math"

	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// Validate compares a projected score series against observed outcomes and
// reports the standard regression error metrics.  Series must be the same
// non-zero length.
func Validate(projected, observed []float64) (*strategy.ValidationMetrics, error) {
	if len(projected) == 0 || len(observed) == 0 {
		return nil, errors.New(errors.ErrCodeCalibrationInvalid, "validation requires non-empty series")
	}
	if len(projected) != len(observed) {
		return nil, errors.Newf(errors.ErrCodeCalibrationInvalid,
			"series length mismatch: projected %d, observed %d", len(projected), len(observed))
	}

	n := float64(len(observed))
	var sumSq, sumAbs, obsSum float64
	for i := range observed {
		diff := projected[i] - observed[i]
		sumSq += diff * diff
		sumAbs += math.Abs(diff)
		obsSum += observed[i]
	}
	obsMean := obsSum / n

	var totalSq float64
	for _, o := range observed {
		totalSq += (o - obsMean) * (o - obsMean)
	}

	// A flat observation series has no variance to explain; treat an exact
	// match as perfect and anything else as a total miss.
	r2 := 0.0
	if totalSq > 0 {
		r2 = 1 - sumSq/totalSq
	} else if sumSq == 0 {
		r2 = 1
	}

	return &strategy.ValidationMetrics{
		RMSE:     math.Sqrt(sumSq / n),
		MAE:      sumAbs / n,
		RSquared: r2,
	}, nil
}
