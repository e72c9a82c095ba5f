package strategy

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// ---------------------------------------------------------------------------
// Batch analysis
// ---------------------------------------------------------------------------

// BatchItemResult holds the outcome of one narrative within a batch run.
// Exactly one of Result and Err is set; ErrorMessage mirrors Err for
// serialized output.
type BatchItemResult struct {
	Index        int                      `json:"index"`
	Result       *strategy.AnalysisResult `json:"result,omitempty"`
	Err          error                    `json:"-"`
	ErrorMessage string                   `json:"error,omitempty"`
	DurationMs   float64                  `json:"duration_ms"`
}

// BatchResult aggregates a batch run, in input order.
type BatchResult struct {
	Results         []*BatchItemResult `json:"results"`
	TotalCount      int                `json:"total_count"`
	SuccessCount    int                `json:"success_count"`
	FailureCount    int                `json:"failure_count"`
	TotalDurationMs float64            `json:"total_duration_ms"`
}

// batchConfig holds the tunables of a batch run.
type batchConfig struct {
	maxConcurrency int
	itemTimeout    time.Duration
}

// BatchOption configures BatchAnalyze.
type BatchOption func(*batchConfig)

// WithMaxConcurrency caps how many narratives are analyzed concurrently.
func WithMaxConcurrency(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// WithItemTimeout sets the per-narrative timeout.
func WithItemTimeout(d time.Duration) BatchOption {
	return func(c *batchConfig) {
		if d > 0 {
			c.itemTimeout = d
		}
	}
}

// BatchAnalyze runs the pipeline over every request concurrently, bounded by
// a semaphore, and returns per-item outcomes in input order.  Individual
// failures never abort the batch.
func BatchAnalyze(ctx context.Context, svc AnalysisService, reqs []*AnalyzeRequest, opts ...BatchOption) (*BatchResult, error) {
	if svc == nil {
		return nil, errors.NewInvalidInput("analysis service is required")
	}
	cfg := &batchConfig{
		maxConcurrency: runtime.NumCPU(),
		itemTimeout:    time.Minute,
	}
	for _, o := range opts {
		o(cfg)
	}

	start := time.Now()
	results := make([]*BatchItemResult, 0, len(reqs))
	resultCh := make(chan *BatchItemResult, len(reqs))
	sem := make(chan struct{}, cfg.maxConcurrency)

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(idx int, req *AnalyzeRequest) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultCh <- &BatchItemResult{Index: idx, Err: ctx.Err()}
				return
			}
			if err := ctx.Err(); err != nil {
				resultCh <- &BatchItemResult{Index: idx, Err: err}
				return
			}

			itemStart := time.Now()
			itemCtx, cancel := context.WithTimeout(ctx, cfg.itemTimeout)
			res, err := svc.Analyze(itemCtx, req)
			cancel()

			resultCh <- &BatchItemResult{
				Index:      idx,
				Result:     res,
				Err:        err,
				DurationMs: float64(time.Since(itemStart).Microseconds()) / 1000,
			}
		}(i, req)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()
	for r := range resultCh {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	br := &BatchResult{
		Results:         results,
		TotalCount:      len(results),
		TotalDurationMs: float64(time.Since(start).Microseconds()) / 1000,
	}
	for _, r := range results {
		if r.Err == nil {
			br.SuccessCount++
		} else {
			r.ErrorMessage = r.Err.Error()
			br.FailureCount++
		}
	}
	return br, nil
}

// LogBatchOutcome emits a one-line summary of a batch run.
func LogBatchOutcome(logger logging.Logger, br *BatchResult) {
	if logger == nil || br == nil {
		return
	}
	logger.Info("batch analysis complete",
		logging.Int("total", br.TotalCount),
		logging.Int("succeeded", br.SuccessCount),
		logging.Int("failed", br.FailureCount),
		logging.Float64("duration_ms", br.TotalDurationMs),
	)
}
