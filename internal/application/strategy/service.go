// Package strategy wires the five intelligence stages into the analysis
// pipeline: narrative mining, framework operators, cross-framework
// integration, sensitivity analysis, and recommendation synthesis.
package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/factorminer"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/integrator"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/recommender"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/sensitivity"
	"github.com/turtacn/StratFit-Intelligence/pkg/errors"
	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// EngineVersion is stamped into every analysis result.  Overridden at build
// time through -ldflags.
var EngineVersion = "dev"

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// AnalyzeRequest carries the narrative and optional extended framework
// inputs for one analysis.
type AnalyzeRequest struct {
	Narrative string                       `json:"narrative"`
	Extended  *frameworkops.ExtendedInputs `json:"extended,omitempty"`
}

// ValidateRequest compares a projected series against observed outcomes.
type ValidateRequest struct {
	Projected []float64 `json:"projected"`
	Observed  []float64 `json:"observed"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

// AnalysisService is the engine's primary entry point.
type AnalysisService interface {
	// Analyze runs the full pipeline over a narrative.  Only an unusable
	// narrative aborts; stage panics and failures after the operator stage
	// degrade the result rather than abort it.
	Analyze(ctx context.Context, req *AnalyzeRequest) (*strategy.AnalysisResult, error)

	// Validate scores a projected series against observed outcomes.
	Validate(ctx context.Context, req *ValidateRequest) (*strategy.ValidationMetrics, error)

	// Optimize searches competitive force strengths for the score optimum
	// of the factors mined from the narrative.
	Optimize(ctx context.Context, req *AnalyzeRequest) (*strategy.OptimizationResult, error)
}

// Deps holds the stage implementations injected into the service.
type Deps struct {
	Miner       factorminer.Miner
	Operators   frameworkops.Operators
	Integrator  integrator.Integrator
	Sensitivity sensitivity.Analyzer
	Recommender recommender.Recommender
	Logger      logging.Logger
	Metrics     common.AnalysisMetrics
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

var _ AnalysisService = (*analysisServiceImpl)(nil)

type analysisServiceImpl struct {
	miner   factorminer.Miner
	ops     frameworkops.Operators
	integ   integrator.Integrator
	sens    sensitivity.Analyzer
	recs    recommender.Recommender
	logger  logging.Logger
	metrics common.AnalysisMetrics
}

// NewAnalysisService creates the orchestrating service.  All five stages are
// required; logger and metrics fall back to no-ops.
func NewAnalysisService(deps Deps) (AnalysisService, error) {
	if deps.Miner == nil || deps.Operators == nil || deps.Integrator == nil ||
		deps.Sensitivity == nil || deps.Recommender == nil {
		return nil, errors.NewInvalidInput("all pipeline stages are required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = common.NewNoopAnalysisMetrics()
	}
	return &analysisServiceImpl{
		miner:   deps.Miner,
		ops:     deps.Operators,
		integ:   deps.Integrator,
		sens:    deps.Sensitivity,
		recs:    deps.Recommender,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}, nil
}

// Analyze implements AnalysisService.
func (s *analysisServiceImpl) Analyze(ctx context.Context, req *AnalyzeRequest) (*strategy.AnalysisResult, error) {
	if req == nil {
		return nil, errors.NewInvalidInput("analyze request cannot be nil")
	}
	start := time.Now()

	set, err := s.miner.Mine(ctx, req.Narrative)
	if err != nil {
		s.metrics.RecordAnalysis(ctx, &common.AnalysisMetricParams{
			DurationMs: float64(time.Since(start).Microseconds()) / 1000,
			Success:    false,
		})
		return nil, err
	}

	result := &strategy.AnalysisResult{
		AnalysisID:    strategy.NewID(),
		ScoreRange:    strategy.RangeSigned,
		EngineVersion: EngineVersion,
		AnalyzedAt:    time.Now().UTC(),
	}

	opsRes, err := s.applyOperators(ctx, set, result)
	if err != nil {
		s.metrics.RecordAnalysis(ctx, &common.AnalysisMetricParams{
			DurationMs: float64(time.Since(start).Microseconds()) / 1000,
			Success:    false,
		})
		return nil, err
	}
	if opsRes != nil {
		result.Scores = opsRes.Scores()
		s.integrate(ctx, req, set, opsRes, result)
		s.enrich(ctx, set, opsRes, result)
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	s.metrics.RecordAnalysis(ctx, &common.AnalysisMetricParams{
		DurationMs:          float64(time.Since(start).Microseconds()) / 1000,
		Success:             true,
		Degraded:            result.Degraded,
		FactorCount:         set.Count(),
		RecommendationCount: len(result.Recommendations),
	})
	s.logger.Info("analysis complete",
		logging.String("analysis_id", string(result.AnalysisID)),
		logging.Float64("integrated_score", result.IntegratedScore),
		logging.Bool("degraded", result.Degraded),
		logging.Int64("processing_ms", result.ProcessingTimeMs),
	)
	return result, nil
}

// applyOperators runs the framework operators.  An error return aborts the
// analysis, but a panic is converted into a degraded result (nil, nil): the
// output then carries the mined factors' neutral scores and the degradation
// note instead of crashing the pipeline.
func (s *analysisServiceImpl) applyOperators(ctx context.Context, set *factor.Set, result *strategy.AnalysisResult) (opsRes *frameworkops.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			opsRes, err = nil, nil
			s.degrade(ctx, common.StageOperators, result, fmt.Sprintf("panic: %v", r))
		}
	}()

	opsRes, err = s.ops.Apply(ctx, set)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnalysisFailed, "framework scoring failed")
	}
	return opsRes, nil
}

// integrate attaches the integrated score and series, degrading on failure.
func (s *analysisServiceImpl) integrate(ctx context.Context, req *AnalyzeRequest, set *factor.Set, opsRes *frameworkops.Result, result *strategy.AnalysisResult) {
	defer s.degradeOnPanic(ctx, common.StageIntegration, result)

	var extended map[strategy.Framework]float64
	if req.Extended != nil && !req.Extended.Empty() {
		scores, err := frameworkops.ScoreExtended(req.Extended)
		if err != nil {
			s.degrade(ctx, common.StageIntegration, result, err.Error())
			return
		}
		extended = scores
	}

	integRes, err := s.integ.Integrate(ctx, opsRes, extended)
	if err != nil {
		s.degrade(ctx, common.StageIntegration, result, err.Error())
		return
	}
	result.Scores = integRes.Scores
	result.CouplingEffect = integRes.CouplingEffect
	result.IntegratedScore = integRes.Integrated
	result.Series = integRes.Series
}

// enrich attaches the sensitivity and recommendation sections, degrading on
// failure.  A degraded integration leaves nothing to perturb, so enrichment
// is skipped entirely.
func (s *analysisServiceImpl) enrich(ctx context.Context, set *factor.Set, opsRes *frameworkops.Result, result *strategy.AnalysisResult) {
	if result.Degraded {
		return
	}
	defer s.degradeOnPanic(ctx, common.StageSensitivity, result)

	base := &integrator.Result{
		Scores:         result.Scores,
		CouplingEffect: result.CouplingEffect,
		Integrated:     result.IntegratedScore,
		Series:         result.Series,
	}
	sensOut, err := s.sens.Analyze(ctx, set, opsRes, base, result.Scores.Extended)
	if err != nil {
		s.degrade(ctx, common.StageSensitivity, result, err.Error())
		return
	}
	result.DominantFactors = sensOut.DominantFactors
	result.LeveragePoints = sensOut.LeveragePoints
	result.MonteCarlo = sensOut.MonteCarlo

	recs, err := s.recs.Recommend(ctx, set, sensOut.DominantFactors, sensOut.LeveragePoints)
	if err != nil {
		s.degrade(ctx, common.StageRecommend, result, err.Error())
		return
	}
	result.Recommendations = recs
}

func (s *analysisServiceImpl) degrade(ctx context.Context, stage common.Stage, result *strategy.AnalysisResult, reason string) {
	result.Degraded = true
	result.DegradedReason = fmt.Sprintf("%s: %s", stage, reason)
	s.metrics.RecordDegradation(ctx, stage, reason)
	s.logger.Warn("analysis degraded",
		logging.String("stage", string(stage)),
		logging.String("reason", reason),
	)
}

func (s *analysisServiceImpl) degradeOnPanic(ctx context.Context, stage common.Stage, result *strategy.AnalysisResult) {
	if r := recover(); r != nil {
		s.degrade(ctx, stage, result, fmt.Sprintf("panic: %v", r))
	}
}

// Validate implements AnalysisService.
func (s *analysisServiceImpl) Validate(_ context.Context, req *ValidateRequest) (*strategy.ValidationMetrics, error) {
	if req == nil {
		return nil, errors.NewInvalidInput("validate request cannot be nil")
	}
	return sensitivity.Validate(req.Projected, req.Observed)
}

// Optimize implements AnalysisService.
func (s *analysisServiceImpl) Optimize(ctx context.Context, req *AnalyzeRequest) (*strategy.OptimizationResult, error) {
	if req == nil {
		return nil, errors.NewInvalidInput("optimize request cannot be nil")
	}
	set, err := s.miner.Mine(ctx, req.Narrative)
	if err != nil {
		return nil, err
	}
	return s.sens.OptimizeForceStrengths(ctx, set)
}
