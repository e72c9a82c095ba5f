package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	appstrategy "github.com/turtacn/StratFit-Intelligence/internal/application/strategy"
	"github.com/turtacn/StratFit-Intelligence/internal/config"
	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/common"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/factorminer"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/frameworkops"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/integrator"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/recommender"
	"github.com/turtacn/StratFit-Intelligence/internal/intelligence/sensitivity"
)

// buildService assembles the full analysis pipeline from configuration.
func buildService(cfg *config.Config, logger logging.Logger) (appstrategy.AnalysisService, error) {
	metrics, err := buildMetrics(cfg)
	if err != nil {
		return nil, err
	}

	miner, err := factorminer.NewMiner(&cfg.Extraction, logger.Named("miner"), metrics)
	if err != nil {
		return nil, err
	}
	ops, err := frameworkops.NewOperators(&cfg.Operators, logger.Named("operators"), metrics)
	if err != nil {
		return nil, err
	}
	integ, err := integrator.NewIntegrator(&cfg.Integration, logger.Named("integrator"), metrics)
	if err != nil {
		return nil, err
	}
	sens, err := sensitivity.NewAnalyzer(&cfg.Sensitivity, ops, integ, logger.Named("sensitivity"), metrics)
	if err != nil {
		return nil, err
	}
	recs, err := recommender.NewRecommender(&cfg.Recommendation, logger.Named("recommender"), metrics)
	if err != nil {
		return nil, err
	}

	return appstrategy.NewAnalysisService(appstrategy.Deps{
		Miner:       miner,
		Operators:   ops,
		Integrator:  integ,
		Sensitivity: sens,
		Recommender: recs,
		Logger:      logger.Named("engine"),
		Metrics:     metrics,
	})
}

func buildMetrics(cfg *config.Config) (common.AnalysisMetrics, error) {
	switch cfg.Metrics.Backend {
	case "prometheus":
		return common.NewPrometheusAnalysisMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	case "memory":
		return common.NewInMemoryAnalysisMetrics(), nil
	default:
		return common.NewNoopAnalysisMetrics(), nil
	}
}
