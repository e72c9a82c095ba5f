package common

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// AnalysisMetrics defines the unified telemetry API for the scoring engine.
// Every pipeline stage (factor mining, framework operators, integration,
// sensitivity, recommendation) records through this interface so the backing
// implementation (Prometheus, in-memory, noop) can be swapped without
// touching pipeline code.
type AnalysisMetrics interface {
	// RecordStage records a single pipeline-stage execution.
	RecordStage(ctx context.Context, params *StageMetricParams)

	// RecordAnalysis records a completed end-to-end analysis.
	RecordAnalysis(ctx context.Context, params *AnalysisMetricParams)

	// RecordSimulation records a Monte Carlo simulation run.
	RecordSimulation(ctx context.Context, trials int, durationMs float64)

	// RecordDegradation records a stage falling back to a degraded result.
	RecordDegradation(ctx context.Context, stage Stage, reason string)

	// GetStageLatencyHistogram returns the stage latency histogram for
	// percentile queries.
	GetStageLatencyHistogram() LatencyHistogram

	// GetCurrentStats returns a point-in-time statistics snapshot.
	GetCurrentStats() *EngineStats
}

// LatencyHistogram provides percentile-based latency observation.
type LatencyHistogram interface {
	// Observe records a latency sample in milliseconds.
	Observe(durationMs float64)

	// Percentile returns the value at the given percentile (0–100).
	Percentile(p float64) float64

	// Count returns the total number of observed samples.
	Count() int64

	// Sum returns the sum of all observed values.
	Sum() float64
}

// ---------------------------------------------------------------------------
// Parameter structs
// ---------------------------------------------------------------------------

// StageMetricParams carries the data for a single pipeline-stage execution.
type StageMetricParams struct {
	Stage      Stage   `json:"stage"`
	DurationMs float64 `json:"duration_ms"`
	Success    bool    `json:"success"`
	ItemCount  int     `json:"item_count"` // factors mined, points ranked, etc.
}

// AnalysisMetricParams carries the data for a completed analysis.
type AnalysisMetricParams struct {
	DurationMs          float64 `json:"duration_ms"`
	Success             bool    `json:"success"`
	Degraded            bool    `json:"degraded"`
	FactorCount         int     `json:"factor_count"`
	RecommendationCount int     `json:"recommendation_count"`
}

// EngineStats is a point-in-time snapshot of engine-level metrics.
type EngineStats struct {
	TotalAnalyses       int64            `json:"total_analyses"`
	SuccessfulAnalyses  int64            `json:"successful_analyses"`
	DegradedAnalyses    int64            `json:"degraded_analyses"`
	AvgAnalysisMs       float64          `json:"avg_analysis_ms"`
	P50StageLatencyMs   float64          `json:"p50_stage_latency_ms"`
	P95StageLatencyMs   float64          `json:"p95_stage_latency_ms"`
	P99StageLatencyMs   float64          `json:"p99_stage_latency_ms"`
	SimulationTrials    int64            `json:"simulation_trials"`
	DegradationsByStage map[string]int64 `json:"degradations_by_stage"`
}

// ---------------------------------------------------------------------------
// Prometheus implementation
// ---------------------------------------------------------------------------

var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

type prometheusAnalysisMetrics struct {
	stageDuration      *prometheus.HistogramVec
	stageTotal         *prometheus.CounterVec
	analysisDuration   prometheus.Histogram
	analysisTotal      *prometheus.CounterVec
	factorCount        prometheus.Histogram
	simulationTrials   prometheus.Counter
	simulationDuration prometheus.Histogram
	degradationTotal   *prometheus.CounterVec

	// in-memory tracking for GetCurrentStats / GetStageLatencyHistogram
	stageHist     *latencyHistogram
	totalAnalyses atomic.Int64
	successAn     atomic.Int64
	degradedAn    atomic.Int64
	sumAnalysisMs atomicFloat64
	totalTrials   atomic.Int64
	degradations  sync.Map // stage string -> *atomic.Int64
}

// NewPrometheusAnalysisMetrics creates a Prometheus-backed metrics collector
// with the given namespace and registers all metrics with the supplied
// Registerer.
func NewPrometheusAnalysisMetrics(namespace string, registerer prometheus.Registerer) (*prometheusAnalysisMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "stratfit"
	}

	m := &prometheusAnalysisMetrics{
		stageHist: newLatencyHistogram(),
	}

	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_milliseconds",
		Help:      "Histogram of pipeline stage latency in milliseconds.",
		Buckets:   defaultLatencyBuckets,
	}, []string{"stage"})

	m.stageTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_total",
		Help:      "Total number of pipeline stage executions.",
	}, []string{"stage", "status"})

	m.analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_milliseconds",
		Help:      "Histogram of end-to-end analysis duration in milliseconds.",
		Buckets:   defaultLatencyBuckets,
	})

	m.analysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_total",
		Help:      "Total number of analyses by outcome.",
	}, []string{"status"})

	m.factorCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "factors_per_analysis",
		Help:      "Histogram of factors mined per analysis.",
		Buckets:   []float64{1, 5, 10, 20, 40, 80, 160},
	})

	m.simulationTrials = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_trials_total",
		Help:      "Total number of Monte Carlo trials executed.",
	})

	m.simulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_milliseconds",
		Help:      "Histogram of Monte Carlo simulation duration in milliseconds.",
		Buckets:   defaultLatencyBuckets,
	})

	m.degradationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "degradation_total",
		Help:      "Total number of degraded stage fallbacks.",
	}, []string{"stage", "reason"})

	collectors := []prometheus.Collector{
		m.stageDuration,
		m.stageTotal,
		m.analysisDuration,
		m.analysisTotal,
		m.factorCount,
		m.simulationTrials,
		m.simulationDuration,
		m.degradationTotal,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *prometheusAnalysisMetrics) RecordStage(_ context.Context, p *StageMetricParams) {
	if p == nil {
		return
	}
	status := "success"
	if !p.Success {
		status = "failure"
	}
	m.stageDuration.WithLabelValues(string(p.Stage)).Observe(p.DurationMs)
	m.stageTotal.WithLabelValues(string(p.Stage), status).Inc()
	m.stageHist.Observe(p.DurationMs)
}

func (m *prometheusAnalysisMetrics) RecordAnalysis(_ context.Context, p *AnalysisMetricParams) {
	if p == nil {
		return
	}
	status := "success"
	switch {
	case !p.Success:
		status = "failure"
	case p.Degraded:
		status = "degraded"
	}
	m.analysisDuration.Observe(p.DurationMs)
	m.analysisTotal.WithLabelValues(status).Inc()
	m.factorCount.Observe(float64(p.FactorCount))

	m.totalAnalyses.Add(1)
	if p.Success {
		m.successAn.Add(1)
	}
	if p.Degraded {
		m.degradedAn.Add(1)
	}
	m.sumAnalysisMs.Add(p.DurationMs)
}

func (m *prometheusAnalysisMetrics) RecordSimulation(_ context.Context, trials int, durationMs float64) {
	m.simulationTrials.Add(float64(trials))
	m.simulationDuration.Observe(durationMs)
	m.totalTrials.Add(int64(trials))
}

func (m *prometheusAnalysisMetrics) RecordDegradation(_ context.Context, stage Stage, reason string) {
	m.degradationTotal.WithLabelValues(string(stage), reason).Inc()
	counter, _ := m.degradations.LoadOrStore(string(stage), &atomic.Int64{})
	counter.(*atomic.Int64).Add(1)
}

func (m *prometheusAnalysisMetrics) GetStageLatencyHistogram() LatencyHistogram {
	return m.stageHist
}

func (m *prometheusAnalysisMetrics) GetCurrentStats() *EngineStats {
	total := m.totalAnalyses.Load()

	var avg float64
	if total > 0 {
		avg = m.sumAnalysisMs.Load() / float64(total)
	}

	byStage := make(map[string]int64)
	m.degradations.Range(func(key, value any) bool {
		byStage[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})

	return &EngineStats{
		TotalAnalyses:       total,
		SuccessfulAnalyses:  m.successAn.Load(),
		DegradedAnalyses:    m.degradedAn.Load(),
		AvgAnalysisMs:       avg,
		P50StageLatencyMs:   m.stageHist.Percentile(50),
		P95StageLatencyMs:   m.stageHist.Percentile(95),
		P99StageLatencyMs:   m.stageHist.Percentile(99),
		SimulationTrials:    m.totalTrials.Load(),
		DegradationsByStage: byStage,
	}
}

// atomicFloat64 accumulates float64 additions via CompareAndSwap on bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Add(v float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + v)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// ---------------------------------------------------------------------------
// Noop implementation
// ---------------------------------------------------------------------------

type noopAnalysisMetrics struct{}

// NewNoopAnalysisMetrics returns a no-op metrics implementation.
func NewNoopAnalysisMetrics() *noopAnalysisMetrics {
	return &noopAnalysisMetrics{}
}

func (n *noopAnalysisMetrics) RecordStage(context.Context, *StageMetricParams)       {}
func (n *noopAnalysisMetrics) RecordAnalysis(context.Context, *AnalysisMetricParams) {}
func (n *noopAnalysisMetrics) RecordSimulation(context.Context, int, float64)        {}
func (n *noopAnalysisMetrics) RecordDegradation(context.Context, Stage, string)      {}

func (n *noopAnalysisMetrics) GetStageLatencyHistogram() LatencyHistogram {
	return newLatencyHistogram()
}

func (n *noopAnalysisMetrics) GetCurrentStats() *EngineStats {
	return &EngineStats{DegradationsByStage: map[string]int64{}}
}

// ---------------------------------------------------------------------------
// In-memory implementation (for testing)
// ---------------------------------------------------------------------------

type inMemoryAnalysisMetrics struct {
	mu sync.Mutex

	stages       []*StageMetricParams
	analyses     []*AnalysisMetricParams
	totalTrials  int64
	simulations  []simulationRecord
	degradations map[string]int64
	stageHist    *latencyHistogram
}

type simulationRecord struct {
	Trials     int
	DurationMs float64
	Timestamp  time.Time
}

// NewInMemoryAnalysisMetrics returns an in-memory metrics implementation
// suitable for unit tests.
func NewInMemoryAnalysisMetrics() *inMemoryAnalysisMetrics {
	return &inMemoryAnalysisMetrics{
		degradations: make(map[string]int64),
		stageHist:    newLatencyHistogram(),
	}
}

func (m *inMemoryAnalysisMetrics) RecordStage(_ context.Context, p *StageMetricParams) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.stages = append(m.stages, &cp)
	m.stageHist.observeUnlocked(p.DurationMs)
}

func (m *inMemoryAnalysisMetrics) RecordAnalysis(_ context.Context, p *AnalysisMetricParams) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.analyses = append(m.analyses, &cp)
}

func (m *inMemoryAnalysisMetrics) RecordSimulation(_ context.Context, trials int, durationMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalTrials += int64(trials)
	m.simulations = append(m.simulations, simulationRecord{
		Trials:     trials,
		DurationMs: durationMs,
		Timestamp:  time.Now(),
	})
}

func (m *inMemoryAnalysisMetrics) RecordDegradation(_ context.Context, stage Stage, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degradations[string(stage)]++
}

func (m *inMemoryAnalysisMetrics) GetStageLatencyHistogram() LatencyHistogram {
	return m.stageHist
}

func (m *inMemoryAnalysisMetrics) GetCurrentStats() *EngineStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := int64(len(m.analyses))
	var success, degraded int64
	var sumMs float64
	for _, a := range m.analyses {
		if a.Success {
			success++
		}
		if a.Degraded {
			degraded++
		}
		sumMs += a.DurationMs
	}

	var avg float64
	if total > 0 {
		avg = sumMs / float64(total)
	}

	byStage := make(map[string]int64, len(m.degradations))
	for k, v := range m.degradations {
		byStage[k] = v
	}

	return &EngineStats{
		TotalAnalyses:       total,
		SuccessfulAnalyses:  success,
		DegradedAnalyses:    degraded,
		AvgAnalysisMs:       avg,
		P50StageLatencyMs:   m.stageHist.Percentile(50),
		P95StageLatencyMs:   m.stageHist.Percentile(95),
		P99StageLatencyMs:   m.stageHist.Percentile(99),
		SimulationTrials:    m.totalTrials,
		DegradationsByStage: byStage,
	}
}

// GetRecordedStages returns a copy of all recorded stage params.
func (m *inMemoryAnalysisMetrics) GetRecordedStages() []*StageMetricParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*StageMetricParams, len(m.stages))
	for i, p := range m.stages {
		cp := *p
		out[i] = &cp
	}
	return out
}

// GetRecordedAnalyses returns a copy of all recorded analysis params.
func (m *inMemoryAnalysisMetrics) GetRecordedAnalyses() []*AnalysisMetricParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*AnalysisMetricParams, len(m.analyses))
	for i, p := range m.analyses {
		cp := *p
		out[i] = &cp
	}
	return out
}

// GetDegradations returns a copy of the per-stage degradation counts.
func (m *inMemoryAnalysisMetrics) GetDegradations() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.degradations))
	for k, v := range m.degradations {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// latencyHistogram — in-memory, thread-safe, percentile-capable
// ---------------------------------------------------------------------------

type latencyHistogram struct {
	mu      sync.RWMutex
	samples []float64
	sum     float64
	sorted  bool
}

func newLatencyHistogram() *latencyHistogram {
	return &latencyHistogram{
		samples: make([]float64, 0, 1024),
	}
}

func (h *latencyHistogram) Observe(durationMs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observeUnlocked(durationMs)
}

// observeUnlocked is called when the caller already holds the lock (e.g.
// inMemoryAnalysisMetrics which locks at a higher level).
func (h *latencyHistogram) observeUnlocked(durationMs float64) {
	h.samples = append(h.samples, durationMs)
	h.sum += durationMs
	h.sorted = false
}

// Percentile returns the value at percentile p (0–100) using linear
// interpolation between the two nearest ranks.
func (h *latencyHistogram) Percentile(p float64) float64 {
	h.mu.RLock()
	n := len(h.samples)
	if n == 0 {
		h.mu.RUnlock()
		return 0
	}

	// We need a sorted view. If not sorted yet, upgrade to write lock.
	if !h.sorted {
		h.mu.RUnlock()
		h.mu.Lock()
		if !h.sorted {
			sort.Float64s(h.samples)
			h.sorted = true
		}
		h.mu.Unlock()
		h.mu.RLock()
	}

	defer h.mu.RUnlock()

	if p <= 0 {
		return h.samples[0]
	}
	if p >= 100 {
		return h.samples[n-1]
	}

	rank := (p / 100) * float64(n-1)
	lower := int(math.Floor(rank))
	upper := lower + 1
	if upper >= n {
		return h.samples[n-1]
	}
	frac := rank - float64(lower)
	return h.samples[lower] + frac*(h.samples[upper]-h.samples[lower])
}

func (h *latencyHistogram) Count() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return int64(len(h.samples))
}

func (h *latencyHistogram) Sum() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sum
}

// compile-time interface checks
var (
	_ AnalysisMetrics  = (*prometheusAnalysisMetrics)(nil)
	_ AnalysisMetrics  = (*noopAnalysisMetrics)(nil)
	_ AnalysisMetrics  = (*inMemoryAnalysisMetrics)(nil)
	_ LatencyHistogram = (*latencyHistogram)(nil)
)
