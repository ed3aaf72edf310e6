// Package metrics provides the centralized Prometheus metrics registry for
// the handicapping core.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EdgesEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "edges_evaluated_total",
		Help:      "Total number of edge evaluations performed",
	})
	EdgesByClassification = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "edges_by_classification_total",
		Help:      "Edge evaluations by league and classification band",
	}, []string{"league", "classification"})
	ImplausibleEdgesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "implausible_edges_total",
		Help:      "Edges downgraded to NO_PLAY by the market-respect ceiling",
	})
	IncompleteDataTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "incomplete_data_total",
		Help:      "Edge evaluations flagged data-incomplete",
	})
	BetsPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "bets_placed_total",
		Help:      "Total number of bets placed",
	})
	BetsSettledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "bets_settled_total",
		Help:      "Total number of bets settled",
	})
	StakeClampsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "stake_clamps_total",
		Help:      "Stakes clamped by exposure caps, by cap kind",
	}, []string{"cap"})
	RatingUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walters_analyzer",
		Name:      "rating_updates_total",
		Help:      "Weekly power-rating updates applied",
	})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "walters_analyzer",
		Name:      "current_bankroll",
		Help:      "Current bankroll in currency units",
	})
	WeeklyExposure = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "walters_analyzer",
		Name:      "weekly_exposure",
		Help:      "Stake committed so far in the current week",
	})
	MeanCLV = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "walters_analyzer",
		Name:      "mean_clv",
		Help:      "Mean closing line value across closed bets",
	})
)

// Histogram metrics
var (
	EdgePointsDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walters_analyzer",
		Name:      "edge_points",
		Help:      "Absolute edge sizes in points",
		Buckets:   []float64{0.5, 1, 1.5, 2, 2.5, 3, 4, 5, 6, 8, 10, 15},
	})
	StakeFraction = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walters_analyzer",
		Name:      "stake_fraction_of_bankroll",
		Help:      "Accepted stakes as a fraction of bankroll",
		Buckets:   []float64{0.002, 0.005, 0.01, 0.015, 0.02, 0.025, 0.03},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EdgesEvaluatedTotal)
		registry.MustRegister(EdgesByClassification)
		registry.MustRegister(ImplausibleEdgesTotal)
		registry.MustRegister(IncompleteDataTotal)
		registry.MustRegister(BetsPlacedTotal)
		registry.MustRegister(BetsSettledTotal)
		registry.MustRegister(StakeClampsTotal)
		registry.MustRegister(RatingUpdatesTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(WeeklyExposure)
		registry.MustRegister(MeanCLV)

		registry.MustRegister(EdgePointsDistribution)
		registry.MustRegister(StakeFraction)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEdge records one classified edge evaluation.
func RecordEdge(league, classification string, edgePoints float64, incomplete bool) {
	EdgesEvaluatedTotal.Inc()
	EdgesByClassification.WithLabelValues(league, classification).Inc()
	if edgePoints < 0 {
		edgePoints = -edgePoints
	}
	EdgePointsDistribution.Observe(edgePoints)
	if incomplete {
		IncompleteDataTotal.Inc()
	}
}

// RecordImplausibleEdge records a market-respect downgrade.
func RecordImplausibleEdge() {
	ImplausibleEdgesTotal.Inc()
}

// RecordBetPlaced records a bet placement event.
func RecordBetPlaced(stakeFraction float64) {
	BetsPlacedTotal.Inc()
	StakeFraction.Observe(stakeFraction)
}

// RecordBetSettled records a bet settlement event.
func RecordBetSettled() {
	BetsSettledTotal.Inc()
}

// RecordStakeClamp records a cap-driven stake reduction.
func RecordStakeClamp(cap string) {
	StakeClampsTotal.WithLabelValues(cap).Inc()
}

// RecordRatingUpdate records an applied weekly rating update.
func RecordRatingUpdate() {
	RatingUpdatesTotal.Inc()
}
