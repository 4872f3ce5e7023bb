package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_runs_total",
			Help: "Total number of recommendation runs by ranking strategy and profile source",
		},
		[]string{"strategy", "profile_source"},
	)

	RecommendationTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_candidate_tier_total",
			Help: "Candidate selection tier that produced the pool",
		},
		[]string{"tier"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of a recommendation run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
		[]string{"strategy"},
	)

	CapabilityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_capability_failures_total",
			Help: "Failed generation calls by operation and failure kind",
		},
		[]string{"operation", "kind"},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Catalog load attempts by result",
		},
		[]string{"result"},
	)
)
